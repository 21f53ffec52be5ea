package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ExtractTextActivity)
	w.RegisterActivity(a.ComputeWeightsActivity)
	w.RegisterActivity(a.GenerateSummaryActivity)
	w.RegisterActivity(a.SaveSessionActivity)
	w.RegisterActivity(a.WriteSessionArtifactsActivity)
	w.RegisterActivity(a.LogLLMCallActivity)
}
