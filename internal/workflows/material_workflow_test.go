package workflows

import (
	"context"
	"errors"
	"testing"

	"studymate/internal/activities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerMaterialActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "ExtractTextActivity", func(context.Context, activities.ExtractTextInput) (activities.ExtractTextOutput, error) {
		return activities.ExtractTextOutput{}, nil
	})
	registerActivityName(env, "ComputeWeightsActivity", func(context.Context, activities.ComputeWeightsInput) (activities.ComputeWeightsOutput, error) {
		return activities.ComputeWeightsOutput{}, nil
	})
	registerActivityName(env, "GenerateSummaryActivity", func(context.Context, activities.GenerateSummaryInput) (activities.GenerateSummaryOutput, error) {
		return activities.GenerateSummaryOutput{}, nil
	})
	registerActivityName(env, "SaveSessionActivity", func(context.Context, activities.SaveSessionInput) (activities.SaveSessionOutput, error) {
		return activities.SaveSessionOutput{}, nil
	})
	registerActivityName(env, "WriteSessionArtifactsActivity", func(context.Context, activities.WriteSessionArtifactsInput) (activities.WriteSessionArtifactsOutput, error) {
		return activities.WriteSessionArtifactsOutput{}, nil
	})
	registerActivityName(env, "LogLLMCallActivity", func(context.Context, activities.LogLLMCallInput) error { return nil })
}

func TestMaterialProcessWorkflowSuccess(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(MaterialProcessWorkflow)
	registerMaterialActivities(env)

	env.OnActivity("ExtractTextActivity", mock.Anything, activities.ExtractTextInput{Path: "/tmp/notes.pdf", Filename: "notes.pdf"}).
		Return(activities.ExtractTextOutput{Text: "Mitosis has four phases."}, nil)
	env.OnActivity("ComputeWeightsActivity", mock.Anything, mock.Anything).
		Return(activities.ComputeWeightsOutput{Weights: []activities.TermWeight{{Term: "mitosis", Weight: 1.0, Badge: "HOT"}}}, nil)
	env.OnActivity("GenerateSummaryActivity", mock.Anything, mock.Anything).
		Return(activities.GenerateSummaryOutput{SummaryJSON: `{"topic":"Mitosis"}`, Topic: "Mitosis", ProviderName: "mock", Model: "mock"}, nil)
	env.OnActivity("SaveSessionActivity", mock.Anything, activities.SaveSessionInput{Topic: "Mitosis", RawContent: "Mitosis has four phases.", SummaryJSON: `{"topic":"Mitosis"}`}).
		Return(activities.SaveSessionOutput{SessionID: 7}, nil)
	env.OnActivity("WriteSessionArtifactsActivity", mock.Anything, mock.Anything).
		Return(activities.WriteSessionArtifactsOutput{Dir: "/tmp/out/sessions/7"}, nil)
	env.OnActivity("LogLLMCallActivity", mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(MaterialProcessWorkflow, MaterialProcessInput{Path: "/tmp/notes.pdf", Filename: "notes.pdf", Topic: "Biology"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "processed", out)

	qr, err := env.QueryWorkflow(QueryGetMaterialProgress)
	require.NoError(t, err)
	var progress MaterialProgress
	require.NoError(t, qr.Get(&progress))
	require.Equal(t, int64(7), progress.SessionID)
	require.Equal(t, "Mitosis", progress.Topic)
	require.Equal(t, "done", progress.Steps["write_artifacts"])
}

func TestMaterialProcessWorkflowNoTextFailsGracefully(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(MaterialProcessWorkflow)
	registerMaterialActivities(env)

	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).
		Return(activities.ExtractTextOutput{}, errors.New("no extractable text found in document"))

	env.ExecuteWorkflow(MaterialProcessWorkflow, MaterialProcessInput{Path: "/tmp/empty.pdf", Filename: "empty.pdf"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

func TestMaterialProcessWorkflowGenerationFailureAudited(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(MaterialProcessWorkflow)
	registerMaterialActivities(env)

	env.OnActivity("ExtractTextActivity", mock.Anything, mock.Anything).
		Return(activities.ExtractTextOutput{Text: "content"}, nil)
	env.OnActivity("ComputeWeightsActivity", mock.Anything, mock.Anything).
		Return(activities.ComputeWeightsOutput{}, nil)
	env.OnActivity("GenerateSummaryActivity", mock.Anything, mock.Anything).
		Return(activities.GenerateSummaryOutput{ProviderName: "groq", Model: "m"}, errors.New("rate limit exceeded"))

	var logged activities.LogLLMCallInput
	env.OnActivity("LogLLMCallActivity", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(activities.LogLLMCallInput)
		}).Return(nil)

	env.ExecuteWorkflow(MaterialProcessWorkflow, MaterialProcessInput{Path: "/tmp/n.txt", Filename: "n.txt"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
	require.Equal(t, "failed", logged.Status)
	require.Equal(t, "rate", logged.ErrorType)
}
