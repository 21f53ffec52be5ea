package workflows

import (
	"strings"
	"time"

	"studymate/internal/activities"
	"studymate/internal/providers"
	"studymate/internal/studygen"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetMaterialProgress = "GetMaterialProgress"

// MaterialProcessWorkflow turns one uploaded file into a persisted study
// session: extract text, score term importance, generate the structured
// summary, save the session, and write artifacts. The generation step makes
// exactly one attempt; retrying a paid LLM call on a decode failure would
// just burn quota on the same malformed answer.
func MaterialProcessWorkflow(ctx workflow.Context, input MaterialProcessInput) (string, error) {
	progress := MaterialProgress{
		Filename:    input.Filename,
		CurrentStep: "init",
		Status:      "processing",
		Steps:       map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetMaterialProgress, func() (MaterialProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	progress.CurrentStep = "extract_text"
	progress.Steps[progress.CurrentStep] = "processing"
	var textOut activities.ExtractTextOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractTextActivity", activities.ExtractTextInput{
		Path:     input.Path,
		Filename: input.Filename,
	}).Get(ctx, &textOut); err != nil {
		if isUnreadableUploadError(err) {
			progress.Status = "failed"
			progress.FailReason = "no extractable text found in upload"
			progress.Steps[progress.CurrentStep] = "failed"
			return progress.Status, nil
		}
		return "", err
	}
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "compute_weights"
	progress.Steps[progress.CurrentStep] = "processing"
	var weightsOut activities.ComputeWeightsOutput
	if err := workflow.ExecuteActivity(ctx, "ComputeWeightsActivity", activities.ComputeWeightsInput{
		Text: textOut.Text,
	}).Get(ctx, &weightsOut); err != nil {
		return "", err
	}
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "generate_summary"
	progress.Steps[progress.CurrentStep] = "processing"
	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})
	var genOut activities.GenerateSummaryOutput
	genErr := workflow.ExecuteActivity(genCtx, "GenerateSummaryActivity", activities.GenerateSummaryInput{
		Text:          textOut.Text,
		Topic:         input.Topic,
		Length:        input.Length,
		ExamMode:      input.ExamMode,
		ExplainSimply: input.ExplainSimply,
		Language:      input.Language,
	}).Get(genCtx, &genOut)

	_ = workflow.ExecuteActivity(ctx, "LogLLMCallActivity", activities.LogLLMCallInput{
		Operation:    studygen.OpExamSummary,
		ProviderName: genOut.ProviderName,
		Model:        genOut.Model,
		Status:       llmCallStatus(genErr),
		ErrorType:    string(providers.ClassifyError(genErr)),
	}).Get(ctx, nil)

	if genErr != nil {
		progress.Status = "failed"
		progress.FailReason = "summary generation failed"
		progress.Steps[progress.CurrentStep] = "failed"
		return progress.Status, nil
	}
	progress.Topic = genOut.Topic
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "save_session"
	progress.Steps[progress.CurrentStep] = "processing"
	var saveOut activities.SaveSessionOutput
	if err := workflow.ExecuteActivity(ctx, "SaveSessionActivity", activities.SaveSessionInput{
		Topic:       genOut.Topic,
		RawContent:  textOut.Text,
		SummaryJSON: genOut.SummaryJSON,
	}).Get(ctx, &saveOut); err != nil {
		return "", err
	}
	progress.SessionID = saveOut.SessionID
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "write_artifacts"
	progress.Steps[progress.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteSessionArtifactsActivity", activities.WriteSessionArtifactsInput{
		SessionID:   saveOut.SessionID,
		Topic:       genOut.Topic,
		SourceFile:  input.Filename,
		SummaryJSON: genOut.SummaryJSON,
		Weights:     weightsOut.Weights,
	}).Get(ctx, nil); err != nil {
		return "", err
	}
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "done"
	progress.Status = "processed"
	return progress.Status, nil
}

func llmCallStatus(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}

// isUnreadableUploadError matches activity failures wrapping the extraction
// sentinels, which arrive as application errors with the message preserved.
func isUnreadableUploadError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no extractable text") || strings.Contains(msg, "unsupported file format")
}
