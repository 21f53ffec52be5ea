package studygen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"studymate/internal/models"
	"studymate/internal/providers"
	"studymate/internal/util"
)

// SummaryOptions shape the prompt only; the response schema is fixed.
type SummaryOptions struct {
	Length        int
	ExamMode      bool
	ExplainSimply bool
	Language      string
	Topic         string
}

// Engine issues single-attempt generation requests against the configured
// provider chain. The summary path fails closed on any transport or decode
// error; the MCQ path hands its raw output to NormalizeMCQs, which never fails.
type Engine struct {
	pm             *providers.Manager
	maxPromptChars int
}

func New(pm *providers.Manager, maxPromptChars int) *Engine {
	return &Engine{pm: pm, maxPromptChars: maxPromptChars}
}

func (e *Engine) Offline() bool {
	return e.pm.Offline()
}

// GenerateExamSummary requests a structured study summary and decodes it
// strictly. A malformed summary has no safe partial-use fallback, so decode
// failures propagate to the caller; both failure branches satisfy
// errors.Is(err, util.ErrGenerationFailed).
func (e *Engine) GenerateExamSummary(ctx context.Context, text string, opts SummaryOptions) (models.GeneratedContent, providers.ProviderInfo, error) {
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = "English"
	}
	provider, _ := e.pm.Primary()
	resp, info, err := provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpExamSummary,
		System:    summarySystemPrompt(opts.Language),
		Prompt:    buildSummaryPrompt(util.TruncateForPrompt(text, e.maxPromptChars), opts),
		JSONMode:  true,
	})
	if err != nil {
		return models.GeneratedContent{}, info, errors.Join(util.ErrGenerationFailed, fmt.Errorf("generate summary: %w", err))
	}
	var content models.GeneratedContent
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text)), &content); err != nil {
		return models.GeneratedContent{}, info, errors.Join(util.ErrGenerationFailed, fmt.Errorf("decode summary: %w", err))
	}
	return content, info, nil
}

// GenerateMCQs makes one attempt and returns the raw provider output. Callers
// pass the result (or an empty string on error) through NormalizeMCQs.
func (e *Engine) GenerateMCQs(ctx context.Context, text, difficulty string) (string, providers.ProviderInfo, error) {
	provider, _ := e.pm.Primary()
	resp, info, err := provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpMCQGenerate,
		System:    "You are a professional study assistant. Always respond in valid JSON format.",
		Prompt:    buildMCQPrompt(util.TruncateForPrompt(text, e.maxPromptChars), difficulty),
		JSONMode:  true,
	})
	if err != nil {
		return "", info, fmt.Errorf("generate mcqs: %w", err)
	}
	return resp.Text, info, nil
}

// Rephrase requests free-form text back; the only structural requirement is
// that the result is non-empty.
func (e *Engine) Rephrase(ctx context.Context, text, style string) (string, providers.ProviderInfo, error) {
	provider, _ := e.pm.Primary()
	resp, info, err := provider.Generate(ctx, providers.GenerateRequest{
		Operation: OpRephrase,
		System:    "You are an expert academic editor.",
		Prompt:    buildRephrasePrompt(util.TruncateForPrompt(text, e.maxPromptChars), style),
	})
	if err != nil {
		return "", info, fmt.Errorf("rephrase: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", info, util.ErrEmptyResponse
	}
	return resp.Text, info, nil
}
