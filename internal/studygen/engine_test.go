package studygen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studymate/internal/providers"
	"studymate/internal/util"
)

func newOfflineEngine(t *testing.T) *Engine {
	t.Helper()
	pm, err := providers.NewManager("mock")
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return New(pm, 24000)
}

func TestGenerateExamSummaryOffline(t *testing.T) {
	e := newOfflineEngine(t)
	if !e.Offline() {
		t.Fatalf("expected offline engine")
	}
	content, info, err := e.GenerateExamSummary(context.Background(), strings.Repeat("study material ", 20), SummaryOptions{})
	if err != nil {
		t.Fatalf("generate summary: %v", err)
	}
	if info.Name != "mock" {
		t.Fatalf("unexpected provider: %+v", info)
	}
	if content.Topic == "" || len(content.Concepts) == 0 || len(content.StudySchedule) == 0 {
		t.Fatalf("incomplete content: %+v", content)
	}
	if len(content.Dependencies) == 0 || len(content.Dependencies[0]) != 2 {
		t.Fatalf("expected dependency pairs, got %+v", content.Dependencies)
	}
}

func TestGenerateExamSummaryOfflineDependenciesResolve(t *testing.T) {
	e := newOfflineEngine(t)
	content, _, err := e.GenerateExamSummary(context.Background(), "text", SummaryOptions{Language: "English"})
	if err != nil {
		t.Fatalf("generate summary: %v", err)
	}
	if unknown := UnknownDependencyTitles(content); len(unknown) != 0 {
		t.Fatalf("canonical payload has dangling dependencies: %v", unknown)
	}
}

func TestGenerateMCQsOfflineNormalizes(t *testing.T) {
	e := newOfflineEngine(t)
	raw, _, err := e.GenerateMCQs(context.Background(), "mitosis phases", "beginner")
	if err != nil {
		t.Fatalf("generate mcqs: %v", err)
	}
	items := NormalizeMCQs(raw)
	if len(items) == 0 {
		t.Fatalf("expected items")
	}
	if items[0].Correct < 0 || items[0].Correct >= len(items[0].Options) {
		t.Fatalf("correct index out of range: %+v", items[0])
	}
}

func TestRephraseOfflineNonEmpty(t *testing.T) {
	e := newOfflineEngine(t)
	out, _, err := e.Rephrase(context.Background(), "osmosis moves water across membranes", "Casual")
	if err != nil {
		t.Fatalf("rephrase: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rephrase output")
	}
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	return providers.GenerateResponse{}, providers.ProviderInfo{Name: "fail"}, errors.New("provider unreachable")
}

type malformedProvider struct{}

func (malformedProvider) Generate(context.Context, providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	return providers.GenerateResponse{Text: "definitely not json"}, providers.ProviderInfo{Name: "bad"}, nil
}

func TestGenerateExamSummaryFailsClosed(t *testing.T) {
	for _, p := range []providers.LLMProvider{failingProvider{}, malformedProvider{}} {
		e := New(providers.NewManagerWithProvider(p), 24000)
		_, _, err := e.GenerateExamSummary(context.Background(), "text", SummaryOptions{})
		if err == nil {
			t.Fatalf("expected summary failure for %T", p)
		}
		if !errors.Is(err, util.ErrGenerationFailed) {
			t.Fatalf("expected generation-failed sentinel for %T, got %v", p, err)
		}
	}
}

func TestGenerateMCQsFailureYieldsSentinelViaNormalizer(t *testing.T) {
	e := New(providers.NewManagerWithProvider(failingProvider{}), 24000)
	raw, _, err := e.GenerateMCQs(context.Background(), "text", "expert")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	items := NormalizeMCQs(raw)
	if len(items) != 1 || items[0].Question != SentinelMCQs()[0].Question {
		t.Fatalf("expected sentinel, got %+v", items)
	}
}
