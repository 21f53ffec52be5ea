package providers

import (
	"context"
	"strings"
)

// MockProvider is the offline-mode provider used when no credential is
// configured. It returns fixed canonical payloads matching the schemas the
// engine requests, so the rest of the system behaves normally without
// calling out.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

const mockSummaryJSON = `{
  "topic": "Advanced Material",
  "language": "English",
  "concepts": [
    {"title": "Core Foundations", "content": "Detailed deep-dive into basic principles...", "importance": "HOT"},
    {"title": "Advanced Applications", "content": "Complex implementations of the core logic...", "importance": "WARM"}
  ],
  "dependencies": [["Core Foundations", "Advanced Applications"]],
  "studySchedule": [
    {"day": 1, "task": "Master Core Foundations", "goal": "90% retention"},
    {"day": 2, "task": "Explore Advanced Applications", "goal": "Hands-on implementation"},
    {"day": 3, "task": "Final Review & Quiz", "goal": "Exam readiness"}
  ],
  "definitions": {"Concept A": "Definition A"},
  "formulas": ["Logic Gate X -> Y"],
  "tips": ["Focus on the first principles first."],
  "mnemonics": [],
  "examFocus": []
}`

const mockMCQJSON = `{"mcqs": [
  {"question": "Sample Question?", "options": ["A", "B", "C", "D"], "correct": 0}
]}`

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	switch {
	case strings.Contains(op, "summary"):
		return GenerateResponse{Text: mockSummaryJSON}, info, nil
	case strings.Contains(op, "mcq"), strings.Contains(op, "quiz"):
		return GenerateResponse{Text: mockMCQJSON}, info, nil
	case strings.Contains(op, "rephrase"):
		return GenerateResponse{Text: "[Rephrased offline] " + firstRunes(req.Prompt, 100)}, info, nil
	default:
		return GenerateResponse{Text: "Mock response."}, info, nil
	}
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
