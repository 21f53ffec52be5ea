package studygen

import (
	"strings"
	"testing"
)

func TestBuildSummaryPromptDefaultFraming(t *testing.T) {
	p := buildSummaryPrompt("text", SummaryOptions{Language: "English", Length: 40})
	if !strings.Contains(p, "balanced coverage") {
		t.Fatalf("expected default framing, got: %s", p)
	}
	if !strings.Contains(p, "about 40 lines") {
		t.Fatalf("expected target verbosity from length, got: %s", p)
	}
}

func TestBuildSummaryPromptExamModeFraming(t *testing.T) {
	p := buildSummaryPrompt("text", SummaryOptions{Language: "English", ExamMode: true})
	if !strings.Contains(p, "optimize for exam recall") {
		t.Fatalf("expected exam framing, got: %s", p)
	}
}

func TestBuildSummaryPromptExplainSimplyWinsOverExamMode(t *testing.T) {
	p := buildSummaryPrompt("text", SummaryOptions{Language: "English", ExamMode: true, ExplainSimply: true})
	if !strings.Contains(p, "Explain like I'm five") {
		t.Fatalf("expected simplified framing, got: %s", p)
	}
	if strings.Contains(p, "exam recall") {
		t.Fatalf("exam framing should be overridden: %s", p)
	}
}

func TestBuildMCQPromptDefaultsDifficulty(t *testing.T) {
	p := buildMCQPrompt("text", "")
	if !strings.Contains(p, "DIFFICULTY LEVEL: medium") {
		t.Fatalf("expected medium default, got: %s", p)
	}
}
