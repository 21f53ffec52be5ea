package studygen

import (
	"fmt"
	"strings"
)

const (
	OpExamSummary = "exam_summary"
	OpMCQGenerate = "mcq_generate"
	OpRephrase    = "rephrase"
)

const summaryPromptTemplate = `Act as a professional study assistant.
RESPONSE LANGUAGE: %s
PEDAGOGY STRATEGY: %s
TARGET VERBOSITY: about %d lines of content in total across all sections.

Structure the output as JSON with:
- topic: Main subject
- language: %s
- concepts: List of 3-5 objects with 'title' and 'content' (10-15 lines per concept).
- dependencies: List of pairs [A, B] indicating Concept A should be learned before Concept B.
- studySchedule: List of 3 objects with 'day' (number), 'task' (specific action), and 'goal'.
- definitions: Dictionary of terms
- formulas: List of core principles/formulas
- tips: 3-5 high-value tips
- mnemonics: Memory aids
- examFocus: Weighted focus areas

%s`

const mcqPromptTemplate = `Generate 5 high-quality Multiple Choice Questions (MCQs) based on this text.
DIFFICULTY LEVEL: %s (Beginner = basic facts, Expert = deep inference and application)

Return as JSON: {"mcqs": [{"question": "", "options": ["", "", "", ""], "correct": index}]}

CONTENT:
%s`

// buildSummaryPrompt frames the request without changing the response schema.
// ExplainSimply wins over ExamMode when both are set.
func buildSummaryPrompt(text string, opts SummaryOptions) string {
	strategy := "Maintain academic precision and balanced coverage of the material."
	switch {
	case opts.ExplainSimply:
		strategy = "Explain like I'm five. Use extremely simple analogies and avoid jargon."
	case opts.ExamMode:
		strategy = "Maintain academic precision but optimize for exam recall. Prioritize likely examination targets in examFocus."
	}
	length := opts.Length
	if length <= 0 {
		length = 50
	}
	return fmt.Sprintf(summaryPromptTemplate, opts.Language, strategy, length, opts.Language, text)
}

func summarySystemPrompt(language string) string {
	return "You are a professional study assistant. Always respond in valid JSON. Language: " + language
}

func buildMCQPrompt(text, difficulty string) string {
	if strings.TrimSpace(difficulty) == "" {
		difficulty = "medium"
	}
	return fmt.Sprintf(mcqPromptTemplate, difficulty, text)
}

func buildRephrasePrompt(text, style string) string {
	if strings.TrimSpace(style) == "" {
		style = "Academic"
	}
	return fmt.Sprintf("Paraphrase the following text in a '%s' style. Ensure it is plagiarism-safe but retains all technical accuracy and core meaning.\n\n%s", style, text)
}
