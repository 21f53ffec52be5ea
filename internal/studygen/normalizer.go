package studygen

import (
	"encoding/json"
	"strings"

	"studymate/internal/models"
)

// NormalizeMCQs extracts a usable MCQ list from whatever shape the provider
// returned. Model providers do not contractually guarantee the wrapper shape,
// so extraction walks a fixed ladder: bare list, "mcqs" key, "questions" key,
// then the first list-of-question-objects value anywhere in the object.
// It never returns an empty slice; when nothing is usable (including an
// upstream failure surfaced as an empty raw string) the caller gets the
// sentinel question instead of an error.
func NormalizeMCQs(raw string) []models.MCQItem {
	raw = strings.TrimSpace(stripCodeFence(raw))
	if raw == "" {
		return SentinelMCQs()
	}

	var bare []models.MCQItem
	if err := json.Unmarshal([]byte(raw), &bare); err == nil && len(bare) > 0 {
		return bare
	}

	var keyed struct {
		MCQs      []models.MCQItem `json:"mcqs"`
		Questions []models.MCQItem `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &keyed); err == nil {
		if len(keyed.MCQs) > 0 {
			return keyed.MCQs
		}
		if len(keyed.Questions) > 0 {
			return keyed.Questions
		}
	}

	if items := scanForQuestionList(raw); len(items) > 0 {
		return items
	}
	return SentinelMCQs()
}

// SentinelMCQs is the guaranteed fallback when generation or extraction
// yields nothing usable.
func SentinelMCQs() []models.MCQItem {
	return []models.MCQItem{{
		Question: "AI failed to generate specific questions. Review your notes directly.",
		Options:  []string{"Understood", "Try again", "N/A", "N/A"},
		Correct:  0,
	}}
}

// scanForQuestionList walks the top-level object keys in document order and
// returns the first value that decodes as a list whose first element carries
// a question field.
func scanForQuestionList(raw string) []models.MCQItem {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}
		var items []models.MCQItem
		if err := json.Unmarshal(value, &items); err != nil {
			continue
		}
		if len(items) > 0 && strings.TrimSpace(items[0].Question) != "" {
			return items
		}
	}
	return nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
