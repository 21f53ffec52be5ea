package models

import "time"

// GeneratedContent is the structured study summary produced by the LLM.
// Field names are the wire contract shared with persisted session snapshots,
// so they must stay stable.
type GeneratedContent struct {
	Topic         string            `json:"topic"`
	Language      string            `json:"language"`
	Concepts      []Concept         `json:"concepts"`
	Dependencies  [][]string        `json:"dependencies"`
	StudySchedule []ScheduleItem    `json:"studySchedule"`
	Definitions   map[string]string `json:"definitions"`
	Formulas      []string          `json:"formulas"`
	Tips          []string          `json:"tips"`
	Mnemonics     []string          `json:"mnemonics"`
	ExamFocus     []string          `json:"examFocus"`
}

type Concept struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Importance string `json:"importance,omitempty"`
}

type ScheduleItem struct {
	Day  int    `json:"day"`
	Task string `json:"task"`
	Goal string `json:"goal"`
}

type MCQItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type StudySession struct {
	ID          int64     `json:"id"`
	Topic       string    `json:"topic"`
	RawContent  string    `json:"raw_content,omitempty"`
	SummaryJSON string    `json:"summary_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuizResult struct {
	ID         int64     `json:"id"`
	SessionID  int64     `json:"session_id"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	WeakTopics []string  `json:"weak_topics"`
	CreatedAt  time.Time `json:"created_at"`
}
