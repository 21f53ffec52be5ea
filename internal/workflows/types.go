package workflows

type MaterialProcessInput struct {
	Path          string `json:"path"`
	Filename      string `json:"filename"`
	Topic         string `json:"topic"`
	Length        int    `json:"length"`
	ExamMode      bool   `json:"exam_mode"`
	ExplainSimply bool   `json:"explain_simply"`
	Language      string `json:"language"`
}

// MaterialProgress is served through the GetMaterialProgress query while the
// workflow runs and reflects its final state afterwards.
type MaterialProgress struct {
	Filename    string            `json:"filename"`
	CurrentStep string            `json:"current_step"`
	Status      string            `json:"status"`
	Steps       map[string]string `json:"steps"`
	SessionID   int64             `json:"session_id,omitempty"`
	Topic       string            `json:"topic,omitempty"`
	FailReason  string            `json:"fail_reason,omitempty"`
}
