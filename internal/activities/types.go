package activities

type ExtractTextInput struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type ExtractTextOutput struct {
	Text string `json:"text"`
}

type ComputeWeightsInput struct {
	Text string `json:"text"`
}

type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
	Badge  string  `json:"badge"`
}

type ComputeWeightsOutput struct {
	Weights []TermWeight `json:"weights"`
}

type GenerateSummaryInput struct {
	Text          string `json:"text"`
	Topic         string `json:"topic"`
	Length        int    `json:"length"`
	ExamMode      bool   `json:"exam_mode"`
	ExplainSimply bool   `json:"explain_simply"`
	Language      string `json:"language"`
}

type GenerateSummaryOutput struct {
	SummaryJSON  string `json:"summary_json"`
	Topic        string `json:"topic"`
	ProviderName string `json:"provider_name"`
	Model        string `json:"model"`
}

type SaveSessionInput struct {
	Topic       string `json:"topic"`
	RawContent  string `json:"raw_content"`
	SummaryJSON string `json:"summary_json"`
}

type SaveSessionOutput struct {
	SessionID int64 `json:"session_id"`
}

type WriteSessionArtifactsInput struct {
	SessionID   int64        `json:"session_id"`
	Topic       string       `json:"topic"`
	SourceFile  string       `json:"source_file"`
	SummaryJSON string       `json:"summary_json"`
	Weights     []TermWeight `json:"weights"`
}

type WriteSessionArtifactsOutput struct {
	Dir string `json:"dir"`
}

type LogLLMCallInput struct {
	CallID       string `json:"call_id"`
	Operation    string `json:"operation"`
	ProviderName string `json:"provider_name"`
	Model        string `json:"model"`
	Status       string `json:"status"`
	ErrorType    string `json:"error_type"`
}
