package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"studymate/internal/analytics"
	"studymate/internal/config"
	"studymate/internal/extract"
	"studymate/internal/models"
	"studymate/internal/providers"
	"studymate/internal/storage"
	"studymate/internal/studygen"
	"studymate/internal/util"
	"studymate/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg          config.Config
	db           *storage.DB
	sessionRepo  *storage.SessionRepo
	quizRepo     *storage.QuizRepo
	llmAuditRepo *storage.LLMAuditRepo
	engine       *studygen.Engine
	temporal     tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		panic(err)
	}
	pm, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:          cfg,
		db:           db,
		sessionRepo:  storage.NewSessionRepo(db),
		quizRepo:     storage.NewQuizRepo(db),
		llmAuditRepo: storage.NewLLMAuditRepo(db),
		engine:       studygen.New(pm, cfg.MaxPromptChars),
		temporal:     tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/summarize", s.handleSummarize)
	mux.HandleFunc("/generate-mcqs", s.handleGenerateMCQs)
	mux.HandleFunc("/rephrase", s.handleRephrase)
	mux.HandleFunc("/save-quiz", s.handleSaveQuiz)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/parse-file", s.handleParseFile)
	mux.HandleFunc("/materials", s.handleMaterials)
	mux.HandleFunc("/materials/", s.handleMaterialScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "offline": s.engine.Offline()})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Content       string `json:"content"`
		Topic         string `json:"topic"`
		Length        int    `json:"length"`
		ExamMode      bool   `json:"examMode"`
		ExplainSimply bool   `json:"explainSimply"`
		Language      string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("content is required"))
		return
	}
	length := req.Length
	if length <= 0 {
		length = s.cfg.SummaryLength
	}

	content, info, err := s.engine.GenerateExamSummary(r.Context(), req.Content, studygen.SummaryOptions{
		Length:        length,
		ExamMode:      req.ExamMode,
		ExplainSimply: req.ExplainSimply,
		Language:      req.Language,
		Topic:         req.Topic,
	})
	s.auditLLMCall(r.Context(), studygen.OpExamSummary, info, err)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}

	if unknown := studygen.UnknownDependencyTitles(content); len(unknown) > 0 {
		log.Printf("summary references unknown concepts in dependencies: %v", unknown)
	}

	topic := strings.TrimSpace(content.Topic)
	if topic == "" {
		topic = req.Topic
	}
	summaryJSON, err := json.Marshal(content)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	sessionID, err := s.sessionRepo.InsertSession(r.Context(), models.StudySession{
		Topic:       topic,
		RawContent:  util.SanitizeText(req.Content),
		SummaryJSON: string(summaryJSON),
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"summary":    content,
		"provider":   info.Name,
	})
}

func (s *Server) handleGenerateMCQs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Content    string `json:"content"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("content is required"))
		return
	}

	// Quiz generation fails open: any provider or parse failure yields the
	// sentinel question instead of an error page mid-study-session.
	raw, info, err := s.engine.GenerateMCQs(r.Context(), req.Content, req.Difficulty)
	s.auditLLMCall(r.Context(), studygen.OpMCQGenerate, info, err)
	if err != nil {
		log.Printf("mcq generation failed, serving sentinel: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{"mcqs": studygen.SentinelMCQs()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mcqs": studygen.NormalizeMCQs(raw)})
}

func (s *Server) handleRephrase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Content string `json:"content"`
		Style   string `json:"style"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("content is required"))
		return
	}

	text, info, err := s.engine.Rephrase(r.Context(), req.Content, req.Style)
	s.auditLLMCall(r.Context(), studygen.OpRephrase, info, err)
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rephrased": text})
}

func (s *Server) handleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		SessionID  int64    `json:"session_id"`
		Score      int      `json:"score"`
		Total      int      `json:"total"`
		WeakTopics []string `json:"weak_topics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if req.SessionID <= 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("session_id is required"))
		return
	}
	if req.Score < 0 || req.Total < 0 || req.Score > req.Total {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("score must be between 0 and total"))
		return
	}

	err := s.quizRepo.InsertResult(r.Context(), models.QuizResult{
		SessionID:  req.SessionID,
		Score:      req.Score,
		Total:      req.Total,
		WeakTopics: req.WeakTopics,
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sessions, err := s.sessionRepo.ListSessions(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
	case http.MethodDelete:
		// Results first so a failure between the two deletes never leaves
		// quiz rows pointing at vanished sessions.
		if err := s.quizRepo.ClearResults(r.Context()); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		if err := s.sessionRepo.ClearSessions(r.Context()); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sessions, err := s.sessionRepo.ListSessions(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	results, err := s.quizRepo.ListResults(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Compute(sessions, results))
}

func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	fh, err := singleUploadedFile(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	content, err := readUploadedFile(fh)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	text, err := extract.FromUpload(fh.Filename, content)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": text, "filename": fh.Filename})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	fh, err := singleUploadedFile(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	content, err := readUploadedFile(fh)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if err := util.EnsureDir(s.cfg.UploadRoot); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	// Content-addressed name keeps re-uploads of the same file idempotent on
	// disk while preserving the extension for the extractor.
	storedName := util.SHA256Hex(content) + strings.ToLower(filepath.Ext(fh.Filename))
	storedPath := util.SafeJoin(s.cfg.UploadRoot, storedName)
	if err := util.WriteTextAtomic(storedPath, string(content)); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	length := 0
	if v := r.FormValue("length"); v != "" {
		length, _ = strconv.Atoi(v)
	}
	wfID := "material-" + uuid.NewString()
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                                       wfID,
		TaskQueue:                                s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}, workflows.MaterialProcessWorkflow, workflows.MaterialProcessInput{
		Path:          storedPath,
		Filename:      fh.Filename,
		Topic:         r.FormValue("topic"),
		Length:        length,
		ExamMode:      r.FormValue("examMode") == "true",
		ExplainSimply: r.FormValue("explainSimply") == "true",
		Language:      r.FormValue("language"),
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"workflow_id": we.GetID(),
		"run_id":      we.GetRunID(),
		"filename":    fh.Filename,
	})
}

func (s *Server) handleMaterialScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	wfID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/materials/"), "/")
	if wfID == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	resp, err := s.temporal.QueryWorkflow(r.Context(), wfID, "", workflows.QueryGetMaterialProgress)
	if err != nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("workflow not found: %w", err))
		return
	}
	var progress workflows.MaterialProgress
	if err := resp.Get(&progress); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// auditLLMCall records the attempt regardless of outcome; audit failures are
// logged and swallowed so they never mask the primary response.
func (s *Server) auditLLMCall(ctx context.Context, op string, info providers.ProviderInfo, genErr error) {
	status := "ok"
	if genErr != nil {
		status = "failed"
	}
	rec := storage.LLMCallRecord{
		CallID:       uuid.NewString(),
		Operation:    op,
		ProviderName: info.Name,
		Model:        info.Model,
		Status:       status,
		ErrorType:    string(providers.ClassifyError(genErr)),
	}
	if err := s.llmAuditRepo.Insert(ctx, rec); err != nil {
		log.Printf("audit llm call %s: %v", op, err)
	}
}

func singleUploadedFile(r *http.Request) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, fmt.Errorf("no files provided")
	}
	for _, headers := range r.MultipartForm.File {
		if len(headers) > 0 {
			return headers[0], nil
		}
	}
	return nil, fmt.Errorf("no files provided")
}

func readUploadedFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return content, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "SM-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500 && status != http.StatusBadGateway:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "SM-DB-5001",
				Message: "Database schema is not initialized. Restart the API to run setup.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "SM-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "SM-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadGateway:
		code = "SM-LLM-5020"
		msg = "The study assistant could not produce a usable answer. Retry shortly."
	case status == http.StatusBadRequest:
		code = "SM-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "SM-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "SM-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusUnprocessableEntity:
		code = "SM-API-4022"
		msg = "The uploaded file could not be read."
	}

	// For 4xx, surface user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "content is required"):
			msg = "Study content is required."
		case strings.Contains(raw, "session_id is required"):
			msg = "A session is required to save quiz results."
		case strings.Contains(raw, "score must be between"):
			msg = "Quiz score must be between zero and the question total."
		case strings.Contains(raw, "no files provided"):
			msg = "No file was provided."
		case strings.Contains(raw, "unsupported file format"):
			msg = "Only PDF, DOCX, TXT and Markdown files are supported."
		case strings.Contains(raw, "no extractable text"):
			msg = "No readable text was found in the uploaded file."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
