package activities

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"studymate/internal/config"
	"studymate/internal/extract"
	"studymate/internal/intelligence"
	"studymate/internal/models"
	"studymate/internal/providers"
	"studymate/internal/storage"
	"studymate/internal/studygen"
	"studymate/internal/util"
)

type Activities struct {
	cfg          config.Config
	sessionRepo  *storage.SessionRepo
	llmAuditRepo *storage.LLMAuditRepo
	engine       *studygen.Engine
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		return nil, err
	}
	return &Activities{
		cfg:          cfg,
		sessionRepo:  storage.NewSessionRepo(db),
		llmAuditRepo: storage.NewLLMAuditRepo(db),
		engine:       studygen.New(pm, cfg.MaxPromptChars),
	}, nil
}

func (a *Activities) ExtractTextActivity(ctx context.Context, in ExtractTextInput) (ExtractTextOutput, error) {
	_ = ctx
	text, err := extract.FromFile(in.Path, in.Filename)
	if err != nil {
		return ExtractTextOutput{}, err
	}
	return ExtractTextOutput{Text: text}, nil
}

func (a *Activities) ComputeWeightsActivity(ctx context.Context, in ComputeWeightsInput) (ComputeWeightsOutput, error) {
	_ = ctx
	weights := intelligence.CalculateExamWeights(in.Text)
	out := ComputeWeightsOutput{Weights: make([]TermWeight, 0, len(weights))}
	for term, w := range weights {
		out.Weights = append(out.Weights, TermWeight{
			Term:   term,
			Weight: w,
			Badge:  intelligence.ImportanceBadge(w),
		})
	}
	sort.Slice(out.Weights, func(i, j int) bool {
		if out.Weights[i].Weight == out.Weights[j].Weight {
			return out.Weights[i].Term < out.Weights[j].Term
		}
		return out.Weights[i].Weight > out.Weights[j].Weight
	})
	return out, nil
}

func (a *Activities) GenerateSummaryActivity(ctx context.Context, in GenerateSummaryInput) (GenerateSummaryOutput, error) {
	length := in.Length
	if length <= 0 {
		length = a.cfg.SummaryLength
	}
	content, info, err := a.engine.GenerateExamSummary(ctx, in.Text, studygen.SummaryOptions{
		Length:        length,
		ExamMode:      in.ExamMode,
		ExplainSimply: in.ExplainSimply,
		Language:      in.Language,
		Topic:         in.Topic,
	})
	if err != nil {
		return GenerateSummaryOutput{ProviderName: info.Name, Model: info.Model}, err
	}
	topic := strings.TrimSpace(content.Topic)
	if topic == "" {
		topic = in.Topic
	}
	b, err := json.Marshal(content)
	if err != nil {
		return GenerateSummaryOutput{ProviderName: info.Name, Model: info.Model}, fmt.Errorf("encode summary: %w", err)
	}
	return GenerateSummaryOutput{
		SummaryJSON:  string(b),
		Topic:        topic,
		ProviderName: info.Name,
		Model:        info.Model,
	}, nil
}

func (a *Activities) SaveSessionActivity(ctx context.Context, in SaveSessionInput) (SaveSessionOutput, error) {
	id, err := a.sessionRepo.InsertSession(ctx, models.StudySession{
		Topic:       in.Topic,
		RawContent:  util.SanitizeText(in.RawContent),
		SummaryJSON: in.SummaryJSON,
	})
	if err != nil {
		return SaveSessionOutput{}, err
	}
	return SaveSessionOutput{SessionID: id}, nil
}

func (a *Activities) WriteSessionArtifactsActivity(ctx context.Context, in WriteSessionArtifactsInput) (WriteSessionArtifactsOutput, error) {
	_ = ctx
	dir := filepath.Join(a.cfg.DataOutRoot, "sessions", fmt.Sprintf("%d", in.SessionID))
	manifest := map[string]any{
		"session_id":  in.SessionID,
		"topic":       in.Topic,
		"source_file": in.SourceFile,
	}
	if err := util.WriteJSONAtomic(filepath.Join(dir, "session.json"), manifest); err != nil {
		return WriteSessionArtifactsOutput{}, err
	}
	if err := util.WriteJSONAtomic(filepath.Join(dir, "weights.json"), in.Weights); err != nil {
		return WriteSessionArtifactsOutput{}, err
	}
	if in.SummaryJSON != "" {
		if err := util.WriteTextAtomic(filepath.Join(dir, "summary.json"), in.SummaryJSON); err != nil {
			return WriteSessionArtifactsOutput{}, err
		}
	}
	return WriteSessionArtifactsOutput{Dir: dir}, nil
}

func (a *Activities) LogLLMCallActivity(ctx context.Context, in LogLLMCallInput) error {
	return a.llmAuditRepo.Insert(ctx, storage.LLMCallRecord{
		CallID:       in.CallID,
		Operation:    in.Operation,
		ProviderName: in.ProviderName,
		Model:        in.Model,
		Status:       in.Status,
		ErrorType:    in.ErrorType,
	})
}
