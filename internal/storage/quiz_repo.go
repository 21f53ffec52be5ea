package storage

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/models"
)

type QuizRepo struct {
	db *DB
}

func NewQuizRepo(db *DB) *QuizRepo {
	return &QuizRepo{db: db}
}

func (r *QuizRepo) InsertResult(ctx context.Context, q models.QuizResult) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO quiz_results (session_id, score, total, weak_topics)
VALUES ($1, $2, $3, $4)`, q.SessionID, q.Score, q.Total, joinWeakTopics(q.WeakTopics))
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

func (r *QuizRepo) ListResults(ctx context.Context) ([]models.QuizResult, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, session_id, score, total, weak_topics, created_at
FROM quiz_results
ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	out := make([]models.QuizResult, 0)
	for rows.Next() {
		var q models.QuizResult
		var weak string
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Score, &q.Total, &weak, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		q.WeakTopics = splitWeakTopics(weak)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return out, nil
}

func (r *QuizRepo) ClearResults(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM quiz_results`); err != nil {
		return fmt.Errorf("clear quiz results: %w", err)
	}
	return nil
}

// weak_topics is stored as a comma-joined string for compatibility with
// historical rows; commas inside labels are not supported.
func joinWeakTopics(topics []string) string {
	clean := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(strings.ReplaceAll(t, ",", " "))
		if t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

func splitWeakTopics(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
