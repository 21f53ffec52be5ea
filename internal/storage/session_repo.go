package storage

import (
	"context"
	"fmt"

	"studymate/internal/models"
)

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) InsertSession(ctx context.Context, s models.StudySession) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
INSERT INTO study_sessions (topic, raw_content, summary_json)
VALUES ($1, $2, $3)
RETURNING id`, s.Topic, s.RawContent, s.SummaryJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

func (r *SessionRepo) ListSessions(ctx context.Context) ([]models.StudySession, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id, topic, raw_content, summary_json, created_at
FROM study_sessions
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]models.StudySession, 0)
	for rows.Next() {
		var s models.StudySession
		if err := rows.Scan(&s.ID, &s.Topic, &s.RawContent, &s.SummaryJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *SessionRepo) ClearSessions(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM study_sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}
