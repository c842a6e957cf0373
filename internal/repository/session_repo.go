package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nekomate-backend/internal/models"
)

// SessionRepo stores completed study sessions. Rows are append-only: the
// core never updates or deletes them.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, session *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (id, user_id, duration_seconds, started_at, ended_at, date, session_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	session.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		session.ID, session.UserID, session.DurationSeconds,
		session.StartedAt, session.EndedAt, session.Date, session.SessionName,
	).Scan(&session.CreatedAt)
}

// ListByUserSince returns the user's sessions with started_at >= since,
// newest first.
func (r *SessionRepo) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.StudySession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, duration_seconds, started_at, ended_at, date, session_name, created_at
		FROM study_sessions
		WHERE user_id = $1 AND started_at >= $2
		ORDER BY started_at DESC
	`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		var s models.StudySession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.DurationSeconds, &s.StartedAt, &s.EndedAt,
			&s.Date, &s.SessionName, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
