package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nekomate-backend/internal/models"
)

type CalendarRepo struct {
	pool *pgxpool.Pool
}

func NewCalendarRepo(pool *pgxpool.Pool) *CalendarRepo {
	return &CalendarRepo{pool: pool}
}

func (r *CalendarRepo) Create(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, user_id, title, description, date, time, type, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	event.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		event.ID, event.UserID, event.Title, event.Description,
		event.Date, event.Time, event.Type, event.Completed,
	).Scan(&event.CreatedAt)
}

// ListByUser returns the user's events ascending by date; month, when
// non-empty, is a YYYY-MM prefix filter.
func (r *CalendarRepo) ListByUser(ctx context.Context, userID uuid.UUID, month string) ([]models.CalendarEvent, error) {
	query := `
		SELECT id, user_id, title, description, date, time, type, completed, created_at
		FROM calendar_events
		WHERE user_id = $1`
	args := []interface{}{userID}

	if month != "" {
		query += " AND date LIKE $2"
		args = append(args, month+"%")
	}
	query += " ORDER BY date ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.CalendarEvent{}
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.Description, &e.Date,
			&e.Time, &e.Type, &e.Completed, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *CalendarRepo) Update(ctx context.Context, event *models.CalendarEvent) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE calendar_events
		SET title = $3, description = $4, date = $5, time = $6, type = $7, completed = $8
		WHERE id = $1 AND user_id = $2
	`, event.ID, event.UserID, event.Title, event.Description,
		event.Date, event.Time, event.Type, event.Completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CalendarRepo) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM calendar_events WHERE id = $1 AND user_id = $2", eventID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
