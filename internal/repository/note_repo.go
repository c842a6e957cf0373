package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nekomate-backend/internal/models"
)

// NoteRepo stores the timer-side notes and YouTube bookmarks.
type NoteRepo struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

func (r *NoteRepo) CreateNote(ctx context.Context, note *models.TimerNote) error {
	note.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO timer_notes (id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, note.ID, note.UserID, note.Content).Scan(&note.CreatedAt)
}

func (r *NoteRepo) ListNotes(ctx context.Context, userID uuid.UUID) ([]models.TimerNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, content, created_at
		FROM timer_notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.TimerNote{}
	for rows.Next() {
		var n models.TimerNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepo) DeleteNote(ctx context.Context, noteID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM timer_notes WHERE id = $1 AND user_id = $2", noteID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *NoteRepo) CreateLink(ctx context.Context, link *models.YouTubeLink) error {
	link.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO youtube_links (id, user_id, title, url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, link.ID, link.UserID, link.Title, link.URL).Scan(&link.CreatedAt)
}

func (r *NoteRepo) ListLinks(ctx context.Context, userID uuid.UUID) ([]models.YouTubeLink, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, url, created_at
		FROM youtube_links
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.YouTubeLink{}
	for rows.Next() {
		var l models.YouTubeLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *NoteRepo) DeleteLink(ctx context.Context, linkID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM youtube_links WHERE id = $1 AND user_id = $2", linkID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
