package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nekomate-backend/internal/models"
)

type TodoRepo struct {
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo {
	return &TodoRepo{pool: pool}
}

func (r *TodoRepo) Create(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	todo.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.ImageURL,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)
}

func (r *TodoRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, completed, image_url, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.ImageURL, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Update(ctx context.Context, todo *models.Todo) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, image_url = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, todo.ID, todo.UserID, todo.Title, todo.Description, todo.ImageURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TodoRepo) SetCompleted(ctx context.Context, todoID, userID uuid.UUID, completed bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET completed = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, todoID, userID, completed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TodoRepo) Delete(ctx context.Context, todoID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", todoID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
