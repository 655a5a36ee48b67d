package repository

import (
	"context"
	"errors"

	"todo_reminder/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository stores tasks in the Postgres table created by
// internal/migrations.
type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, text, completed, date, time, created_at
		 FROM todos
		 ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.Date, &t.Time, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO todos (id, text, completed, date, time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		t.ID, t.Text, t.Completed, t.Date, t.Time, t.CreatedAt,
	).Scan(&t.CreatedAt)
	return t, err
}

func (r *TaskRepository) Toggle(ctx context.Context, id string) (domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`UPDATE todos SET completed = NOT completed
		 WHERE id = $1
		 RETURNING id, text, completed, date, time, created_at`,
		id,
	).Scan(&t.ID, &t.Text, &t.Completed, &t.Date, &t.Time, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	return t, err
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *TaskRepository) Close() error {
	r.db.Close()
	return nil
}
