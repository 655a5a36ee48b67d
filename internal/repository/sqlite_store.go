package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo_reminder/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT    NOT NULL UNIQUE,
    text       TEXT    NOT NULL,
    completed  INTEGER NOT NULL DEFAULT 0,
    date       TEXT    NOT NULL DEFAULT '',
    time       TEXT    NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at DESC, seq DESC);
`

// SQLiteStore keeps tasks in a SQLite file. created_at is stored as unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the schema if needed.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, completed, date, time, created_at
		 FROM todos
		 ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, text, completed, date, time, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Text, t.Completed, t.Date, t.Time, t.CreatedAt.UnixNano())
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (s *SQLiteStore) Toggle(ctx context.Context, id string) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE todos SET completed = 1 - completed
		 WHERE id = ?
		 RETURNING id, text, completed, date, time, created_at`, id)
	t, err := scanSQLiteTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	return t, err
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTask(row rowScanner) (domain.Task, error) {
	var (
		t         domain.Task
		completed int64
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.Text, &completed, &t.Date, &t.Time, &createdAt); err != nil {
		return domain.Task{}, err
	}
	t.Completed = completed != 0
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return t, nil
}
