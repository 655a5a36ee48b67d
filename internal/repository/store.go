package repository

import (
	"context"
	"fmt"

	"todo_reminder/internal/config"
	"todo_reminder/internal/db"
	"todo_reminder/internal/domain"
)

// TaskStore is the persistence boundary for tasks. Toggle and Delete
// return domain.ErrNotFound for unknown ids.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open connects the store selected by driver.
func Open(ctx context.Context, cfg *config.Config) (TaskStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewTaskRepository(pool), nil
	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(ctx, sqlDB)
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(ctx, client, cfg.MongoDB)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
