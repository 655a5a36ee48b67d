package service

import (
	"context"
	"errors"
	"fmt"

	"todo_reminder/internal/clock"
	"todo_reminder/internal/domain"
	"todo_reminder/internal/repository"

	"github.com/google/uuid"
)

// TodoService applies the task rules on top of a TaskStore: validation,
// id and timestamp assignment, and error classification.
type TodoService struct {
	store repository.TaskStore
	clock clock.Clock
	newID func() string
}

// NewTodoService creates a service using the real clock and random UUIDs.
func NewTodoService(store repository.TaskStore) *TodoService {
	return NewTodoServiceWithClock(store, clock.Real{})
}

// NewTodoServiceWithClock creates a service with a custom clock
func NewTodoServiceWithClock(store repository.TaskStore, c clock.Clock) *TodoService {
	return &TodoService{
		store: store,
		clock: c,
		newID: uuid.NewString,
	}
}

// List returns all tasks, newest first.
func (s *TodoService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, storageErr("list", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create validates the input and persists a new incomplete task.
func (s *TodoService) Create(ctx context.Context, in domain.CreateTaskInput) (domain.Task, error) {
	in, err := in.Normalize()
	if err != nil {
		return domain.Task{}, err
	}

	t := domain.Task{
		ID:        s.newID(),
		Text:      in.Text,
		Completed: false,
		Date:      in.Date,
		Time:      in.Time,
		CreatedAt: s.clock.Now().UTC(),
	}

	created, err := s.store.Create(ctx, t)
	if err != nil {
		return domain.Task{}, storageErr("create", err)
	}
	return created, nil
}

// Toggle flips the completion flag of the task with the given id.
func (s *TodoService) Toggle(ctx context.Context, id string) (domain.Task, error) {
	t, err := s.store.Toggle(ctx, id)
	if err != nil {
		return domain.Task{}, storageErr("toggle", err)
	}
	return t, nil
}

// Delete removes the task permanently. Unknown ids yield domain.ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storageErr("delete", err)
	}
	return nil
}

// Ping reports whether the store is reachable.
func (s *TodoService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, op, err)
}
