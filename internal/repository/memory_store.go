package repository

import (
	"context"
	"sort"
	"sync"

	"todo_reminder/internal/domain"
)

type memoryEntry struct {
	task domain.Task
	seq  int64
}

// MemoryStore keeps tasks in process memory; contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]memoryEntry
	seq   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]memoryEntry)}
}

func (s *MemoryStore) List(ctx context.Context) ([]domain.Task, error) {
	_ = ctx

	s.mu.RLock()
	entries := make([]memoryEntry, 0, len(s.tasks))
	for _, e := range s.tasks {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]domain.Task, len(entries))
	for i, e := range entries {
		out[i] = e.task
	}
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.tasks[t.ID] = memoryEntry{task: t, seq: s.seq}
	return t, nil
}

func (s *MemoryStore) Toggle(ctx context.Context, id string) (domain.Task, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	e.task.Completed = !e.task.Completed
	s.tasks[id] = e
	return e.task, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
