// Package reminder scans the task list on a fixed interval and notifies
// once for every incomplete task whose due instant falls in the window.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"todo_reminder/internal/clock"
	"todo_reminder/internal/domain"
)

// Source supplies the current task list. client.Client satisfies it.
type Source interface {
	List(ctx context.Context) ([]domain.Task, error)
}

// Reminder is one due task handed to a Notifier.
type Reminder struct {
	Task domain.Task
	Due  time.Time
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// Window is the tolerance around a due instant. A task is due when
// due-Lead <= now < due+Grace.
type Window struct {
	Lead  time.Duration
	Grace time.Duration
}

// DefaultWindow matches a task during the minute it is scheduled for.
// With a one-minute scan interval every phase lands exactly one scan in it.
var DefaultWindow = Window{Grace: time.Minute}

func (w Window) Contains(due, now time.Time) bool {
	return !now.Before(due.Add(-w.Lead)) && now.Before(due.Add(w.Grace))
}

// Empty reports whether no instant can fall inside the window.
func (w Window) Empty() bool {
	return w.Lead+w.Grace <= 0
}

type Options struct {
	Interval time.Duration
	Window   Window
	Clock    clock.Clock
	Location *time.Location
	Logger   *slog.Logger
}

// Scheduler runs reminder scans. Scan may be called concurrently with Run.
type Scheduler struct {
	source   Source
	notifier Notifier
	interval time.Duration
	window   Window
	clock    clock.Clock
	loc      *time.Location
	log      *slog.Logger

	mu       sync.Mutex
	notified map[string]struct{}
}

func NewScheduler(source Source, notifier Notifier, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Window.Empty() {
		opts.Logger.Warn("empty reminder window, using default",
			"lead", opts.Window.Lead, "grace", opts.Window.Grace)
		opts.Window = DefaultWindow
	}
	if opts.Window.Lead+opts.Window.Grace < opts.Interval {
		opts.Logger.Warn("reminder window is shorter than the scan interval, reminders may be missed",
			"window", opts.Window.Lead+opts.Window.Grace, "interval", opts.Interval)
	}
	return &Scheduler{
		source:   source,
		notifier: notifier,
		interval: opts.Interval,
		window:   opts.Window,
		clock:    opts.Clock,
		loc:      opts.Location,
		log:      opts.Logger,
		notified: make(map[string]struct{}),
	}
}

// dedupKey includes the due instant so a task whose schedule changes is
// treated as a new due event.
func dedupKey(id string, due time.Time) string {
	return id + "@" + due.UTC().Format(time.RFC3339)
}

// Scan fetches the list once and notifies for tasks that became due.
// It returns the reminders that were delivered.
func (s *Scheduler) Scan(ctx context.Context) ([]Reminder, error) {
	tasks, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	live := make(map[string]struct{}, len(tasks))
	var due []Reminder

	s.mu.Lock()
	for _, t := range tasks {
		at, ok := t.Due(s.loc)
		if !ok {
			continue
		}
		key := dedupKey(t.ID, at)
		live[key] = struct{}{}

		if t.Completed || !s.window.Contains(at, now) {
			continue
		}
		if _, seen := s.notified[key]; seen {
			continue
		}
		s.notified[key] = struct{}{}
		due = append(due, Reminder{Task: t, Due: at})
	}
	// forget deleted tasks
	for key := range s.notified {
		if _, ok := live[key]; !ok {
			delete(s.notified, key)
		}
	}
	s.mu.Unlock()

	delivered := make([]Reminder, 0, len(due))
	for _, r := range due {
		if err := s.notifier.Notify(ctx, r); err != nil {
			s.log.Warn("reminder notification failed", "id", r.Task.ID, "error", err)
			continue
		}
		delivered = append(delivered, r)
	}
	return delivered, nil
}

// Run scans immediately and then every interval until ctx is done.
// Failed scans are logged and skipped.
func (s *Scheduler) Run(ctx context.Context) error {
	ticks, stop := s.clock.Every(s.interval)
	defer stop()

	for {
		if _, err := s.Scan(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("reminder scan failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
		}
	}
}
