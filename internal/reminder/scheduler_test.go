package reminder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"todo_reminder/internal/clock"
	"todo_reminder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	mu    sync.Mutex
	tasks []domain.Task
	err   error
}

func (s *staticSource) List(context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Task(nil), s.tasks...), nil
}

func (s *staticSource) set(tasks ...domain.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

type recordingNotifier struct {
	mu  sync.Mutex
	got []Reminder
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, r Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, r)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.got)
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestScheduler(src Source, n Notifier, clk clock.Clock, w Window) *Scheduler {
	return NewScheduler(src, n, Options{
		Interval: time.Minute,
		Window:   w,
		Clock:    clk,
		Location: time.UTC,
		Logger:   quietLogger,
	})
}

func milk() domain.Task {
	return domain.Task{ID: "t1", Text: "Buy milk", Date: "2025-01-01", Time: "09:00"}
}

func TestWindow_Contains(t *testing.T) {
	due := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	w := Window{Lead: 30 * time.Second, Grace: 30 * time.Second}

	assert.False(t, w.Contains(due, due.Add(-31*time.Second)))
	assert.True(t, w.Contains(due, due.Add(-30*time.Second)))
	assert.True(t, w.Contains(due, due))
	assert.True(t, w.Contains(due, due.Add(29*time.Second)))
	assert.False(t, w.Contains(due, due.Add(30*time.Second)))

	assert.True(t, DefaultWindow.Contains(due, due.Add(59*time.Second+999*time.Millisecond)))
	assert.False(t, DefaultWindow.Contains(due, due.Add(-time.Nanosecond)))
	assert.False(t, DefaultWindow.Contains(due, due.Add(time.Minute)))

	assert.True(t, Window{}.Empty())
	assert.True(t, Window{Lead: time.Minute, Grace: -time.Minute}.Empty())
	assert.False(t, Window{Lead: 5 * time.Minute, Grace: -time.Minute}.Empty())
}

func TestScan_DefaultWindowCatchesEveryScanPhase(t *testing.T) {
	due := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	phases := []time.Duration{0, time.Second, 30 * time.Second, 59 * time.Second, 59*time.Second + 500*time.Millisecond}

	for _, phase := range phases {
		t.Run(phase.String(), func(t *testing.T) {
			src := &staticSource{}
			src.set(milk())
			n := &recordingNotifier{}
			clk := clock.NewFake(due.Add(-time.Minute).Add(phase))
			s := newTestScheduler(src, n, clk, DefaultWindow)

			for i := 0; i < 3; i++ {
				_, err := s.Scan(context.Background())
				require.NoError(t, err)
				clk.Advance(time.Minute)
			}
			assert.Equal(t, 1, n.count(), "scan phase %s", phase)
		})
	}
}

func TestScan_LastSecondOfDueMinute(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 59, 500_000_000, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)

	got, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewScheduler_EmptyWindowFallsBackToDefault(t *testing.T) {
	s := newTestScheduler(&staticSource{}, &recordingNotifier{}, clock.NewFake(time.Now()), Window{})
	assert.Equal(t, DefaultWindow, s.window)

	w := Window{Lead: 10 * time.Minute, Grace: -5 * time.Minute}
	s = newTestScheduler(&staticSource{}, &recordingNotifier{}, clock.NewFake(time.Now()), w)
	assert.Equal(t, w, s.window)
}

func TestScan_NegativeGraceNotifiesAheadOnly(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 8, 54, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, Window{Lead: 10 * time.Minute, Grace: -5 * time.Minute})

	got, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	n2 := &recordingNotifier{}
	clk.Set(time.Date(2025, 1, 1, 8, 56, 0, 0, time.UTC))
	s = newTestScheduler(src, n2, clk, Window{Lead: 10 * time.Minute, Grace: -5 * time.Minute})
	got, err = s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_NotifiesOncePerDueTask(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 8, 59, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)
	ctx := context.Background()

	got, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	clk.Advance(time.Minute + 10*time.Second)
	got, err = s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Task.ID)
	assert.Equal(t, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), got[0].Due)

	clk.Advance(20 * time.Second)
	got, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	clk.Advance(time.Hour)
	_, err = s.Scan(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, n.count())
}

func TestScan_SkipsCompletedAndUnscheduled(t *testing.T) {
	done := milk()
	done.Completed = true
	dateOnly := domain.Task{ID: "t2", Text: "date only", Date: "2025-01-01"}
	timeOnly := domain.Task{ID: "t3", Text: "time only", Time: "09:00"}

	src := &staticSource{}
	src.set(done, dateOnly, timeOnly)
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)

	got, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, n.count())
}

func TestScan_UncompletedAfterToggleStillDueOnce(t *testing.T) {
	task := milk()
	task.Completed = true
	src := &staticSource{}
	src.set(task)
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)
	ctx := context.Background()

	_, err := s.Scan(ctx)
	require.NoError(t, err)

	task.Completed = false
	src.set(task)
	clk.Advance(10 * time.Second)
	_, err = s.Scan(ctx)
	require.NoError(t, err)
	clk.Advance(10 * time.Second)
	_, err = s.Scan(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, n.count())
}

func TestScan_LeadWindow(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 8, 59, 35, 0, time.UTC))
	s := newTestScheduler(src, n, clk, Window{Lead: 30 * time.Second, Grace: 30 * time.Second})

	got, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestScan_SourceErrorIsReturned(t *testing.T) {
	src := &staticSource{err: errors.New("connection refused")}
	s := newTestScheduler(src, &recordingNotifier{}, clock.NewFake(time.Now()), DefaultWindow)

	_, err := s.Scan(context.Background())
	assert.Error(t, err)
}

func TestScan_FailedNotificationIsNotRetried(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{err: errors.New("display unavailable")}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)

	got, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n.count())
}

func TestScan_DeletedTaskIsForgotten(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)
	ctx := context.Background()

	_, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, s.notified, 1)

	src.set()
	_, err = s.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.notified)
}

func TestRun_StopsOnCancel(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	s := NewScheduler(src, n, Options{
		Interval: 5 * time.Millisecond,
		Window:   DefaultWindow,
		Clock:    clk,
		Location: time.UTC,
		Logger:   quietLogger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, 1, n.count())
}

func TestRun_ScansOnEveryTick(t *testing.T) {
	src := &staticSource{}
	src.set(milk())
	n := &recordingNotifier{}
	clk := clock.NewFake(time.Date(2025, 1, 1, 8, 58, 59, 500_000_000, time.UTC))
	s := newTestScheduler(src, n, clk, DefaultWindow)

	scanned := make(chan struct{}, 10)
	counting := sourceFunc(func(ctx context.Context) ([]domain.Task, error) {
		defer func() { scanned <- struct{}{} }()
		return src.List(ctx)
	})
	s.source = counting

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	waitScan := func() {
		t.Helper()
		select {
		case <-scanned:
		case <-time.After(time.Second):
			t.Fatal("no scan")
		}
	}

	waitScan()
	require.Eventually(t, func() bool { return clk.Tickers() == 1 }, time.Second, time.Millisecond)

	clk.Advance(time.Minute) // 08:59:59.5
	waitScan()
	assert.Equal(t, 0, n.count())

	clk.Advance(time.Minute) // 09:00:59.5
	waitScan()
	require.Eventually(t, func() bool { return n.count() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, clk.Tickers())
}

type sourceFunc func(ctx context.Context) ([]domain.Task, error)

func (f sourceFunc) List(ctx context.Context) ([]domain.Task, error) { return f(ctx) }

func TestDialogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDialogNotifier(&buf)

	err := n.Notify(context.Background(), Reminder{Task: milk(), Due: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), reminderTitle)
	assert.Contains(t, buf.String(), "Buy milk")
	assert.Contains(t, buf.String(), "Scheduled for January 1, 2025 at 09:00")
}

func TestMultiNotifier_JoinsErrors(t *testing.T) {
	ok := &recordingNotifier{}
	bad := &recordingNotifier{err: errors.New("boom")}
	m := MultiNotifier{bad, ok, LogNotifier{Logger: quietLogger}}

	err := m.Notify(context.Background(), Reminder{Task: milk()})
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, ok.count())
}
