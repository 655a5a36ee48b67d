// Package clock supplies the reminder scan with the current time and its
// scan cadence, so tests can move both by hand.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// Every delivers the current time on the returned channel once per d
	// until stop is called. Ticks the reader is not ready for are dropped.
	Every(d time.Duration) (ticks <-chan time.Time, stop func())
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) Every(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Fake stands still until Set or Advance moves it. Moving it fires every
// ticker whose next tick has been reached, once per move.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

type fakeTicker struct {
	c       chan time.Time
	period  time.Duration
	next    time.Time
	stopped bool
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Every(d time.Duration) (<-chan time.Time, func()) {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTicker{c: make(chan time.Time, 1), period: d, next: f.now.Add(d)}
	f.tickers = append(f.tickers, t)
	stop := func() {
		f.mu.Lock()
		t.stopped = true
		f.mu.Unlock()
	}
	return t.c, stop
}

// Tickers reports how many tickers are still running.
func (f *Fake) Tickers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.fire()
	f.mu.Unlock()
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.fire()
	f.mu.Unlock()
}

// fire must be called with f.mu held.
func (f *Fake) fire() {
	live := f.tickers[:0]
	for _, t := range f.tickers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if f.now.Before(t.next) {
			continue
		}
		for !f.now.Before(t.next) {
			t.next = t.next.Add(t.period)
		}
		select {
		case t.c <- f.now:
		default:
		}
	}
	f.tickers = live
}
