package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// windowCounter counts hits per key in fixed windows. Expired keys are
// swept at most once per window, so memory tracks recently active clients.
type windowCounter struct {
	mu        sync.Mutex
	window    time.Duration
	clients   map[string]*clientInfo
	lastSweep time.Time
}

func newWindowCounter(window time.Duration) *windowCounter {
	return &windowCounter{window: window, clients: make(map[string]*clientInfo)}
}

// hit records one request for key and returns the count in its window.
func (w *windowCounter) hit(key string, now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) > w.window {
		for k, ci := range w.clients {
			if now.Sub(ci.start) > w.window {
				delete(w.clients, k)
			}
		}
		w.lastSweep = now
	}

	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.start) > w.window {
		ci = &clientInfo{start: now}
		w.clients[key] = ci
	}
	ci.count++
	return ci.count
}

func (w *windowCounter) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// SimpleRateLimit is an in-process fixed-window limiter keyed by client IP.
// It is used when Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	counter := newWindowCounter(window)

	return func(c *gin.Context) {
		if counter.hit(c.ClientIP(), time.Now()) > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
