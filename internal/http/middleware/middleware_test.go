package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSimpleRateLimit_BlocksAfterLimit(t *testing.T) {
	r := gin.New()
	r.GET("/ping", SimpleRateLimit(3, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestSimpleRateLimit_WindowResets(t *testing.T) {
	r := gin.New()
	r.GET("/ping", SimpleRateLimit(1, 20*time.Millisecond), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	time.Sleep(40 * time.Millisecond)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWindowCounter_EvictsExpiredClients(t *testing.T) {
	w := newWindowCounter(time.Minute)
	t0 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, w.hit("10.0.0.1", t0))
	assert.Equal(t, 1, w.hit("10.0.0.2", t0.Add(10*time.Second)))
	assert.Equal(t, 2, w.hit("10.0.0.1", t0.Add(20*time.Second)))
	assert.Equal(t, 2, w.size())

	// both windows have expired; only the new client remains
	assert.Equal(t, 1, w.hit("10.0.0.3", t0.Add(3*time.Minute)))
	assert.Equal(t, 1, w.size())

	assert.Equal(t, 1, w.hit("10.0.0.1", t0.Add(3*time.Minute+time.Second)))
}

func TestRedisRateLimit_FailsOpen(t *testing.T) {
	redisClient = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer func() {
		_ = redisClient.Close()
		redisClient = nil
	}()

	r := gin.New()
	r.GET("/ping", RedisRateLimit(1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "redis-error", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/api/todos", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/todos", nil)
	req.Header.Set("Origin", "https://todo.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://todo.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
