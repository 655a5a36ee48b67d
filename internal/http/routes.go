package http

import (
	"time"

	"todo_reminder/internal/http/handlers"
	"todo_reminder/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteConfig carries the knobs RegisterRoutes needs.
type RouteConfig struct {
	Version       string
	APIRateLimit  int
	APIRateWindow time.Duration
}

// NewEngine returns a gin engine with recovery and request logging. Only
// the listed proxies are trusted to report the client IP.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	return r, nil
}

// RegisterRoutes mounts the todo API, health probes and metrics on r.
func RegisterRoutes(r *gin.Engine, todos handlers.TodoService, store handlers.Pinger, cfg RouteConfig) {
	h := handlers.NewHandler(todos)
	healthHandler := handlers.NewHealthHandler(store, cfg.Version)

	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	todosGroup := api.Group("/todos")
	if cfg.APIRateLimit > 0 {
		todosGroup.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	}
	{
		todosGroup.GET("", h.ListTodos)
		todosGroup.POST("", h.CreateTodo)
		todosGroup.PUT("/:id", h.ToggleTodo)
		todosGroup.DELETE("/:id", h.DeleteTodo)
	}
}
