package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"todo_reminder/internal/domain"
	"todo_reminder/internal/logger"

	"github.com/gin-gonic/gin"
)

// TodoService is the subset of service.TodoService the handlers need.
type TodoService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, in domain.CreateTaskInput) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Todos TodoService
}

func NewHandler(todos TodoService) *Handler {
	return &Handler{Todos: todos}
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
	default:
		logger.Error("todo operation failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
	}
}
