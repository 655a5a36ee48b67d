package handlers

import (
	"net/http"

	"todo_reminder/internal/domain"
	"todo_reminder/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ListTodos returns every task, newest first.
func (h *Handler) ListTodos(c *gin.Context) {
	tasks, err := h.Todos.List(c.Request.Context())
	if err != nil {
		writeError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTodo expects {text, date?, time?}
func (h *Handler) CreateTodo(c *gin.Context) {
	var req domain.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.Todos.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, "create", err)
		return
	}
	middleware.TodoOps.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, task)
}

// ToggleTodo flips the completed flag.
func (h *Handler) ToggleTodo(c *gin.Context) {
	task, err := h.Todos.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "toggle", err)
		return
	}
	middleware.TodoOps.WithLabelValues("toggle").Inc()
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.Todos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, "delete", err)
		return
	}
	middleware.TodoOps.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
