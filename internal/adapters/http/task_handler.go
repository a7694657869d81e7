package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskHandler handles task and dashboard requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns the caller's tasks, optionally filtered by status and
// priority query parameters.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	identity := IdentityFromContext(c)

	filter := ports.TaskFilter{}
	if status := c.QueryParam("status"); status != "" {
		s := entities.TaskStatus(status)
		filter.Status = &s
	}
	if priority := c.QueryParam("priority"); priority != "" {
		p := entities.Priority(priority)
		filter.Priority = &p
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), identity, filter)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err, "user_id", identity.UserID)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, tasks)
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	identity := IdentityFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Fail(c, http.StatusNotFound, "Task not found")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), identity, taskID)
	if err != nil {
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, task)
}

// CreateTask creates a new task owned by the caller
func (h *TaskHandler) CreateTask(c echo.Context) error {
	identity := IdentityFromContext(c)

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Title, description, status, and priority are required")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), identity, req)
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err, "user_id", identity.UserID)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	identity := IdentityFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Fail(c, http.StatusNotFound, "Task not found")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), identity, taskID, req)
	if err != nil {
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, task)
}

// UpdateTaskStatus changes only the task's status
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	identity := IdentityFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Fail(c, http.StatusNotFound, "Task not found")
	}

	var req ports.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Status is required")
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), identity, taskID, entities.TaskStatus(req.Status))
	if err != nil {
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	identity := IdentityFromContext(c)

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Fail(c, http.StatusNotFound, "Task not found")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), identity, taskID); err != nil {
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// DashboardStats returns the caller's aggregate task counts
func (h *TaskHandler) DashboardStats(c echo.Context) error {
	identity := IdentityFromContext(c)

	stats, err := h.taskService.DashboardStats(c.Request().Context(), identity)
	if err != nil {
		h.logger.Errorw("Dashboard stats failed", "error", err, "user_id", identity.UserID)
		return FailFromError(c, err)
	}

	return OK(c, http.StatusOK, stats)
}
