package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskService is the task lifecycle engine. All operations are scoped to the
// resolved identity: a task is visible and mutable only to its creator or
// assignee, and anything outside that scope reports ErrTaskNotFound.
type TaskService struct {
	taskRepo   ports.TaskRepository
	statsCache ports.StatsCache
	logger     *logger.Logger
	now        func() time.Time
}

// NewTaskService creates a new task service. statsCache may be nil, in which
// case every stats request hits the repository.
func NewTaskService(taskRepo ports.TaskRepository, statsCache ports.StatsCache, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statsCache: statsCache,
		logger:     logger,
		now:        time.Now,
	}
}

// ListTasks returns the identity's tasks, newest first, optionally narrowed
// by exact status/priority matches.
func (s *TaskService) ListTasks(ctx context.Context, identity ports.Claims, filter ports.TaskFilter) ([]*entities.Task, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, entities.NewValidationError("invalid status value")
	}
	if filter.Priority != nil && !filter.Priority.IsValid() {
		return nil, entities.NewValidationError("invalid priority value")
	}

	tasks, err := s.taskRepo.List(ctx, identity.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a single task under the ownership predicate.
func (s *TaskService) GetTask(ctx context.Context, identity ports.Claims, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask validates and persists a new task. CreatedBy is forced to the
// identity regardless of input, AssignedTo defaults to the creator, and
// CompletedAt starts absent no matter what the initial status says.
func (s *TaskService) CreateTask(ctx context.Context, identity ports.Claims, req ports.CreateTaskRequest) (*entities.Task, error) {
	status := entities.TaskStatus(req.Status)
	if !status.IsValid() {
		return nil, entities.NewValidationError("invalid status value")
	}

	priority := entities.Priority(req.Priority)
	if !priority.IsValid() {
		return nil, entities.NewValidationError("invalid priority value")
	}

	assignedTo := identity.UserID
	if req.AssignedTo != nil {
		assignedTo = *req.AssignedTo
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   identity.UserID,
		AssignedTo:  assignedTo,
		CompletedAt: nil,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "user_id", identity.UserID)
	s.invalidateStats(ctx, task.CreatedBy, task.AssignedTo)

	return task, nil
}

// UpdateTask applies a partial update. Only fields present in the payload
// change; validation happens before any write so an invalid value leaves the
// task untouched.
func (s *TaskService) UpdateTask(ctx context.Context, identity ports.Claims, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}
	previousAssignee := task.AssignedTo

	if req.Status.Set {
		status := entities.TaskStatus("")
		if req.Status.Valid {
			status = entities.TaskStatus(req.Status.Value)
		}
		if !status.IsValid() {
			return nil, entities.NewValidationError("invalid status value")
		}
	}
	if req.Priority.Set {
		priority := entities.Priority("")
		if req.Priority.Valid {
			priority = entities.Priority(req.Priority.Value)
		}
		if !priority.IsValid() {
			return nil, entities.NewValidationError("invalid priority value")
		}
	}
	if req.Title.Set && req.Title.Valid && len(req.Title.Value) > 255 {
		return nil, entities.NewValidationError("task title must not exceed 255 characters")
	}
	if req.Description.Set && req.Description.Valid && len(req.Description.Value) > 1000 {
		return nil, entities.NewValidationError("task description must not exceed 1000 characters")
	}
	if req.AssignedTo.Set && !req.AssignedTo.Valid {
		return nil, entities.NewValidationError("assigned_to cannot be null")
	}

	if req.Title.Set {
		task.Title = req.Title.Value
	}
	if req.Description.Set {
		task.Description = req.Description.Value
	}
	if req.Status.Set {
		task.ApplyStatus(entities.TaskStatus(req.Status.Value), s.now())
	}
	if req.Priority.Set {
		task.Priority = entities.Priority(req.Priority.Value)
	}
	if req.DueDate.Set {
		if req.DueDate.Valid {
			due := req.DueDate.Value
			task.DueDate = &due
		} else {
			task.DueDate = nil
		}
	}
	if req.AssignedTo.Set {
		task.AssignedTo = req.AssignedTo.Value
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "user_id", identity.UserID)
	s.invalidateStats(ctx, task.CreatedBy, previousAssignee, task.AssignedTo)

	return task, nil
}

// UpdateTaskStatus is the status-only variant of UpdateTask, with the same
// enumeration check and CompletedAt derivation.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, identity ports.Claims, id uuid.UUID, status entities.TaskStatus) (*entities.Task, error) {
	if !status.IsValid() {
		return nil, entities.NewValidationError("invalid status value")
	}

	task, err := s.taskRepo.GetByID(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}

	task.ApplyStatus(status, s.now())

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	s.logger.Infow("Task status updated", "task_id", task.ID, "status", status, "user_id", identity.UserID)
	s.invalidateStats(ctx, task.CreatedBy, task.AssignedTo)

	return task, nil
}

// DeleteTask removes a task under the ownership predicate. No soft delete.
func (s *TaskService) DeleteTask(ctx context.Context, identity ports.Claims, id uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, id, identity.UserID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id, identity.UserID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", id, "user_id", identity.UserID)
	s.invalidateStats(ctx, task.CreatedBy, task.AssignedTo)

	return nil
}

// DashboardStats returns the four aggregate counts for the identity's tasks.
// Results are served from the cache when available.
func (s *TaskService) DashboardStats(ctx context.Context, identity ports.Claims) (*entities.DashboardStats, error) {
	if s.statsCache != nil {
		if stats, ok := s.statsCache.Get(ctx, identity.UserID); ok {
			return stats, nil
		}
	}

	stats, err := s.taskRepo.CountStats(ctx, identity.UserID, s.now())
	if err != nil {
		return nil, fmt.Errorf("count stats: %w", err)
	}

	if s.statsCache != nil {
		s.statsCache.Set(ctx, identity.UserID, stats)
	}

	return stats, nil
}

// invalidateStats drops cached counts for every user whose dashboard the
// mutation may have changed.
func (s *TaskService) invalidateStats(ctx context.Context, userIDs ...uuid.UUID) {
	if s.statsCache == nil {
		return
	}
	s.statsCache.Invalidate(ctx, userIDs...)
}
