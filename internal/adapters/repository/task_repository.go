package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface. The ownership
// predicate (created_by = user OR assigned_to = user) is part of every
// single-task query, which keeps foreign tasks indistinguishable from
// missing ones.
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date,
			created_by, assigned_to, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CreatedBy, task.AssignedTo, task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date,
			created_by, assigned_to, completed_at, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND (created_by = $2 OR assigned_to = $2)`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
			due_date = $6, assigned_to = $7, completed_at = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.AssignedTo, task.CompletedAt,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND (created_by = $2 OR assigned_to = $2)`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, userID uuid.UUID, filter ports.TaskFilter) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date,
			created_by, assigned_to, completed_at, created_at, updated_at
		FROM tasks
		WHERE (created_by = $1 OR assigned_to = $1)`

	args := []interface{}{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// CountStats computes the four dashboard counts in a single scan over the
// user's tasks. pendingTasks counts everything not completed, overdue ones
// included, so completed + pending always equals total.
func (r *TaskRepositoryImpl) CountStats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_tasks,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_tasks,
			COUNT(*) FILTER (WHERE status <> 'completed') AS pending_tasks,
			COUNT(*) FILTER (WHERE status <> 'completed' AND due_date < $2) AS overdue_tasks
		FROM tasks
		WHERE (created_by = $1 OR assigned_to = $1)`

	var stats entities.DashboardStats
	err := r.db.GetContext(ctx, &stats, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("count stats: %w", err)
	}

	return &stats, nil
}
