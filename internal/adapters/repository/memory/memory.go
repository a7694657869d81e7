// Package memory provides in-memory implementations of the repository
// ports. They back the unit and endpoint tests; the semantics mirror the
// Postgres adapters, ownership predicate included.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// UserRepository is a map-backed ports.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entities.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]entities.User)}
}

func (r *UserRepository) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailExists
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}

	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return entities.ErrEmailExists
		}
	}

	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// TaskRepository is a map-backed ports.TaskRepository.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]entities.Task
}

// NewTaskRepository creates an empty in-memory task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[uuid.UUID]entities.Task)}
}

func (r *TaskRepository) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) GetByID(_ context.Context, id, userID uuid.UUID) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || !task.IsOwnedBy(userID) {
		return nil, entities.ErrTaskNotFound
	}
	return &task, nil
}

func (r *TaskRepository) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}

	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || !task.IsOwnedBy(userID) {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) List(_ context.Context, userID uuid.UUID, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*entities.Task{}
	for _, t := range r.tasks {
		if !t.IsOwnedBy(userID) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		task := t
		result = append(result, &task)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *TaskRepository) CountStats(_ context.Context, userID uuid.UUID, now time.Time) (*entities.DashboardStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &entities.DashboardStats{}
	for _, t := range r.tasks {
		if !t.IsOwnedBy(userID) {
			continue
		}
		stats.TotalTasks++
		if t.Status == entities.TaskStatusCompleted {
			stats.CompletedTasks++
		} else {
			stats.PendingTasks++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.OverdueTasks++
			}
		}
	}

	return stats, nil
}
