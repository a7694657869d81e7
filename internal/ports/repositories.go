package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

// TaskRepository defines the interface for task data operations. Every
// single-task method takes the requesting user's ID and applies the
// creator-or-assignee predicate inside the query, so a task owned by someone
// else reports entities.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*entities.Task, error)
	CountStats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.DashboardStats, error)
}

// StatsCache caches dashboard statistics per user. Implementations must
// treat a miss and an unavailable backend the same way: return ok == false
// and let the caller fall through to the repository.
type StatsCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.DashboardStats, bool)
	Set(ctx context.Context, userID uuid.UUID, stats *entities.DashboardStats)
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// TaskFilter narrows task listings by exact enum matches.
type TaskFilter struct {
	Status   *entities.TaskStatus
	Priority *entities.Priority
}
