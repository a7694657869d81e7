package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*entities.User, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TaskService interface for the task lifecycle operations
type TaskService interface {
	ListTasks(ctx context.Context, identity Claims, filter TaskFilter) ([]*entities.Task, error)
	GetTask(ctx context.Context, identity Claims, id uuid.UUID) (*entities.Task, error)
	CreateTask(ctx context.Context, identity Claims, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, identity Claims, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	UpdateTaskStatus(ctx context.Context, identity Claims, id uuid.UUID, status entities.TaskStatus) (*entities.Task, error)
	DeleteTask(ctx context.Context, identity Claims, id uuid.UUID) error
	DashboardStats(ctx context.Context, identity Claims) (*entities.DashboardStats, error)
}

// Claims is the identity resolved from a verified bearer token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   entities.UserRole
}

// Request/Response Types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,max=255"`
	Role     string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	ID    uuid.UUID         `json:"id"`
	Email string            `json:"email"`
	Name  string            `json:"name"`
	Role  entities.UserRole `json:"role"`
	Token string            `json:"token"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=255"`
	Email           *string `json:"email" validate:"omitempty,email"`
	ThemePreference *string `json:"theme_preference"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"required,max=1000"`
	Status      string     `json:"status" validate:"required"`
	Priority    string     `json:"priority" validate:"required"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// UpdateTaskRequest applies only the fields present in the payload. A field
// set to null clears it where the schema allows; an absent field is left
// untouched.
type UpdateTaskRequest struct {
	Title       entities.Optional[string]    `json:"title"`
	Description entities.Optional[string]    `json:"description"`
	Status      entities.Optional[string]    `json:"status"`
	Priority    entities.Optional[string]    `json:"priority"`
	DueDate     entities.Optional[time.Time] `json:"due_date"`
	AssignedTo  entities.Optional[uuid.UUID] `json:"assigned_to"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
