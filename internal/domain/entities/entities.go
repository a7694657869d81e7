package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
)

// ValidationError reports rejected input. The message is safe to return to
// the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Enums and types
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// User represents a registered account.
type User struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Email           string          `json:"email" db:"email"`
	PasswordHash    string          `json:"-" db:"password_hash"`
	FullName        string          `json:"full_name" db:"full_name"`
	Role            UserRole        `json:"role" db:"role"`
	IsActive        bool            `json:"is_active" db:"is_active"`
	ThemePreference ThemePreference `json:"theme_preference" db:"theme_preference"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Task represents a tracked unit of work. CreatedBy and CreatedAt are set
// once at creation and never change afterwards.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	CreatedBy   uuid.UUID  `json:"created_by" db:"created_by"`
	AssignedTo  uuid.UUID  `json:"assigned_to" db:"assigned_to"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// DashboardStats holds the per-user aggregate counts shown on the dashboard.
// CompletedTasks + PendingTasks always equals TotalTasks.
type DashboardStats struct {
	TotalTasks     int64 `json:"totalTasks" db:"total_tasks"`
	CompletedTasks int64 `json:"completedTasks" db:"completed_tasks"`
	PendingTasks   int64 `json:"pendingTasks" db:"pending_tasks"`
	OverdueTasks   int64 `json:"overdueTasks" db:"overdue_tasks"`
}

// IsOwnedBy reports whether userID may see and mutate the task. Visibility
// is limited to the creator and the assignee; everyone else gets the same
// answer as for a task that does not exist.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.CreatedBy == userID || t.AssignedTo == userID
}

// IsOverdue reports whether the task has a due date in the past and is not
// completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// ApplyStatus sets the status and derives CompletedAt: entering completed
// stamps the transition time, re-saving completed leaves the stamp alone,
// and any other value clears it unconditionally.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	if status == TaskStatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
}

// Utility methods
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleUser, UserRoleAdmin:
		return true
	default:
		return false
	}
}

func (tp ThemePreference) IsValid() bool {
	switch tp {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
