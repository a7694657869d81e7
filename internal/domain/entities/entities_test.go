package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusStampsCompletion(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{Status: TaskStatusInProgress}

	task.ApplyStatus(TaskStatusCompleted, now)

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	assert.Equal(t, TaskStatusCompleted, task.Status)
}

func TestApplyStatusKeepsOriginalStamp(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	task := &Task{Status: TaskStatusInProgress}
	task.ApplyStatus(TaskStatusCompleted, first)
	task.ApplyStatus(TaskStatusCompleted, later)

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, first, *task.CompletedAt, "re-saving a completed task must not move the stamp")
}

func TestApplyStatusClearsStampOnReopen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	task := &Task{Status: TaskStatusInProgress}
	task.ApplyStatus(TaskStatusCompleted, now)
	task.ApplyStatus(TaskStatusTodo, now.Add(time.Hour))

	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, TaskStatusTodo, task.Status)
}

func TestIsOwnedBy(t *testing.T) {
	creator := uuid.New()
	assignee := uuid.New()
	stranger := uuid.New()

	task := &Task{CreatedBy: creator, AssignedTo: assignee}

	assert.True(t, task.IsOwnedBy(creator))
	assert.True(t, task.IsOwnedBy(assignee))
	assert.False(t, task.IsOwnedBy(stranger))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  TaskStatus
		want    bool
	}{
		{"no due date", nil, TaskStatusTodo, false},
		{"due in future", &future, TaskStatusTodo, false},
		{"past due, open", &past, TaskStatusInProgress, true},
		{"past due, completed", &past, TaskStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{DueDate: tt.dueDate, Status: tt.status}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TaskStatus("in-progress").IsValid())
	assert.False(t, TaskStatus("in_progress").IsValid())
	assert.False(t, TaskStatus("done").IsValid())
	assert.False(t, TaskStatus("").IsValid())

	assert.True(t, Priority("medium").IsValid())
	assert.False(t, Priority("urgent").IsValid())

	assert.True(t, UserRole("user").IsValid())
	assert.True(t, UserRole("admin").IsValid())
	assert.False(t, UserRole("root").IsValid())

	assert.True(t, ThemePreference("dark").IsValid())
	assert.False(t, ThemePreference("midnight").IsValid())
}
