package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/adapters/repository/memory"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// fakeStatsCache records cache traffic so tests can assert on invalidation.
type fakeStatsCache struct {
	entries     map[uuid.UUID]*entities.DashboardStats
	invalidated []uuid.UUID
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[uuid.UUID]*entities.DashboardStats)}
}

func (f *fakeStatsCache) Get(_ context.Context, userID uuid.UUID) (*entities.DashboardStats, bool) {
	stats, ok := f.entries[userID]
	return stats, ok
}

func (f *fakeStatsCache) Set(_ context.Context, userID uuid.UUID, stats *entities.DashboardStats) {
	f.entries[userID] = stats
}

func (f *fakeStatsCache) Invalidate(_ context.Context, userIDs ...uuid.UUID) {
	for _, id := range userIDs {
		delete(f.entries, id)
		f.invalidated = append(f.invalidated, id)
	}
}

func newTaskService(t *testing.T) (*TaskService, *fakeStatsCache) {
	t.Helper()
	cache := newFakeStatsCache()
	svc := NewTaskService(memory.NewTaskRepository(), cache, logger.NewNop())
	return svc, cache
}

func identity() ports.Claims {
	return ports.Claims{UserID: uuid.New(), Email: "owner@example.com", Role: entities.UserRoleUser}
}

func createTask(t *testing.T, svc *TaskService, who ports.Claims, req ports.CreateTaskRequest) *entities.Task {
	t.Helper()
	if req.Title == "" {
		req.Title = "Write release notes"
	}
	if req.Description == "" {
		req.Description = "Cover the breaking changes"
	}
	if req.Status == "" {
		req.Status = "todo"
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	task, err := svc.CreateTask(context.Background(), who, req)
	require.NoError(t, err)
	return task
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	assert.Equal(t, me.UserID, task.CreatedBy)
	assert.Equal(t, me.UserID, task.AssignedTo, "assignee defaults to the creator")
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskNeverStampsCompletion(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()

	task := createTask(t, svc, me, ports.CreateTaskRequest{Status: "completed"})

	assert.Equal(t, entities.TaskStatusCompleted, task.Status)
	assert.Nil(t, task.CompletedAt, "creation never sets completed_at, whatever the status")
}

func TestCreateTaskRejectsUnknownEnums(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, me, ports.CreateTaskRequest{
		Title: "t", Description: "d", Status: "done", Priority: "medium",
	})
	var validationErr *entities.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateTask(ctx, me, ports.CreateTaskRequest{
		Title: "t", Description: "d", Status: "todo", Priority: "urgent",
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestStatusTransitionDerivesCompletedAt(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	completed, err := svc.UpdateTaskStatus(ctx, me, task.ID, entities.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, frozen, *completed.CompletedAt)

	// Re-saving completed keeps the original stamp.
	svc.now = func() time.Time { return frozen.Add(time.Hour) }
	resaved, err := svc.UpdateTaskStatus(ctx, me, task.ID, entities.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, resaved.CompletedAt)
	assert.Equal(t, frozen, *resaved.CompletedAt)

	// Reopening clears it.
	reopened, err := svc.UpdateTaskStatus(ctx, me, task.ID, entities.TaskStatusTodo)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)
}

func TestUpdateTaskStatusRejectsUnknownValue(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	_, err := svc.UpdateTaskStatus(ctx, me, task.ID, entities.TaskStatus("done"))
	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The rejected value must not leak into the stored task.
	unchanged, err := svc.GetTask(ctx, me, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusTodo, unchanged.Status)
}

func TestUpdateTaskPartialSemantics(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task := createTask(t, svc, me, ports.CreateTaskRequest{DueDate: &due})

	updated, err := svc.UpdateTask(ctx, me, task.ID, ports.UpdateTaskRequest{
		Title: entities.Some("New title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Cover the breaking changes", updated.Description, "absent fields stay put")
	require.NotNil(t, updated.DueDate)

	// Explicit null clears the due date.
	cleared, err := svc.UpdateTask(ctx, me, task.ID, ports.UpdateTaskRequest{
		DueDate: entities.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestUpdateTaskValidatesBeforeApplying(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	// A payload with one good and one bad field changes nothing.
	_, err := svc.UpdateTask(ctx, me, task.ID, ports.UpdateTaskRequest{
		Title:  entities.Some("Should not stick"),
		Status: entities.Some("done"),
	})
	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)

	unchanged, err := svc.GetTask(ctx, me, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write release notes", unchanged.Title)
	assert.Equal(t, entities.TaskStatusTodo, unchanged.Status)
}

func TestUpdateTaskRejectsNullForRequiredFields(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	var validationErr *entities.ValidationError

	_, err := svc.UpdateTask(ctx, me, task.ID, ports.UpdateTaskRequest{
		Status: entities.Null[string](),
	})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.UpdateTask(ctx, me, task.ID, ports.UpdateTaskRequest{
		AssignedTo: entities.Null[uuid.UUID](),
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestOwnershipHidesForeignTasks(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	owner := identity()
	assignee := identity()
	stranger := identity()

	task := createTask(t, svc, owner, ports.CreateTaskRequest{AssignedTo: &assignee.UserID})

	_, err := svc.GetTask(ctx, owner, task.ID)
	assert.NoError(t, err)

	_, err = svc.GetTask(ctx, assignee, task.ID)
	assert.NoError(t, err)

	_, err = svc.GetTask(ctx, stranger, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound, "a foreign task looks exactly like a missing one")

	err = svc.DeleteTask(ctx, stranger, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = svc.UpdateTask(ctx, stranger, task.ID, ports.UpdateTaskRequest{Title: entities.Some("hijack")})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestReassignmentMovesVisibility(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	owner := identity()
	first := identity()
	second := identity()

	task := createTask(t, svc, owner, ports.CreateTaskRequest{AssignedTo: &first.UserID})

	_, err := svc.UpdateTask(ctx, owner, task.ID, ports.UpdateTaskRequest{
		AssignedTo: entities.Some(second.UserID),
	})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, first, task.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound, "previous assignee loses access")

	_, err = svc.GetTask(ctx, second, task.ID)
	assert.NoError(t, err)

	_, err = svc.GetTask(ctx, owner, task.ID)
	assert.NoError(t, err, "creator keeps access through reassignment")

	secondList, err := svc.ListTasks(ctx, second, ports.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, secondList, 1)

	firstList, err := svc.ListTasks(ctx, first, ports.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, firstList, 0)
}

func TestListTasksFiltersAndOrder(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	createTask(t, svc, me, ports.CreateTaskRequest{Title: "a", Status: "todo", Priority: "low"})
	time.Sleep(5 * time.Millisecond)
	createTask(t, svc, me, ports.CreateTaskRequest{Title: "b", Status: "completed", Priority: "high"})
	time.Sleep(5 * time.Millisecond)
	createTask(t, svc, me, ports.CreateTaskRequest{Title: "c", Status: "todo", Priority: "high"})

	all, err := svc.ListTasks(ctx, me, ports.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title, "newest first")

	todo := entities.TaskStatusTodo
	byStatus, err := svc.ListTasks(ctx, me, ports.TaskFilter{Status: &todo})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	high := entities.PriorityHigh
	byBoth, err := svc.ListTasks(ctx, me, ports.TaskFilter{Status: &todo, Priority: &high})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "c", byBoth[0].Title)
}

func TestListTasksRejectsUnknownFilterValues(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()

	bad := entities.TaskStatus("done")
	_, err := svc.ListTasks(context.Background(), me, ports.TaskFilter{Status: &bad})

	var validationErr *entities.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDashboardStatsInvariant(t *testing.T) {
	svc, _ := newTaskService(t)
	me := identity()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	createTask(t, svc, me, ports.CreateTaskRequest{Title: "done", Status: "completed"})
	createTask(t, svc, me, ports.CreateTaskRequest{Title: "overdue", DueDate: &past})
	createTask(t, svc, me, ports.CreateTaskRequest{Title: "upcoming", DueDate: &future})
	createTask(t, svc, me, ports.CreateTaskRequest{Title: "no due date"})

	stats, err := svc.DashboardStats(ctx, me)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalTasks)
	assert.Equal(t, int64(1), stats.CompletedTasks)
	assert.Equal(t, int64(3), stats.PendingTasks)
	assert.Equal(t, int64(1), stats.OverdueTasks)
	assert.Equal(t, stats.TotalTasks, stats.CompletedTasks+stats.PendingTasks)
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	svc, cache := newTaskService(t)
	me := identity()
	ctx := context.Background()

	createTask(t, svc, me, ports.CreateTaskRequest{})

	first, err := svc.DashboardStats(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalTasks)

	// Poison the cache entry; the next read must come from it.
	cache.entries[me.UserID] = &entities.DashboardStats{TotalTasks: 99}

	second, err := svc.DashboardStats(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(99), second.TotalTasks)
}

func TestMutationsInvalidateAffectedDashboards(t *testing.T) {
	svc, cache := newTaskService(t)
	ctx := context.Background()

	owner := identity()
	first := identity()
	second := identity()

	task := createTask(t, svc, owner, ports.CreateTaskRequest{AssignedTo: &first.UserID})
	assert.Contains(t, cache.invalidated, owner.UserID)
	assert.Contains(t, cache.invalidated, first.UserID)

	cache.invalidated = nil
	_, err := svc.UpdateTask(ctx, owner, task.ID, ports.UpdateTaskRequest{
		AssignedTo: entities.Some(second.UserID),
	})
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, owner.UserID)
	assert.Contains(t, cache.invalidated, first.UserID, "previous assignee's dashboard changed too")
	assert.Contains(t, cache.invalidated, second.UserID)
}

func TestTaskServiceRunsWithoutCache(t *testing.T) {
	svc := NewTaskService(memory.NewTaskRepository(), nil, logger.NewNop())
	me := identity()
	ctx := context.Background()

	task := createTask(t, svc, me, ports.CreateTaskRequest{})

	stats, err := svc.DashboardStats(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalTasks)

	require.NoError(t, svc.DeleteTask(ctx, me, task.ID))
}
