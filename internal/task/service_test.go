// Copyright (c) 2026 Taskforge. All rights reserved.

package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/task"
)

// # In-Memory Fake

type fakeTaskRepository struct {
	tasks map[string]*task.Task
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[string]*task.Task)}
}

func (f *fakeTaskRepository) Create(_ context.Context, item *task.Task) error {
	copied := *item
	f.tasks[item.ID] = &copied
	return nil
}

func (f *fakeTaskRepository) FindByID(_ context.Context, id string) (*task.Task, error) {
	item, ok := f.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	copied := *item
	return &copied, nil
}

func (f *fakeTaskRepository) FindAllByOwner(_ context.Context, ownerID string) ([]*task.Task, error) {
	result := make([]*task.Task, 0)
	for _, item := range f.tasks {
		if item.OwnerID == ownerID {
			copied := *item
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeTaskRepository) Update(_ context.Context, item *task.Task) error {
	if _, ok := f.tasks[item.ID]; !ok {
		return apperr.NotFound("Task")
	}
	copied := *item
	f.tasks[item.ID] = &copied
	return nil
}

func (f *fakeTaskRepository) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return apperr.NotFound("Task")
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepository) ExistsByIDAndOwner(_ context.Context, id, ownerID string) (bool, error) {
	item, ok := f.tasks[id]
	return ok && item.OwnerID == ownerID, nil
}

func newTestService() (*task.Service, *fakeTaskRepository) {
	repo := newFakeTaskRepository()
	return task.NewService(repo), repo
}

func createFor(t *testing.T, service *task.Service, ownerID, title string) *task.Task {
	t.Helper()
	created, err := service.CreateTask(context.Background(), ownerID, task.CreateTaskInput{Title: title})
	require.NoError(t, err)
	return created
}

// # CRUD

/*
TestService_CreateAndList verifies creation and owner-scoped listing.
*/
func TestService_CreateAndList(t *testing.T) {
	service, _ := newTestService()

	first := createFor(t, service, "user-a", "Buy groceries")
	createFor(t, service, "user-a", "Water plants")
	createFor(t, service, "user-b", "Someone else's task")

	assert.Equal(t, "user-a", first.OwnerID)
	assert.False(t, first.Completed)

	mine, err := service.ListTasks(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := service.ListTasks(context.Background(), "user-b")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	empty, err := service.ListTasks(context.Background(), "user-c")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

/*
TestService_GetTask verifies retrieval, unknown IDs, and the ownership rule.
*/
func TestService_GetTask(t *testing.T) {
	service, _ := newTestService()
	created := createFor(t, service, "user-a", "Buy groceries")

	found, err := service.GetTask(context.Background(), "user-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetTask(context.Background(), "user-a", "018f4e2a-0000-7aaa-baaa-0123456789ab")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.GetTask(context.Background(), "user-a", "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Another user's task is Forbidden, never NotFound.
	_, err = service.GetTask(context.Background(), "user-b", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_UpdateTask verifies full-attribute replacement by the owner.
*/
func TestService_UpdateTask(t *testing.T) {
	service, repo := newTestService()
	created := createFor(t, service, "user-a", "Draft report")

	updated, err := service.UpdateTask(context.Background(), "user-a", created.ID, task.UpdateTaskInput{
		Title:     "Finish report",
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Finish report", updated.Title)
	assert.True(t, updated.Completed)

	stored := repo.tasks[created.ID]
	assert.Equal(t, "Finish report", stored.Title)
	assert.Equal(t, "user-a", stored.OwnerID)
}

/*
TestService_UpdateTask_ForeignOwner verifies user B cannot mutate A's task
and that the row is untouched by the attempt.
*/
func TestService_UpdateTask_ForeignOwner(t *testing.T) {
	service, repo := newTestService()
	created := createFor(t, service, "user-a", "Draft report")

	_, err := service.UpdateTask(context.Background(), "user-b", created.ID, task.UpdateTaskInput{
		Title: "Hijacked",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	stored := repo.tasks[created.ID]
	assert.Equal(t, "Draft report", stored.Title)
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

/*
TestService_SetTaskCompletion verifies the completion toggle.
*/
func TestService_SetTaskCompletion(t *testing.T) {
	service, _ := newTestService()
	created := createFor(t, service, "user-a", "Water plants")

	completed, err := service.SetTaskCompletion(context.Background(), "user-a", created.ID, true)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	reopened, err := service.SetTaskCompletion(context.Background(), "user-a", created.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)

	_, err = service.SetTaskCompletion(context.Background(), "user-b", created.ID, true)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_DeleteTask verifies deletion by the owner and refusal for others.
*/
func TestService_DeleteTask(t *testing.T) {
	service, repo := newTestService()
	created := createFor(t, service, "user-a", "Buy groceries")

	// User B cannot delete A's task; the row survives.
	err := service.DeleteTask(context.Background(), "user-b", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Contains(t, repo.tasks, created.ID)

	// Unknown IDs are NotFound.
	err = service.DeleteTask(context.Background(), "user-a", "018f4e2a-0000-7aaa-baaa-0123456789ab")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The owner deletes successfully; a second delete is NotFound.
	require.NoError(t, service.DeleteTask(context.Background(), "user-a", created.ID))
	assert.NotContains(t, repo.tasks, created.ID)

	err = service.DeleteTask(context.Background(), "user-a", created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
