// Copyright (c) 2026 Taskforge. All rights reserved.

package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/task"
)

/*
TestNewTask verifies construction defaults and the title invariant.
*/
func TestNewTask(t *testing.T) {
	description := "milk, eggs, coffee"
	due := time.Now().Add(48 * time.Hour)

	created, err := task.NewTask("owner-1", "  Buy groceries  ", &description, &due)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.Equal(t, "Buy groceries", created.Title)
	assert.Equal(t, &description, created.Description)
	assert.False(t, created.Completed)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

/*
TestNewTask_EmptyTitle verifies whitespace-only titles are rejected.
*/
func TestNewTask_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := task.NewTask("owner-1", title, nil, nil)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, task.FieldTitle, ae.Details[0].Field)
		assert.Equal(t, "Task title cannot be empty", ae.Details[0].Message)
	}
}

/*
TestTask_Update verifies the title invariant holds on update and that
UpdatedAt moves while CreatedAt and OwnerID do not.
*/
func TestTask_Update(t *testing.T) {
	item, err := task.NewTask("owner-1", "Draft report", nil, nil)
	require.NoError(t, err)

	createdAt := item.CreatedAt
	time.Sleep(time.Millisecond)

	require.Error(t, item.Update("   ", nil, nil, false))
	assert.Equal(t, "Draft report", item.Title)

	require.NoError(t, item.Update("Finish report", nil, nil, true))
	assert.Equal(t, "Finish report", item.Title)
	assert.True(t, item.Completed)
	assert.Equal(t, "owner-1", item.OwnerID)
	assert.Equal(t, createdAt, item.CreatedAt)
	assert.True(t, item.UpdatedAt.After(createdAt))
}

/*
TestTask_SetCompleted verifies the completion toggle bumps UpdatedAt.
*/
func TestTask_SetCompleted(t *testing.T) {
	item, err := task.NewTask("owner-1", "Water plants", nil, nil)
	require.NoError(t, err)

	before := item.UpdatedAt
	time.Sleep(time.Millisecond)

	item.SetCompleted(true)
	assert.True(t, item.Completed)
	assert.True(t, item.UpdatedAt.After(before))

	item.SetCompleted(false)
	assert.False(t, item.Completed)
}

/*
TestTask_BelongsTo verifies the ownership predicate.
*/
func TestTask_BelongsTo(t *testing.T) {
	item, err := task.NewTask("owner-1", "Water plants", nil, nil)
	require.NoError(t, err)

	assert.True(t, item.BelongsTo("owner-1"))
	assert.False(t, item.BelongsTo("owner-2"))
}
