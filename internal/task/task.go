// Copyright (c) 2026 Taskforge. All rights reserved.

/*
Package task implements the per-user task domain of Taskforge.

Tasks are plain CRUD entities owned by exactly one user. The owner is fixed
at creation and never reassigned; every mutation and deletion is restricted
to the owner, enforced in [Service].
*/
package task

import (
	"strings"
	"time"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/pkg/uuid"
)

// Task represents a single to-do item belonging to a user.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask constructs a task for the given owner. The title must be non-empty
// after trimming; this invariant holds on every later update too.
func NewTask(ownerID, title string, description *string, dueDate *time.Time) (*Task, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, emptyTitleError()
	}

	now := time.Now()
	return &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       trimmedTitle,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the mutable attributes and bumps UpdatedAt.
//
// The owner and creation timestamp are immutable and not touched here.
func (task *Task) Update(title string, description *string, dueDate *time.Time, completed bool) error {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return emptyTitleError()
	}

	task.Title = trimmedTitle
	task.Description = description
	task.DueDate = dueDate
	task.Completed = completed
	task.UpdatedAt = time.Now()

	return nil
}

// SetCompleted flips the completion flag and bumps UpdatedAt.
func (task *Task) SetCompleted(completed bool) {
	task.Completed = completed
	task.UpdatedAt = time.Now()
}

// BelongsTo reports whether the task is owned by the given user.
func (task *Task) BelongsTo(userID string) bool {
	return task.OwnerID == userID
}

// emptyTitleError is the uniform violation for the non-empty-title invariant.
func emptyTitleError() error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   FieldTitle,
		Message: "Task title cannot be empty",
	})
}

// Global field names for validation and JSON mapping in the task domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
	FieldCompleted   = "completed"
)
