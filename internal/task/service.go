// Copyright (c) 2026 Taskforge. All rights reserved.

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/pkg/uuid"
)

// Service orchestrates the task use cases for an authenticated subject.
//
// # Ownership
//
// Every operation takes the subject ID resolved from the bearer token. A task
// owned by someone else yields Forbidden — deliberately distinct from the 401
// an unauthenticated request receives — and the underlying row is untouched.
type Service struct {
	taskRepository TaskRepository
}

// NewService constructs a new task [Service].
func NewService(taskRepo TaskRepository) *Service {
	return &Service{taskRepository: taskRepo}
}

// CreateTaskInput holds the attributes for a brand-new task.
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

// UpdateTaskInput holds the full mutable attribute set for an update.
type UpdateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
}

/*
CreateTask creates a task owned by the subject.

Parameters:
  - context: context.Context
  - subjectID: string (owner, resolved from the bearer token)
  - input: CreateTaskInput

Returns:
  - *Task: Created entity
  - err: Validation or storage errors
*/
func (service *Service) CreateTask(context context.Context, subjectID string, input CreateTaskInput) (*Task, error) {
	task, err := NewTask(subjectID, input.Title, input.Description, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := service.taskRepository.Create(context, task); err != nil {
		return nil, fmt.Errorf("task_service_create_failed: %w", err)
	}

	return task, nil
}

/*
ListTasks returns every task owned by the subject, newest first.

Parameters:
  - context: context.Context
  - subjectID: string

Returns:
  - []*Task: Possibly empty slice, never nil
  - err: Storage errors
*/
func (service *Service) ListTasks(context context.Context, subjectID string) ([]*Task, error) {
	tasks, err := service.taskRepository.FindAllByOwner(context, subjectID)
	if err != nil {
		return nil, fmt.Errorf("task_service_list_failed: %w", err)
	}
	return tasks, nil
}

/*
GetTask returns a single task if it exists and belongs to the subject.

Parameters:
  - context: context.Context
  - subjectID: string
  - taskID: string

Returns:
  - *Task: Hydrated entity
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) GetTask(context context.Context, subjectID, taskID string) (*Task, error) {
	return service.ownedTask(context, subjectID, taskID)
}

/*
UpdateTask replaces the mutable attributes of a subject-owned task.

Parameters:
  - context: context.Context
  - subjectID: string
  - taskID: string
  - input: UpdateTaskInput

Returns:
  - *Task: Updated entity
  - err: Validation, NotFound, Forbidden, or storage errors
*/
func (service *Service) UpdateTask(context context.Context, subjectID, taskID string, input UpdateTaskInput) (*Task, error) {
	task, err := service.ownedTask(context, subjectID, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Update(input.Title, input.Description, input.DueDate, input.Completed); err != nil {
		return nil, err
	}

	if err := service.taskRepository.Update(context, task); err != nil {
		return nil, fmt.Errorf("task_service_update_failed: %w", err)
	}

	return task, nil
}

/*
SetTaskCompletion marks a subject-owned task as completed or reopened.

Parameters:
  - context: context.Context
  - subjectID: string
  - taskID: string
  - completed: bool

Returns:
  - *Task: Updated entity
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) SetTaskCompletion(context context.Context, subjectID, taskID string, completed bool) (*Task, error) {
	task, err := service.ownedTask(context, subjectID, taskID)
	if err != nil {
		return nil, err
	}

	task.SetCompleted(completed)

	if err := service.taskRepository.Update(context, task); err != nil {
		return nil, fmt.Errorf("task_service_set_completion_failed: %w", err)
	}

	return task, nil
}

/*
DeleteTask removes a subject-owned task.

Parameters:
  - context: context.Context
  - subjectID: string
  - taskID: string

Returns:
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) DeleteTask(context context.Context, subjectID, taskID string) error {

	if !uuid.IsValid(taskID) {
		return apperr.NotFound("Task")
	}

	// The fast path: one indexed lookup settles existence AND ownership.
	owned, err := service.taskRepository.ExistsByIDAndOwner(context, taskID, subjectID)
	if err != nil {
		return fmt.Errorf("task_service_delete_check_failed: %w", err)
	}

	if !owned {
		// Disambiguate: a missing task is 404, someone else's task is 403.
		if _, err := service.ownedTask(context, subjectID, taskID); err != nil {
			return err
		}
	}

	if err := service.taskRepository.DeleteByID(context, taskID); err != nil {
		return fmt.Errorf("task_service_delete_failed: %w", err)
	}

	return nil
}

// ownedTask fetches a task and enforces the ownership rule.
//
// A task that does not exist is NotFound; a task that exists but belongs to a
// different user is Forbidden. The two are never conflated.
func (service *Service) ownedTask(context context.Context, subjectID, taskID string) (*Task, error) {
	if !uuid.IsValid(taskID) {
		return nil, apperr.NotFound("Task")
	}

	task, err := service.taskRepository.FindByID(context, taskID)
	if err != nil {
		return nil, err
	}

	if !task.BelongsTo(subjectID) {
		return nil, apperr.Forbidden("You do not have access to this task")
	}

	return task, nil
}
