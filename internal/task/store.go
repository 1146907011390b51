// Copyright (c) 2026 Taskforge. All rights reserved.

package task

import (
	"context"
)

// TaskRepository defines the data access contract for tasks.
type TaskRepository interface {

	/*
		Create persists a brand-new task.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, task *Task) error

	/*
		FindByID returns the task with the given ID regardless of owner.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Task: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Task, error)

	/*
		FindAllByOwner returns every task belonging to a user, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []*Task: Possibly empty slice, never nil
		  - error: Database retrieval failures
	*/
	FindAllByOwner(context context.Context, ownerID string) ([]*Task, error)

	/*
		Update persists the mutable attributes of an existing task.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: apperr.NotFound if the row vanished, or database errors
	*/
	Update(context context.Context, task *Task) error

	/*
		DeleteByID removes the task with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound if no row was removed, or database errors
	*/
	DeleteByID(context context.Context, id string) error

	/*
		ExistsByIDAndOwner reports whether a task exists AND belongs to a user.

		Parameters:
		  - context: context.Context
		  - id: string
		  - ownerID: string

		Returns:
		  - bool: true only when both conditions hold
		  - error: Database retrieval failures
	*/
	ExistsByIDAndOwner(context context.Context, id, ownerID string) (bool, error)
}
