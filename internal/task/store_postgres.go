// Copyright (c) 2026 Taskforge. All rights reserved.

package task

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/platform/dberr"
)

// PostgresTaskRepository implements the TaskRepository interface using pgx.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL implementation of the TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

func (repository *PostgresTaskRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO task.item (
			id, ownerid, title, description, duedate, completed, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := repository.pool.Exec(context, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

func (repository *PostgresTaskRepository) FindByID(context context.Context, id string) (*Task, error) {
	const query = `
		SELECT id, ownerid, title, description, duedate, completed, createdat, updatedat
		FROM task.item
		WHERE id = $1`

	task := &Task{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

func (repository *PostgresTaskRepository) FindAllByOwner(context context.Context, ownerID string) ([]*Task, error) {
	const query = `
		SELECT id, ownerid, title, description, duedate, completed, createdat, updatedat
		FROM task.item
		WHERE ownerid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_task_repo_find_all_failed: %w", err)
	}
	defer rows.Close()

	// Always a non-nil slice so an empty list serializes as [] not null.
	tasks := make([]*Task, 0)
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_task_repo_scan_failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_task_repo_rows_failed: %w", err)
	}

	return tasks, nil
}

func (repository *PostgresTaskRepository) Update(context context.Context, task *Task) error {
	const query = `
		UPDATE task.item
		SET title = $1, description = $2, duedate = $3, completed = $4, updatedat = $5
		WHERE id = $6`

	commandTag, err := repository.pool.Exec(context, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.UpdatedAt,
		task.ID,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	// Exec does not error on zero matched rows; map that case explicitly.
	if commandTag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Task")
	}

	return nil
}

func (repository *PostgresTaskRepository) DeleteByID(context context.Context, id string) error {
	const query = `DELETE FROM task.item WHERE id = $1`

	commandTag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

func (repository *PostgresTaskRepository) ExistsByIDAndOwner(context context.Context, id, ownerID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM task.item WHERE id = $1 AND ownerid = $2)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, id, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_task_repo_exists_failed: %w", err)
	}

	return exists, nil
}
