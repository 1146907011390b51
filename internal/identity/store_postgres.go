// Copyright (c) 2026 Taskforge. All rights reserved.

// PostgreSQL implementation of the identity storage contracts.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.
package identity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/taskforge/internal/platform/dberr"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the identity.account table.

Description: The users table carries a unique index on email; a concurrent
duplicate insert surfaces as a Conflict via [dberr.Wrap] rather than a raw
SQLSTATE.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO identity.account (
			id, email, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email.String(),
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: Email (already normalized by ParseEmail)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email Email) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM identity.account
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, email.String()).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, createdat, updatedat
		FROM identity.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
ExistsByEmail reports whether an account with the given email exists.

Parameters:
  - context: context.Context
  - email: Email

Returns:
  - bool: Existence flag
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email Email) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM identity.account WHERE email = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, email.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_email_failed: %w", err)
	}

	return exists, nil
}
