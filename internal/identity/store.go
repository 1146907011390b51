// Copyright (c) 2026 Taskforge. All rights reserved.

package identity

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - context: context.Context
		  - email: Email

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email Email) (*User, error)

	/*
		ExistsByEmail reports whether an account with the given email exists.

		Parameters:
		  - context: context.Context
		  - email: Email

		Returns:
		  - bool: true if an account already owns this address
		  - error: Database retrieval failures
	*/
	ExistsByEmail(context context.Context, email Email) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (Conflict on a concurrent duplicate email)
	*/
	Create(context context.Context, user *User) error
}

// # Volatile Data Access

// ThrottleRepository defines the contract for per-IP login failure counters.
//
// Counters expire on their own; nothing here concerns bearer tokens, which
// stay stateless and non-revocable.
type ThrottleRepository interface {

	/*
		Failures returns the current consecutive-failure count for an IP.

		Parameters:
		  - context: context.Context
		  - ip: string

		Returns:
		  - int64: Failure count (0 when unknown or expired)
		  - error: Retrieval failures
	*/
	Failures(context context.Context, ip string) (int64, error)

	/*
		RecordFailure increments the failure counter for an IP and refreshes its TTL.

		Parameters:
		  - context: context.Context
		  - ip: string

		Returns:
		  - int64: Counter value after the increment
		  - error: Persistence failures
	*/
	RecordFailure(context context.Context, ip string) (int64, error)

	/*
		Reset clears the failure counter for an IP after a successful login.

		Parameters:
		  - context: context.Context
		  - ip: string

		Returns:
		  - error: Deletion failures
	*/
	Reset(context context.Context, ip string) error
}
