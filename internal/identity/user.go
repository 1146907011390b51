// Copyright (c) 2026 Taskforge. All rights reserved.

/*
Package identity implements the user identity layer of Taskforge.

It defines the core domain entities (Email, User) and the credential
lifecycle: registration, login, and user lookup.

# Architecture

This layer is the "Truth" of the identity service. Entities defined here have
no transport or storage dependencies and encapsulate all business rules
related to user identity.
*/
package identity

import (
	"time"

	"github.com/taskforge/taskforge/internal/platform/sec"
	"github.com/taskforge/taskforge/pkg/uuid"
)

// # Domain Entities

// User represents a registered account.
//
// The ID is assigned at creation and never changes. The password exists only
// transiently during request handling; the hash is the only form that is ever
// persisted or carried on this struct.
type User struct {
	ID           string    `json:"id"`
	Email        Email     `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser constructs a brand-new account with a time-sortable ID and equal
// creation/update timestamps.
func NewUser(email Email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// VerifyPassword reports whether the candidate password matches the stored hash.
func (user *User) VerifyPassword(rawPassword string) bool {
	return sec.CheckPasswordHash(rawPassword, user.PasswordHash)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the identity domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldUser        = "user"
)
