// Copyright (c) 2026 Taskforge. All rights reserved.

package identity

import (
	"regexp"
	"strings"

	"github.com/taskforge/taskforge/internal/platform/apperr"
)

// emailRegex accepts a local-part "@" domain-with-TLD shape: local part and
// domain labels limited to word characters, hyphens, and dots, TLD between 2
// and 4 characters. Purely syntactic — no DNS or mailbox verification.
var emailRegex = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// Email is a validated, normalized email address.
//
// # Invariant
//
// An Email can only be obtained through [ParseEmail], so every value of this
// type matches the address grammar and is already lowercased. Two addresses
// that differ only in case compare equal.
type Email string

/*
ParseEmail validates and normalizes a raw email address.

Parameters:
  - raw: string (untrusted input)

Returns:
  - Email: Normalized (lowercased, trimmed) address
  - error: apperr.ValidationError if the shape is invalid
*/
func ParseEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if normalized == "" || !emailRegex.MatchString(normalized) {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldEmail,
			Message: "Invalid email format",
		})
	}

	return Email(normalized), nil
}

// String returns the normalized address.
func (email Email) String() string {
	return string(email)
}
