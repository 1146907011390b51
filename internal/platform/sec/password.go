// Copyright (c) 2026 Taskforge. All rights reserved.

/*
Package sec provides cryptographic primitives and token management.

It isolates security-sensitive code (password policy, hashing, JWT signing)
from the domain logic. Domain services consume it through small interfaces
so tests can substitute independent secrets and deterministic fakes.
*/
package sec

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/taskforge/internal/platform/apperr"
)

// bcryptCost is the fixed work factor for password hashing. Raising it slows
// every login and registration; changing it does not invalidate stored hashes.
const bcryptCost = 12

// passwordSpecialChars is the exact punctuation set accepted by the "special
// character" rule. The policy is pinned to ASCII on purpose: locale-sensitive
// character classification would make the rule set irreproducible across
// deployments, so a non-ASCII rune never satisfies any class below.
const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// # Password Policy

/*
ValidatePassword enforces the account password policy.

Rules are checked in a fixed order and only the FIRST violated rule is
reported, so error messages are deterministic for any given input:

 1. non-empty
 2. at least 8 characters
 3. at least one ASCII uppercase letter
 4. at least one ASCII lowercase letter
 5. at least one ASCII digit
 6. at least one character from [passwordSpecialChars]

Returns:
  - error: apperr.ValidationError naming the violated rule, or nil
*/
func ValidatePassword(raw string) error {
	if raw == "" {
		return passwordRuleError("Password cannot be empty")
	}

	if len(raw) < 8 {
		return passwordRuleError("Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.IndexByte(passwordSpecialChars, c) >= 0:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return passwordRuleError("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return passwordRuleError("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return passwordRuleError("Password must contain at least one digit")
	}
	if !hasSpecial {
		return passwordRuleError("Password must contain at least one special character")
	}

	return nil
}

// passwordRuleError wraps a single violated rule as a client-safe validation error.
func passwordRuleError(message string) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   "password",
		Message: message,
	})
}

// # Hashing

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// Each call salts independently, so hashing the same password twice yields
// two different strings. Only the hash is ever persisted.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// A mismatch returns false, never an error; bcrypt's comparison is
// constant-effort by construction.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
