// Copyright (c) 2026 Taskforge. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/platform/sec"
)

/*
TestValidatePassword_RuleOrder verifies that only the FIRST violated rule is
reported, in the documented order.
*/
func TestValidatePassword_RuleOrder(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"empty", "", "Password cannot be empty"},
		{"too_short", "Ab1!", "Password must be at least 8 characters long"},
		{"short_beats_classes", "abcdefg", "Password must be at least 8 characters long"},
		{"missing_uppercase", "abcdefg1!", "Password must contain at least one uppercase letter"},
		{"missing_lowercase", "ABCDEFG1!", "Password must contain at least one lowercase letter"},
		{"missing_digit", "Abcdefgh!", "Password must contain at least one digit"},
		{"missing_special", "Abcdefg1", "Password must contain at least one special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.ValidatePassword(tt.password)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, "password", ae.Details[0].Field)
			assert.Equal(t, tt.message, ae.Details[0].Message)
		})
	}
}

/*
TestValidatePassword_Accepted verifies passwords satisfying every rule.
*/
func TestValidatePassword_Accepted(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "Abcdef1!"},
		{"all_special_classes", `Xy9[]{};'`},
		{"long", "Averylongpassword123$with_more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, sec.ValidatePassword(tt.password))
		})
	}
}

/*
TestValidatePassword_NonASCII verifies that non-ASCII runes never satisfy a
character class.
*/
func TestValidatePassword_NonASCII(t *testing.T) {
	// "Ä" is uppercase in Unicode terms but must not count here.
	err := sec.ValidatePassword("Äbcdefg1!")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Password must contain at least one uppercase letter", ae.Details[0].Message)
}

/*
TestHashPassword_Roundtrip verifies hash-then-verify behavior and salting.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	const password = "Sup3rSecret!"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password verifies; wrong password does not.
	assert.True(t, sec.CheckPasswordHash(password, hash))
	assert.False(t, sec.CheckPasswordHash("Sup3rSecret?", hash))

	// Independent salting: same input, different hashes, both verify.
	secondHash, err := sec.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, secondHash)
	assert.True(t, sec.CheckPasswordHash(password, secondHash))
}
