// Copyright (c) 2026 Taskforge. All rights reserved.

package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/identity"
	"github.com/taskforge/taskforge/internal/platform/apperr"
)

/*
TestParseEmail_Accepted verifies syntactically valid addresses and their
normalization.
*/
func TestParseEmail_Accepted(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		normalized string
	}{
		{"simple", "alice@example.com", "alice@example.com"},
		{"uppercase_folded", "Alice@Example.COM", "alice@example.com"},
		{"surrounding_whitespace", "  bob@example.org  ", "bob@example.org"},
		{"dotted_local_part", "first.last@example.io", "first.last@example.io"},
		{"subdomain", "carol@mail.example.co", "carol@mail.example.co"},
		{"hyphenated_domain", "dan@my-host.example.com", "dan@my-host.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := identity.ParseEmail(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.normalized, email.String())
		})
	}
}

/*
TestParseEmail_Rejected verifies malformed addresses fail with a field-level
validation error.
*/
func TestParseEmail_Rejected(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"no_at_sign", "alice.example.com"},
		{"no_domain", "alice@"},
		{"no_tld", "alice@example"},
		{"tld_too_long", "alice@example.technology"},
		{"embedded_space", "alice smith@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.ParseEmail(tt.raw)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, identity.FieldEmail, ae.Details[0].Field)
			assert.Equal(t, "Invalid email format", ae.Details[0].Message)
		})
	}
}

/*
TestParseEmail_CaseInsensitiveEquality verifies addresses differing only in
case compare equal after parsing.
*/
func TestParseEmail_CaseInsensitiveEquality(t *testing.T) {
	first, err := identity.ParseEmail("User@Example.com")
	require.NoError(t, err)

	second, err := identity.ParseEmail("user@example.COM")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
