// Copyright (c) 2026 Taskforge. All rights reserved.

package sec_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/platform/sec"
)

// testSecret returns a base64-encoded HMAC secret for constructing services.
func testSecret(raw string) string {
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func newTestTokenService(t *testing.T, rawSecret string, ttl time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret(rawSecret), "taskforge", ttl)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Construction verifies secret and TTL validation.
*/
func TestNewTokenService_Construction(t *testing.T) {
	_, err := sec.NewTokenService("", "taskforge", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService("%%%not-base64%%%", "taskforge", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret("secret"), "taskforge", 0)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret("secret"), "taskforge", time.Hour)
	assert.NoError(t, err)
}

/*
TestTokenService_Roundtrip verifies that an issued token verifies and carries
the expected subject, issuer, and expiry.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	service := newTestTokenService(t, "roundtrip-secret", time.Hour)

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "taskforge", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

/*
TestTokenService_Expired verifies that an expired token fails verification but
is still classified (with claims) by Inspect.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t, "expiry-secret", time.Millisecond)

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = service.VerifyToken(token)
	require.Error(t, err)

	claims, status := service.Inspect(token)
	assert.Equal(t, sec.StatusExpired, status)
	require.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID())
}

/*
TestTokenService_TamperedSignature verifies that a modified token never yields
claims, expired or otherwise.
*/
func TestTokenService_TamperedSignature(t *testing.T) {
	service := newTestTokenService(t, "tamper-secret", time.Hour)

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)

	claims, status := service.Inspect(tampered)
	assert.Equal(t, sec.StatusInvalid, status)
	assert.Nil(t, claims)
}

/*
TestTokenService_WrongSecret verifies tokens do not cross secret boundaries.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one", time.Hour)
	verifier := newTestTokenService(t, "secret-two", time.Hour)

	token, err := issuer.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)

	claims, status := verifier.Inspect(token)
	assert.Equal(t, sec.StatusInvalid, status)
	assert.Nil(t, claims)
}

/*
TestTokenService_Malformed verifies garbage input classifies as invalid.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t, "garbage-secret", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		claims, status := service.Inspect(token)
		assert.Equal(t, sec.StatusInvalid, status)
		assert.Nil(t, claims)
	}
}

/*
TestTokenService_ValidFor verifies the self-consistency check used by the
identity service.
*/
func TestTokenService_ValidFor(t *testing.T) {
	service := newTestTokenService(t, "validfor-secret", time.Hour)

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	assert.True(t, service.ValidFor(token, "user-123"))
	assert.False(t, service.ValidFor(token, "user-456"))
	assert.False(t, service.ValidFor("not-a-jwt", "user-123"))

	expiring := newTestTokenService(t, "validfor-secret-2", time.Millisecond)
	expiredToken, err := expiring.GenerateToken("user-123")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	assert.False(t, expiring.ValidFor(expiredToken, "user-123"))
}
