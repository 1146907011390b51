// Copyright (c) 2026 Taskforge. All rights reserved.

package middleware_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/platform/middleware"
	"github.com/taskforge/taskforge/internal/platform/sec"
)

func newTokenService(t *testing.T, rawSecret string, ttl time.Duration) *sec.TokenService {
	t.Helper()
	encoded := base64.StdEncoding.EncodeToString([]byte(rawSecret))
	service, err := sec.NewTokenService(encoded, "taskforge", ttl)
	require.NoError(t, err)
	return service
}

// echoSubject is a probe handler reporting the authenticated subject, if any.
func echoSubject() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := middleware.GetUser(request.Context())
		if claims == nil {
			_, _ = writer.Write([]byte("anonymous"))
			return
		}
		_, _ = writer.Write([]byte(claims.UserID()))
	})
}

func perform(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthenticateStrict verifies the identity server's behavior: absent header
passes as anonymous, bad tokens are rejected with 401, and good tokens carry
their subject into context.
*/
func TestAuthenticateStrict(t *testing.T) {
	service := newTokenService(t, "strict-secret", time.Hour)
	handler := middleware.AuthenticateStrict(service)(echoSubject())

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	t.Run("no_header_is_anonymous", func(t *testing.T) {
		recorder := perform(handler, "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("valid_token_authenticates", func(t *testing.T) {
		recorder := perform(handler, "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "user-123", recorder.Body.String())
	})

	t.Run("malformed_header_rejected", func(t *testing.T) {
		recorder := perform(handler, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage_token_rejected", func(t *testing.T) {
		recorder := perform(handler, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("foreign_secret_rejected", func(t *testing.T) {
		foreign := newTokenService(t, "other-secret", time.Hour)
		foreignToken, err := foreign.GenerateToken("user-123")
		require.NoError(t, err)

		recorder := perform(handler, "Bearer "+foreignToken)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("expired_token_rejected", func(t *testing.T) {
		expiring := newTokenService(t, "strict-secret", time.Millisecond)
		expiredToken, err := expiring.GenerateToken("user-123")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		recorder := perform(handler, "Bearer "+expiredToken)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

/*
TestAuthenticateLenient verifies the task server's behavior: every request
passes through, and bad tokens merely degrade to anonymous.
*/
func TestAuthenticateLenient(t *testing.T) {
	service := newTokenService(t, "lenient-secret", time.Hour)
	handler := middleware.AuthenticateLenient(service)(echoSubject())

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	t.Run("no_header_is_anonymous", func(t *testing.T) {
		recorder := perform(handler, "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("valid_token_authenticates", func(t *testing.T) {
		recorder := perform(handler, "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "user-123", recorder.Body.String())
	})

	t.Run("garbage_token_degrades_to_anonymous", func(t *testing.T) {
		recorder := perform(handler, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("expired_token_degrades_to_anonymous", func(t *testing.T) {
		expiring := newTokenService(t, "lenient-secret", time.Millisecond)
		expiredToken, err := expiring.GenerateToken("user-123")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		recorder := perform(handler, "Bearer "+expiredToken)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})
}

/*
TestRequireAuth verifies the authentication gate used by owner-scoped routes.
*/
func TestRequireAuth(t *testing.T) {
	service := newTokenService(t, "gate-secret", time.Hour)
	handler := middleware.AuthenticateLenient(service)(middleware.RequireAuth(echoSubject()))

	token, err := service.GenerateToken("user-123")
	require.NoError(t, err)

	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder := perform(handler, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("degraded_token_rejected", func(t *testing.T) {
		recorder := perform(handler, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		recorder := perform(handler, "Bearer "+token)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "user-123", recorder.Body.String())
	})
}
