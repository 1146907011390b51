// Copyright (c) 2026 Taskforge. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Taskforge servers.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskforge/taskforge/internal/platform/apperr"
	"github.com/taskforge/taskforge/internal/platform/ctxkey"
	"github.com/taskforge/taskforge/internal/platform/ctxutil"
	"github.com/taskforge/taskforge/internal/platform/respond"
	"github.com/taskforge/taskforge/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in strict mode.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing tests to inject fakes with independent secrets.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
	ValidFor(tokenString, userID string) bool
}

// TokenInspector defines the interface needed to classify tokens in lenient mode.
type TokenInspector interface {
	Inspect(tokenString string) (*sec.AuthClaims, sec.TokenStatus)
}

// AuthenticateStrict extracts and verifies the JWT from the Authorization header,
// rejecting requests that present a bad token.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the MAC and expiry, then re-check that the token is
//     valid for its own decoded subject.
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// This is the identity server's flavor: a presented-but-broken token is an
// error worth surfacing, and the subject self-check is kept even though it is
// tautological for honestly-issued tokens.
func AuthenticateStrict(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			tokenString, ok := bearerToken(request)
			if !ok {
				if request.Header.Get("Authorization") != "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Subject Self-Check ─────────────────────────────────────────
			// The task server skips this step and trusts any verified token.
			if !verifier.ValidFor(tokenString, claims.Subject) {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// AuthenticateLenient classifies the request as authenticated or anonymous and
// never rejects it.
//
// # Flow
//  1. No Authorization header, or not Bearer-shaped → anonymous.
//  2. Bearer token present → inspect; ok → authenticated with the decoded
//     subject, expired or invalid → anonymous.
//
// This is the task server's flavor: one malformed token must never fail an
// otherwise-valid anonymous request path. Rejection of anonymous callers on
// owner-scoped routes is the job of [RequireAuth], not of this classifier.
func AuthenticateLenient(inspector TokenInspector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			tokenString, ok := bearerToken(request)
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			claims, status := inspector.Inspect(tokenString)
			if status != sec.StatusOK {
				// Degrade to anonymous; keep a trace for operators.
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(),
					"bearer_token_rejected",
					slog.String("status", status.String()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [AuthenticateStrict] or
// [AuthenticateLenient].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// bearerToken extracts the token from an 'Authorization: Bearer <token>' header.
func bearerToken(request *http.Request) (string, bool) {
	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}

	return parts[1], true
}
