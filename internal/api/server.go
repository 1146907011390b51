// Copyright (c) 2026 Taskforge. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and the
domain handlers of each Taskforge service into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It is the composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/* are allowed to import net/http server primitives.

The two services share one middleware chain shape and differ only in how
they treat bearer tokens: the identity server rejects bad tokens outright,
while the task server classifies them and leaves rejection to the per-route
authentication gate.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskforge/taskforge/internal/identity"
	"github.com/taskforge/taskforge/internal/platform/config"
	"github.com/taskforge/taskforge/internal/platform/constants"
	"github.com/taskforge/taskforge/internal/platform/middleware"
	"github.com/taskforge/taskforge/internal/task"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registries

// IdentityHandlers groups the handler sets mounted on the identity server.
type IdentityHandlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Identity handles registration, login, and user lookup routes.
	Identity *identity.Handler
}

// TaskHandlers groups the handler sets mounted on the task server.
type TaskHandlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Task handles the per-user task CRUD routes.
	Task *task.Handler
}

// # Server Initialization

// NewIdentityServer constructs the identity service's router and server.
//
// Bearer tokens are verified STRICTLY: a malformed or invalid token fails the
// request with 401 before any handler runs, and the token's subject must match
// itself under the verifier's self-consistency check.
func NewIdentityServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h IdentityHandlers) *Server {
	r := chi.NewRouter()

	registerBaseMiddleware(r, context, cfg, log)
	r.Use(middleware.AuthenticateStrict(verifier))

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Identity.AuthRoutes())
		api.Mount("/users", h.Identity.UserRoutes())
	})

	return newServer(r, cfg, log)
}

// NewTaskServer constructs the task service's router and server.
//
// Bearer tokens are only CLASSIFIED here: a bad token degrades the request to
// anonymous instead of failing it, and the per-route authentication gate
// decides whether anonymous is acceptable. A task-server token is trusted for
// whatever subject it names.
func NewTaskServer(context context.Context, cfg *config.Config, log *slog.Logger, inspector middleware.TokenInspector, h TaskHandlers) *Server {
	r := chi.NewRouter()

	registerBaseMiddleware(r, context, cfg, log)
	r.Use(middleware.AuthenticateLenient(inspector))

	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/tasks", h.Task.Routes())
	})

	return newServer(r, cfg, log)
}

// registerBaseMiddleware applies the shared middleware chain, in execution order.
func registerBaseMiddleware(r *chi.Mux, context context.Context, cfg *config.Config, log *slog.Logger) {
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
}

// newServer binds a configured router to an [http.Server] with standard timeouts.
func newServer(r *chi.Mux, cfg *config.Config, log *slog.Logger) *Server {
	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
