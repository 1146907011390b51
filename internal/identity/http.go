// Copyright (c) 2026 Taskforge. All rights reserved.

package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge/internal/platform/middleware"
	requestutil "github.com/taskforge/taskforge/internal/platform/request"
	"github.com/taskforge/taskforge/internal/platform/respond"
	"github.com/taskforge/taskforge/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the identity HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (registration, login)
// and the authenticated user lookup surface. It is strictly responsible for
// transport concerns (status codes, headers, JSON).
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// AuthRoutes returns a [chi.Router] with the public credential endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a JWT.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// UserRoutes returns a [chi.Router] with the authenticated lookup endpoints.
//
// # Endpoints
//   - GET /me                : Returns the caller's own profile.
//   - GET /{id}              : Returns a user by ID.
//   - GET /by-email/{email}  : Returns a user by email address.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.currentUser)
		r.Get("/by-email/{email}", handler.userByEmail)
		r.Get("/{id}", handler.userByID)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input shape, enforces the password policy, and persists
a new account. The plain-text password never leaves this request's lifetime.

Request:
  - Body: registerRequest (Email, Password)

Response:
  - 201: User: Created account profile
  - 400: ErrInvalidJSON: Bad input, email shape, or password policy failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.identityService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and issues a bearer token.

POST /api/v1/auth/login

Description: Verifies credentials and returns a signed access token together
with the authenticated profile. Failures are uniform to prevent enumeration.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: LoginResult: Access token and user profile
  - 401: ErrUnauthorized: Invalid credentials
  - 429: ErrRateLimited: Too many failed attempts from this IP
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.identityService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: result.AccessToken,
		FieldUser:        result.User,
	})
}

/*
CurrentUser returns the profile of the authenticated caller.

GET /api/v1/users/me

Response:
  - 200: User: Caller's own profile
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.identityService.GetUserByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UserByID returns a user profile by its ID.

GET /api/v1/users/{id}

Response:
  - 200: User: Matching profile
  - 404: ErrNotFound: No account with this ID
*/
func (handler *Handler) userByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	user, err := handler.identityService.GetUserByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UserByEmail returns a user profile by its email address.

GET /api/v1/users/by-email/{email}

Response:
  - 200: User: Matching profile
  - 404: ErrNotFound: No account with this address
*/
func (handler *Handler) userByEmail(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	user, err := handler.identityService.GetUserByEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
