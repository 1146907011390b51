// Copyright (c) 2026 Taskforge. All rights reserved.

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge/internal/platform/middleware"
	requestutil "github.com/taskforge/taskforge/internal/platform/request"
	"github.com/taskforge/taskforge/internal/platform/respond"
	"github.com/taskforge/taskforge/internal/platform/validate"
)

// Handler implements the task HTTP endpoints.
//
// Every route requires an authenticated subject: the verifier middleware only
// classifies tokens, so the authentication gate lives here on the router.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with the task CRUD routes.
//
// # Endpoints
//   - POST   /               : Creates a task for the caller.
//   - GET    /               : Lists the caller's tasks.
//   - GET    /{id}           : Returns one task.
//   - PUT    /{id}           : Replaces a task's mutable attributes.
//   - PATCH  /{id}/complete  : Toggles completion.
//   - DELETE /{id}           : Removes a task.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Get("/", handler.list)
		r.Get("/{id}", handler.get)
		r.Put("/{id}", handler.update)
		r.Patch("/{id}/complete", handler.setCompletion)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
}

type setCompletionRequest struct {
	Completed bool `json:"completed"`
}

/*
Create adds a new task owned by the caller.

POST /api/v1/tasks

Response:
  - 201: Task: Created task
  - 400: ErrInvalidJSON: Bad input or empty title
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 255)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.taskService.CreateTask(request.Context(), subjectID, CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
List returns every task owned by the caller, newest first.

GET /api/v1/tasks

Response:
  - 200: []Task: Possibly empty list
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.taskService.ListTasks(request.Context(), subjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

/*
Get returns a single task owned by the caller.

GET /api/v1/tasks/{id}

Response:
  - 200: Task: Matching task
  - 403: ErrForbidden: Task belongs to another user
  - 404: ErrNotFound: Unknown task ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.taskService.GetTask(request.Context(), subjectID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
Update replaces the mutable attributes of a caller-owned task.

PUT /api/v1/tasks/{id}

Response:
  - 200: Task: Updated task
  - 400: ErrInvalidJSON: Bad input or empty title
  - 403: ErrForbidden: Task belongs to another user
  - 404: ErrNotFound: Unknown task ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 255)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.taskService.UpdateTask(request.Context(), subjectID, requestutil.ID(request, "id"), UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Completed:   input.Completed,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
SetCompletion marks a caller-owned task as completed or reopened.

PATCH /api/v1/tasks/{id}/complete

Response:
  - 200: Task: Updated task
  - 403: ErrForbidden: Task belongs to another user
  - 404: ErrNotFound: Unknown task ID
*/
func (handler *Handler) setCompletion(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setCompletionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.taskService.SetTaskCompletion(request.Context(), subjectID, requestutil.ID(request, "id"), input.Completed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Delete removes a caller-owned task.

DELETE /api/v1/tasks/{id}

Response:
  - 204: No Content: Task removed
  - 403: ErrForbidden: Task belongs to another user
  - 404: ErrNotFound: Unknown task ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	subjectID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.DeleteTask(request.Context(), subjectID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
