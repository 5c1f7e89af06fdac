package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// taskIDFromRequest extracts and parses the task ID path parameter.
// A malformed ID behaves like a missing task rather than exposing the
// ID format to clients.
func taskIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, store.ErrTaskNotFound
	}
	return id, nil
}

// List handles GET /tasks requests. It supports completed, page and
// per_page query parameters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query()

	filter := store.TaskFilter{}
	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid completed parameter")
			return
		}
		filter.Completed = &completed
	}

	page := service.DefaultPage
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid page parameter")
			return
		}
		page = parsed
	}

	perPage := service.DefaultPerPage
	if raw := query.Get("per_page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid per_page parameter")
			return
		}
		perPage = parsed
	}

	result, err := h.taskService.List(r.Context(), filter, page, perPage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	log.Debug("listed tasks",
		slog.Int("total", result.Total),
		slog.Int("page", result.CurrentPage))
	shared.RespondWithJSON(w, r, http.StatusOK, taskPageToResponse(result))
}

// Create handles POST /tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	task, err := h.taskService.Create(r.Context(), identity.UserID, req.Title, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("created task",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", identity.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PUT /tasks/{id} requests. Only the fields present in
// the body are changed; owners and admins may update any task they are
// allowed to see.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "No data provided")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	task, err := h.taskService.Update(r.Context(), id, identity.UserID, identity.Role, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("updated task",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", identity.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		log.Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), id, identity.UserID, identity.Role); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deleted task",
		slog.String("task_id", id.String()),
		slog.String("user_id", identity.UserID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Task deleted"})
}
