// Package api provides HTTP handlers for the API.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// Only the supplied fields are changed.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is the canonical JSON shape of a task.
// Timestamps are RFC 3339 strings in UTC.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	UserID      uuid.UUID `json:"user_id"`
}

// TaskListResponse is one page of tasks with pagination metadata.
type TaskListResponse struct {
	Tasks       []TaskResponse `json:"tasks"`
	Total       int            `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"current_page"`
}

// taskToResponse converts a domain task into its response shape.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
		UserID:      task.UserID,
	}
}

// taskPageToResponse converts a service page into its response shape.
func taskPageToResponse(page *service.TaskPage) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for i := range page.Tasks {
		tasks = append(tasks, taskToResponse(&page.Tasks[i]))
	}
	return TaskListResponse{
		Tasks:       tasks,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
	}
}
