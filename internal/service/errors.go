// Package service provides application-level services for managing tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps them to HTTP status
// codes.
var (
	// ErrTaskNotOwned indicates a task is owned by a different user than the
	// one making the request, and the requester is not an admin.
	// API layer should map this to HTTP 403 Forbidden.
	ErrTaskNotOwned = errors.New("task is owned by another user")

	// ErrEmptyUpdate indicates an update request that carries no fields.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyUpdate = errors.New("update contains no fields")
)
