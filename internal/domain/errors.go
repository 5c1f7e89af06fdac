// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrForbidden is returned when an authenticated user attempts an
	// operation on a resource they neither own nor have the role to touch.
	ErrForbidden = errors.New("operation not permitted")

	// ErrUnauthorized is returned when an operation requires an
	// authenticated user and none is present.
	ErrUnauthorized = errors.New("unauthorized operation")
)
