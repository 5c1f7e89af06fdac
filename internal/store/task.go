package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskFilter restricts a task listing. A nil Completed means no filtering
// by completion state.
type TaskFilter struct {
	Completed *bool
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves a page of tasks matching the filter, ordered by
	// creation time, along with the total number of matching tasks.
	// limit and offset must be non-negative; an offset beyond the end of
	// the result set yields an empty slice, not an error.
	List(ctx context.Context, filter TaskFilter, limit, offset int) ([]domain.Task, int, error)

	// Update replaces the stored task with the given one.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
