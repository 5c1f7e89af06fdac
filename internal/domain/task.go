package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
)

// Task represents a single to-do item owned by a user.
// CreatedAt is immutable; UpdatedAt is refreshed on every mutation and
// is never earlier than CreatedAt.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID and sets both timestamps to the
// same instant, so a freshly created task has UpdatedAt == CreatedAt.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	return nil
}

// TaskUpdate carries a partial update to a task. Nil fields are left
// untouched by Apply.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// Apply merges the supplied fields into the task and refreshes UpdatedAt.
// Returns ErrEmptyTaskTitle if the update would leave the task without a
// title.
func (t *Task) Apply(update TaskUpdate) error {
	if update.Title != nil {
		if *update.Title == "" {
			return ErrEmptyTaskTitle
		}
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Completed != nil {
		t.Completed = *update.Completed
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// EditableBy reports whether the given requester may mutate or delete the
// task: the owner always may, and admins bypass the ownership check.
func (t *Task) EditableBy(requesterID uuid.UUID, role Role) bool {
	return t.UserID == requesterID || role == RoleAdmin
}
