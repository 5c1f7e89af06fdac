package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Pagination defaults, matching the API's documented behavior.
const (
	DefaultPage    = 1
	DefaultPerPage = 5
)

// TaskPage is one page of a task listing along with its pagination metadata.
type TaskPage struct {
	Tasks       []domain.Task
	Total       int
	Pages       int
	CurrentPage int
}

// TaskService provides task CRUD operations with ownership-based
// authorization. Mutating operations that require an authorization check
// run the check and the mutation inside a single transaction, so the task
// cannot change owner or disappear between the two steps.
type TaskService interface {
	// List returns one page of tasks matching the filter. Non-positive page
	// or perPage values fall back to the defaults; a page past the end of
	// the result set yields an empty page, not an error.
	List(ctx context.Context, filter store.TaskFilter, page, perPage int) (*TaskPage, error)

	// Create creates a task owned by ownerID.
	// Returns domain validation errors if the title is empty.
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*domain.Task, error)

	// Get retrieves a task by ID.
	// Returns store.ErrTaskNotFound if no such task exists.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to a task on behalf of the requester.
	// Returns store.ErrTaskNotFound if the task is absent, ErrTaskNotOwned
	// if the requester is neither the owner nor an admin, ErrEmptyUpdate if
	// no fields were supplied, and domain.ErrEmptyTaskTitle if the update
	// would blank the title.
	Update(
		ctx context.Context,
		id uuid.UUID,
		requesterID uuid.UUID,
		requesterRole domain.Role,
		update domain.TaskUpdate,
	) (*domain.Task, error)

	// Delete permanently removes a task on behalf of the requester.
	// Ownership rules are the same as for Update.
	Delete(
		ctx context.Context,
		id uuid.UUID,
		requesterID uuid.UUID,
		requesterRole domain.Role,
	) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
	}
}

// List returns one page of tasks matching the filter.
func (s *TaskServiceImpl) List(
	ctx context.Context,
	filter store.TaskFilter,
	page, perPage int,
) (*TaskPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	offset := (page - 1) * perPage
	tasks, total, err := s.taskStore.List(ctx, filter, perPage, offset)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"page", page,
			"per_page", perPage)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	pages := (total + perPage - 1) / perPage

	return &TaskPage{
		Tasks:       tasks,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

// Create creates a task owned by ownerID.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description)
	if err != nil {
		s.logger.Debug("failed to create task object",
			"error", err,
			"user_id", ownerID)
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			"error", err,
			"task_id", task.ID,
			"user_id", ownerID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", ownerID)

	return task, nil
}

// Get retrieves a task by ID.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("task not found", "task_id", id)
			return nil, err
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	return task, nil
}

// Update applies a partial update to a task on behalf of the requester.
// The ownership check and the write happen inside one transaction to avoid
// a check-then-act gap.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	requesterID uuid.UUID,
	requesterRole domain.Role,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !task.EditableBy(requesterID, requesterRole) {
			return ErrTaskNotOwned
		}

		if err := task.Apply(update); err != nil {
			return err
		}

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.logger.Debug("task not found for update", "task_id", id)
		case errors.Is(err, ErrTaskNotOwned):
			s.logger.Debug("update denied",
				"task_id", id,
				"requester_id", requesterID)
		case errors.Is(err, domain.ErrEmptyTaskTitle):
			s.logger.Debug("update would blank title", "task_id", id)
		default:
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", id)
		}
		return nil, err
	}

	s.logger.Info("task updated",
		"task_id", id,
		"requester_id", requesterID)

	return updated, nil
}

// Delete permanently removes a task on behalf of the requester.
// The ownership check and the delete happen inside one transaction.
func (s *TaskServiceImpl) Delete(
	ctx context.Context,
	id uuid.UUID,
	requesterID uuid.UUID,
	requesterRole domain.Role,
) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !task.EditableBy(requesterID, requesterRole) {
			return ErrTaskNotOwned
		}

		return txStore.Delete(ctx, id)
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.logger.Debug("task not found for delete", "task_id", id)
		case errors.Is(err, ErrTaskNotOwned):
			s.logger.Debug("delete denied",
				"task_id", id,
				"requester_id", requesterID)
		default:
			s.logger.Error("failed to delete task",
				"error", err,
				"task_id", id)
		}
		return err
	}

	s.logger.Info("task deleted",
		"task_id", id,
		"requester_id", requesterID)

	return nil
}
