package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn   func(ctx context.Context, filter store.TaskFilter, page, perPage int) (*service.TaskPage, error)
	CreateFn func(ctx context.Context, ownerID uuid.UUID, title, description string) (*domain.Task, error)
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn func(ctx context.Context, id, requesterID uuid.UUID, requesterRole domain.Role, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn func(ctx context.Context, id, requesterID uuid.UUID, requesterRole domain.Role) error

	// Default values used when functions aren't explicitly defined
	Page *service.TaskPage
	Task *domain.Task
	Err  error
}

// Ensure MockTaskService implements service.TaskService
var _ service.TaskService = (*MockTaskService)(nil)

// List implements the service.TaskService interface
func (m *MockTaskService) List(
	ctx context.Context,
	filter store.TaskFilter,
	page, perPage int,
) (*service.TaskPage, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page, perPage)
	}
	return m.Page, m.Err
}

// Create implements the service.TaskService interface
func (m *MockTaskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, title, description)
	}
	return m.Task, m.Err
}

// Get implements the service.TaskService interface
func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Task, m.Err
}

// Update implements the service.TaskService interface
func (m *MockTaskService) Update(
	ctx context.Context,
	id uuid.UUID,
	requesterID uuid.UUID,
	requesterRole domain.Role,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, requesterID, requesterRole, update)
	}
	return m.Task, m.Err
}

// Delete implements the service.TaskService interface
func (m *MockTaskService) Delete(
	ctx context.Context,
	id uuid.UUID,
	requesterID uuid.UUID,
	requesterRole domain.Role,
) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, requesterID, requesterRole)
	}
	return m.Err
}
