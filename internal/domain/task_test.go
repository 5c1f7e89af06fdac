package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	task, err := NewTask(ownerID, "Buy milk", "two liters")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, ownerID, task.UserID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "two liters", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt, "fresh task must have equal timestamps")

	_, err = NewTask(ownerID, "", "")
	assert.ErrorIs(t, err, ErrEmptyTaskTitle)

	_, err = NewTask(uuid.Nil, "Buy milk", "")
	assert.ErrorIs(t, err, ErrEmptyTaskUserID)
}

func TestTaskApply(t *testing.T) {
	t.Parallel()

	title := "Walk the dog"
	desc := "around the block"
	done := true
	emptyTitle := ""

	tests := []struct {
		name    string
		update  TaskUpdate
		wantErr error
		check   func(t *testing.T, task *Task)
	}{
		{
			name:   "full update",
			update: TaskUpdate{Title: &title, Description: &desc, Completed: &done},
			check: func(t *testing.T, task *Task) {
				assert.Equal(t, "Walk the dog", task.Title)
				assert.Equal(t, "around the block", task.Description)
				assert.True(t, task.Completed)
			},
		},
		{
			name:   "completed only leaves other fields untouched",
			update: TaskUpdate{Completed: &done},
			check: func(t *testing.T, task *Task) {
				assert.Equal(t, "Buy milk", task.Title)
				assert.Equal(t, "two liters", task.Description)
				assert.True(t, task.Completed)
			},
		},
		{
			name:    "empty title rejected",
			update:  TaskUpdate{Title: &emptyTitle},
			wantErr: ErrEmptyTaskTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(uuid.New(), "Buy milk", "two liters")
			require.NoError(t, err)
			created := task.CreatedAt

			// Guarantee a measurable gap between creation and update.
			time.Sleep(5 * time.Millisecond)

			err = task.Apply(tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, task.UpdatedAt.After(created),
				"UpdatedAt must be strictly greater than CreatedAt after an update")
			tt.check(t, task)
		})
	}
}

func TestTaskUpdateIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskUpdate{}.IsEmpty())

	title := "x"
	assert.False(t, TaskUpdate{Title: &title}.IsEmpty())
}

func TestTaskEditableBy(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	task, err := NewTask(owner, "Buy milk", "")
	require.NoError(t, err)

	assert.True(t, task.EditableBy(owner, RoleUser))
	assert.True(t, task.EditableBy(stranger, RoleAdmin))
	assert.False(t, task.EditableBy(stranger, RoleUser))
}
