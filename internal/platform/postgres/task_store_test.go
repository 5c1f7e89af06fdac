package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

const insertTaskQuery = `
		INSERT INTO tasks (id, user_id, title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

const selectTaskByIDQuery = `
		SELECT id, user_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

const updateTaskQuery = `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4, updated_at = $5
		WHERE id = $1
	`

var taskColumns = []string{
	"id", "user_id", "title", "description", "completed", "created_at", "updated_at",
}

func newStoredTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(uuid.New(), "Buy groceries", "Milk and eggs")
	require.NoError(t, err)
	return task
}

func taskRow(rows *sqlmock.Rows, task *domain.Task) *sqlmock.Rows {
	return rows.AddRow(
		task.ID.String(),
		task.UserID.String(),
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
}

func TestTaskStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts the task", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)

		mock.ExpectExec(regexp.QuoteMeta(insertTaskQuery)).
			WithArgs(task.ID, task.UserID, task.Title, task.Description,
				task.Completed, task.CreatedAt, task.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		taskStore := NewTaskStore(db, nil)
		require.NoError(t, taskStore.Create(context.Background(), task))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner maps to ErrInvalidEntity", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)

		mock.ExpectExec(regexp.QuoteMeta(insertTaskQuery)).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"})

		taskStore := NewTaskStore(db, nil)
		err = taskStore.Create(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("rejects an invalid task before touching the database", func(t *testing.T) {
		t.Parallel()

		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)
		task.Title = ""

		taskStore := NewTaskStore(db, nil)
		assert.ErrorIs(t, taskStore.Create(context.Background(), task), domain.ErrEmptyTaskTitle)
	})
}

func TestTaskStoreGetByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the task", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)
		rows := taskRow(sqlmock.NewRows(taskColumns), task)

		mock.ExpectQuery(regexp.QuoteMeta(selectTaskByIDQuery)).
			WithArgs(task.ID).
			WillReturnRows(rows)

		taskStore := NewTaskStore(db, nil)
		got, err := taskStore.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, task.UserID, got.UserID)
		assert.Equal(t, task.Title, got.Title)
	})

	t.Run("missing task maps to ErrTaskNotFound", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(selectTaskByIDQuery)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(taskColumns))

		taskStore := NewTaskStore(db, nil)
		_, err = taskStore.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskStoreList(t *testing.T) {
	t.Parallel()

	t.Run("returns page and unfiltered total", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		first := newStoredTask(t)
		second := newStoredTask(t)
		second.CreatedAt = first.CreatedAt.Add(time.Minute)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		rows := taskRow(taskRow(sqlmock.NewRows(taskColumns), first), second)
		mock.ExpectQuery("SELECT id, user_id, title, description, completed, created_at, updated_at").
			WithArgs(5, 0).
			WillReturnRows(rows)

		taskStore := NewTaskStore(db, nil)
		tasks, total, err := taskStore.List(context.Background(), store.TaskFilter{}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, tasks, 2)
		assert.Equal(t, first.ID, tasks[0].ID)
		assert.Equal(t, second.ID, tasks[1].ID)
	})

	t.Run("completed filter applies to count and page", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)
		task.Completed = true

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE completed = $1")).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT id, user_id, title, description, completed, created_at, updated_at").
			WithArgs(true, 5, 0).
			WillReturnRows(taskRow(sqlmock.NewRows(taskColumns), task))

		completed := true
		taskStore := NewTaskStore(db, nil)
		tasks, total, err := taskStore.List(
			context.Background(), store.TaskFilter{Completed: &completed}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].Completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page is not an error", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery("SELECT id, user_id, title, description, completed, created_at, updated_at").
			WithArgs(5, 10).
			WillReturnRows(sqlmock.NewRows(taskColumns))

		taskStore := NewTaskStore(db, nil)
		tasks, total, err := taskStore.List(context.Background(), store.TaskFilter{}, 5, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, tasks)
	})
}

func TestTaskStoreUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates the row", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)
		task.Completed = true

		mock.ExpectExec(regexp.QuoteMeta(updateTaskQuery)).
			WithArgs(task.ID, task.Title, task.Description, task.Completed, task.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		taskStore := NewTaskStore(db, nil)
		require.NoError(t, taskStore.Update(context.Background(), task))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task maps to a not found error", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		task := newStoredTask(t)

		mock.ExpectExec(regexp.QuoteMeta(updateTaskQuery)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		taskStore := NewTaskStore(db, nil)
		assert.ErrorIs(t, taskStore.Update(context.Background(), task), store.ErrNotFound)
	})
}

func TestTaskStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes the row", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		taskStore := NewTaskStore(db, nil)
		require.NoError(t, taskStore.Delete(context.Background(), id))
	})

	t.Run("missing task maps to a not found error", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tasks WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		taskStore := NewTaskStore(db, nil)
		assert.ErrorIs(t, taskStore.Delete(context.Background(), id), store.ErrNotFound)
	})
}
