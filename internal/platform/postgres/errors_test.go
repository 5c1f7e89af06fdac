package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "nil error",
			err:      nil,
			sentinel: nil,
		},
		{
			name:     "no rows maps to not found",
			err:      sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			err:      &pgconn.PgError{Code: uniqueViolationCode},
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			err:      &pgconn.PgError{Code: checkViolationCode},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to invalid entity",
			err:      &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"},
			sentinel: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.err)
			if tt.sentinel == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.sentinel)
		})
	}

	t.Run("unknown error passes through", func(t *testing.T) {
		t.Parallel()

		err := errors.New("connection reset")
		assert.Equal(t, err, MapError(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "task"))
	})

	t.Run("zero rows yields not found", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, "task")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "task")
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, "task"))
	})

	t.Run("rows affected error propagates", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{err: errors.New("driver error")}, "task")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}
