package txmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

const insertQuery = "INSERT INTO bookings"

func newManager(t *testing.T) (*TransactionManager, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewTransactionManager(wrapped, WithRetry(3, time.Millisecond, time.Millisecond)), wrapped, mock
}

// insert выполняет запрос через executor из контекста, как это делают репозитории
func insert(db *dbmetrics.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO bookings (status) VALUES ($1)", "Pending")
		return err
	}
}

func TestDo_Commits(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WithArgs("Pending").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Do(context.Background(), insert(db)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	m, _, mock := newManager(t)
	errBusiness := errors.New("business rule")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.Do(context.Background(), func(ctx context.Context) error { return errBusiness })
	assert.ErrorIs(t, err, errBusiness)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RetriesSerializationFailure(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	attempts := 0
	err := m.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return insert(db)(ctx)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RetriesBeginFailure(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(&pq.Error{Code: "08006"})
	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.Do(context.Background(), insert(db)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	wrapped := dbmetrics.Wrap(db, nil)
	m := NewTransactionManager(wrapped, WithRetry(1, time.Millisecond, time.Millisecond))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(insertQuery).WillReturnError(&pq.Error{Code: "40P01"})
		mock.ExpectRollback()
	}

	err = m.Do(context.Background(), insert(wrapped))

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40P01"), pqErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_DoesNotRetryIntegrityViolation(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	attempts := 0
	err := m.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return insert(db)(ctx)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_DoesNotRetryAmbiguousCommit(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "08006"})

	attempts := 0
	err := m.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return insert(db)(ctx)
	})

	assert.ErrorIs(t, err, ErrCommit)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallsShareTransaction(t *testing.T) {
	m, db, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		if err := insert(db)(ctx); err != nil {
			return err
		}
		return m.Do(ctx, insert(db))
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_CanceledContextIsNotRetried(t *testing.T) {
	m, _, mock := newManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := m.Do(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
