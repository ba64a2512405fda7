package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

func newDB(t *testing.T) (*DB, *metrics.Metrics, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	return Wrap(db, m), m, mock
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT 1"))
	assert.Equal(t, "insert", operationName("  INSERT INTO bookings (status) VALUES ($1)"))
	assert.Equal(t, "delete", operationName("DELETE\nFROM reviews"))
	assert.Equal(t, "other", operationName("BEGIN"))
}

func TestDB_ObservesQueriesAndErrors(t *testing.T) {
	d, m, mock := newDB(t)

	mock.ExpectExec("DELETE FROM reviews").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings").WillReturnError(&pq.Error{Code: "40P01"})

	_, err := d.ExecContext(context.Background(), "DELETE FROM reviews WHERE renter_id = $1", 1)
	require.NoError(t, err)
	_, err = d.ExecContext(context.Background(), "DELETE FROM bookings WHERE renter_id = $1", 1)
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("delete")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_CountsOutcomes(t *testing.T) {
	d, m, mock := newDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := d.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx, err = d.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBTransactions.WithLabelValues("commit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBTransactions.WithLabelValues("rollback")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	d, _, mock := newDB(t)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, d, GetExecutor(ctx, d))

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := d.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, d))
}
