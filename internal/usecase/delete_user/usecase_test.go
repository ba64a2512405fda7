package delete_user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	reviewRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/review"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

var userColumns = []string{
	"user_id", "username", "password_hash", "salt", "role",
	"email", "first_name", "last_name", "created_at", "updated_at",
}

var (
	qLockUser       = regexp.QuoteMeta("FROM users WHERE user_id = $1 FOR UPDATE")
	qLockProperties = regexp.QuoteMeta("SELECT property_id FROM properties WHERE owner_id = $1 ORDER BY property_id ASC FOR UPDATE")
	qStep1          = regexp.QuoteMeta("DELETE FROM reviews WHERE renter_id = $1")
	qStep2          = regexp.QuoteMeta("DELETE FROM bookings WHERE renter_id = $1")
	qStep3          = regexp.QuoteMeta("DELETE FROM reviews WHERE property_id IN (SELECT property_id FROM properties WHERE owner_id = $1)")
	qStep4          = regexp.QuoteMeta("DELETE FROM bookings WHERE property_id IN (SELECT property_id FROM properties WHERE owner_id = $1)")
	qStep5          = regexp.QuoteMeta("DELETE FROM properties WHERE owner_id = $1")
	qStep6          = regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")
)

func newFullStack(t *testing.T, opts ...txmanager.Option) (*UseCase, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	uc := NewUseCase(
		userRepo.NewRepository(wrapped),
		propertyRepo.NewRepository(wrapped),
		bookingRepo.NewRepository(wrapped),
		reviewRepo.NewRepository(wrapped),
		txmanager.NewTransactionManager(wrapped, opts...),
		metrics.NewRecorder(nil),
		logger.Nop(),
	)
	return uc, sqlMock
}

func expectLocks(sqlMock sqlmock.Sqlmock, userID int64) {
	now := time.Now()
	sqlMock.ExpectQuery(qLockUser).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(userID, "alice", "hash", "salt", "user", nil, "", "", now, now))
	sqlMock.ExpectQuery(qLockProperties).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"property_id"}).AddRow(int64(10)))
}

func TestExecute_DeletesInDependencyOrder(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	sqlMock.ExpectBegin()
	expectLocks(sqlMock, 1)
	sqlMock.ExpectExec(qStep1).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep2).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep3).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep4).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep5).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep6).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ReviewsDeleted)
	assert.Equal(t, int64(2), resp.BookingsDeleted)
	assert.Equal(t, int64(1), resp.PropertiesDeleted)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestExecute_EmptyStepsAreNotErrors(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	sqlMock.ExpectBegin()
	expectLocks(sqlMock, 1)
	for _, q := range []string{qStep1, qStep2, qStep3, qStep4, qStep5} {
		sqlMock.ExpectExec(q).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	sqlMock.ExpectExec(qStep6).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1})

	require.NoError(t, err)
	assert.Zero(t, resp.BookingsDeleted)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// Несуществующий пользователь: только блокирующий SELECT и откат, ни одного DELETE
func TestExecute_UserNotFound(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(qLockUser).WithArgs(int64(404)).WillReturnRows(sqlmock.NewRows(userColumns))
	sqlMock.ExpectRollback()

	_, err := uc.Execute(context.Background(), &Request{UserID: 404})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// Сбой на шаге 4 откатывает и шаги 1-3: COMMIT не выполняется
func TestExecute_StepFailureRollsBackEverything(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	sqlMock.ExpectBegin()
	expectLocks(sqlMock, 1)
	sqlMock.ExpectExec(qStep1).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep2).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep3).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(qStep4).WithArgs(int64(1)).WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})
	sqlMock.ExpectRollback()

	_, err := uc.Execute(context.Background(), &Request{UserID: 1})

	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "step 4")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// Конфликт сериализации до коммита повторяется целиком
func TestExecute_RetriesTransientFailure(t *testing.T) {
	uc, sqlMock := newFullStack(t, txmanager.WithRetry(2, time.Millisecond, time.Millisecond))

	sqlMock.ExpectBegin()
	expectLocks(sqlMock, 1)
	sqlMock.ExpectExec(qStep1).WithArgs(int64(1)).WillReturnError(&pq.Error{Code: "40P01"})
	sqlMock.ExpectRollback()

	sqlMock.ExpectBegin()
	expectLocks(sqlMock, 1)
	for _, q := range []string{qStep1, qStep2, qStep3, qStep4, qStep5, qStep6} {
		sqlMock.ExpectExec(q).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	sqlMock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.BookingsDeleted)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	_, err := uc.Execute(context.Background(), &Request{UserID: 0})

	assert.ErrorIs(t, err, domain.ErrRange)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
