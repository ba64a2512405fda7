package create_booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

// passTx выполняет функцию без транзакции
type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newUseCase(bookings BookingRepository, properties PropertyRepository, tx TransactionManager) *UseCase {
	return NewUseCase(bookings, properties, pricing.NewCalculator(), tx, metrics.NewRecorder(nil), logger.Nop())
}

func TestExecute_Success(t *testing.T) {
	bookings := new(mockBookingRepo)
	properties := new(mockPropertyRepo)

	properties.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Property{ID: 7, OwnerID: 1, PricePerNight: decimal.NewFromInt(100)}, nil)

	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PropertyID == 7 &&
			b.RenterID == 42 &&
			b.Status == domain.StatusPending &&
			b.TotalPrice.Equal(decimal.NewFromInt(300))
	})).Return(&domain.Booking{
		ID:         1,
		PropertyID: 7,
		RenterID:   42,
		StartDate:  date(2024, time.January, 1),
		EndDate:    date(2024, time.January, 4),
		TotalPrice: decimal.RequireFromString("300.00"),
		Status:     domain.StatusPending,
	}, nil)

	uc := newUseCase(bookings, properties, passTx{})

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: 7,
		RenterID:   42,
		StartDate:  date(2024, time.January, 1),
		EndDate:    date(2024, time.January, 4),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "300.00", resp.TotalPrice.StringFixed(2))
	bookings.AssertExpectations(t)
	properties.AssertExpectations(t)
}

func TestExecute_PropertyNotFound(t *testing.T) {
	bookings := new(mockBookingRepo)
	properties := new(mockPropertyRepo)

	properties.On("GetByID", mock.Anything, int64(7)).Return(nil, propertyRepo.ErrPropertyNotFound)

	uc := newUseCase(bookings, properties, passTx{})

	_, err := uc.Execute(context.Background(), &Request{
		PropertyID: 7,
		RenterID:   42,
		StartDate:  date(2024, time.January, 1),
		EndDate:    date(2024, time.January, 4),
	})

	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(new(mockBookingRepo), new(mockPropertyRepo), passTx{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero property", &Request{RenterID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)}},
		{"zero renter", &Request{PropertyID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)}},
		{"missing dates", &Request{PropertyID: 1, RenterID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrRange)
		})
	}
}

func TestExecute_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		kind     error
	}{
		{"connection lost", &pq.Error{Code: "08006"}, domain.ErrTransientStore},
		{"check violation", &pq.Error{Code: "23514"}, domain.ErrIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(mockBookingRepo)
			properties := new(mockPropertyRepo)

			properties.On("GetByID", mock.Anything, int64(7)).
				Return(&domain.Property{ID: 7, PricePerNight: decimal.NewFromInt(100)}, nil)
			bookings.On("Create", mock.Anything, mock.Anything).Return(nil, tt.storeErr)

			uc := newUseCase(bookings, properties, passTx{})

			_, err := uc.Execute(context.Background(), &Request{
				PropertyID: 7,
				RenterID:   42,
				StartDate:  date(2024, time.January, 1),
				EndDate:    date(2024, time.January, 2),
			})

			assert.ErrorIs(t, err, tt.kind)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func newFullStack(t *testing.T) (*UseCase, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	uc := newUseCase(
		bookingRepo.NewRepository(wrapped),
		propertyRepo.NewRepository(wrapped),
		txmanager.NewTransactionManager(wrapped),
	)
	return uc, sqlMock
}

func expectPropertyLookup(sqlMock sqlmock.Sqlmock, id int64, price string) {
	now := time.Now()
	sqlMock.ExpectQuery(regexp.QuoteMeta("FROM properties WHERE property_id = $1 FOR SHARE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"property_id", "owner_id", "name", "description", "address",
			"price_per_night", "rooms", "created_at", "updated_at",
		}).AddRow(id, int64(1), "Flat", "", "", price, 1, now, now))
}

// Дата выезда не позже даты заезда: транзакция откатывается, INSERT не выполняется
func TestExecute_InvalidRangeWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		end  time.Time
	}{
		{"same day", date(2024, time.January, 4)},
		{"end before start", date(2024, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, sqlMock := newFullStack(t)

			sqlMock.ExpectBegin()
			expectPropertyLookup(sqlMock, 7, "100.00")
			sqlMock.ExpectRollback()

			_, err := uc.Execute(context.Background(), &Request{
				PropertyID: 7,
				RenterID:   42,
				StartDate:  date(2024, time.January, 4),
				EndDate:    tt.end,
			})

			assert.ErrorIs(t, err, domain.ErrRange)
			assert.ErrorIs(t, err, pricing.ErrInvalidRange)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestExecute_FullStackSuccess(t *testing.T) {
	uc, sqlMock := newFullStack(t)

	now := time.Now()
	sqlMock.ExpectBegin()
	expectPropertyLookup(sqlMock, 7, "100.00")
	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(int64(7), int64(42), date(2024, time.January, 1), date(2024, time.January, 4), sqlmock.AnyArg(), domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{
			"booking_id", "property_id", "renter_id", "start_date", "end_date",
			"total_price", "status", "created_at", "updated_at",
		}).AddRow(int64(11), int64(7), int64(42), date(2024, time.January, 1), date(2024, time.January, 4), "300.00", "Pending", now, now))
	sqlMock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: 7,
		RenterID:   42,
		StartDate:  date(2024, time.January, 1),
		EndDate:    date(2024, time.January, 4),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(300)))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
