package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func newRequest(body string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	return r
}

const validBody = `{"propertyId":10,"startDate":"2024-01-01","endDate":"2024-01-04"}`

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.PropertyID == 10 && req.RenterID == 5 &&
			req.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			req.EndDate.Equal(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	})).Return(&createBooking.Response{
		ID:         1,
		PropertyID: 10,
		RenterID:   5,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		Nights:     3,
		TotalPrice: decimal.RequireFromString("300"),
		Status:     domain.StatusPending.String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, 5))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "300.00", resp.TotalPrice)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "2024-01-04", resp.EndDate)
	assert.Equal(t, 3, resp.Nights)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"property not found", createBooking.ErrPropertyNotFound, http.StatusNotFound},
		{"range", pricing.ErrInvalidRange, http.StatusBadRequest},
		{"total too large", fmt.Errorf("%w: 101 nights", pricing.ErrTotalTooLarge), http.StatusBadRequest},
		{"transient", fmt.Errorf("%w: begin: %w", createBooking.ErrInternal, domain.ErrTransientStore), http.StatusServiceUnavailable},
		{"integrity", fmt.Errorf("%w: %w", createBooking.ErrInternal, domain.ErrIntegrity), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			h := NewHandler(uc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(validBody, 5))

			assert.Equal(t, tt.code, w.Code)
			assert.NotContains(t, w.Body.String(), "integrity")
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"propertyId":`},
		{"missing property", `{"startDate":"2024-01-01","endDate":"2024-01-04"}`},
		{"bad date format", `{"propertyId":10,"startDate":"01.01.2024","endDate":"2024-01-04"}`},
		{"impossible date", `{"propertyId":10,"startDate":"2024-02-30","endDate":"2024-03-04"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.body, 5))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, 0))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
