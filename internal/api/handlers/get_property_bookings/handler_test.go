package get_property_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func newRequest(id, query string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/properties/"+id+"/bookings"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"propertyId": id})
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	return r
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"owner", nil, http.StatusOK},
		{"property missing", bookings.ErrPropertyNotFound, http.StatusNotFound},
		{"not owner", bookings.ErrAccessDenied, http.StatusForbidden},
		{"bad status", bookings.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			call := svc.On("GetPropertyBookings", mock.Anything, mock.MatchedBy(func(req *models.GetPropertyBookingsRequest) bool {
				return req.PropertyID == 4 && req.UserID == 9 && req.Status != nil && *req.Status == "Pending"
			}))
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}}}, nil)
			}
			h := NewHandler(svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest("4", "?status=Pending", 9))

			assert.Equal(t, tt.code, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_RejectsBeforeService(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("x", "", 9))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, newRequest("4", "", 0))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.AssertNotCalled(t, "GetPropertyBookings", mock.Anything, mock.Anything)
}
