package get_property_reviews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/service/reviews"
	"github.com/m04kA/SMC-RentalService/internal/service/reviews/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByProperty(ctx context.Context, propertyID int64) (*models.ReviewListResponse, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewListResponse), args.Error(1)
}

func newRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/properties/"+id+"/reviews", nil)
	return mux.SetURLVars(r, map[string]string{"propertyId": id})
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByProperty", mock.Anything, int64(1)).
		Return(&models.ReviewListResponse{Reviews: []models.ReviewResponse{{ID: 1, Rating: 4}}}, nil)
	svc.On("GetByProperty", mock.Anything, int64(2)).Return(nil, reviews.ErrPropertyNotFound)
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest("1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rating":4`)

	w = httptest.NewRecorder()
	h.Handle(w, newRequest("2"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, newRequest("zz"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
