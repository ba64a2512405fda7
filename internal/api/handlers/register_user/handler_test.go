package register_user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/service/users"
	"github.com/m04kA/SMC-RentalService/internal/service/users/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		result *models.UserResponse
		err    error
		code   int
	}{
		{
			name:   "created",
			body:   `{"username":"anna","password":"secret1","role":"lister"}`,
			result: &models.UserResponse{ID: 1, Username: "anna", Role: "lister"},
			code:   http.StatusCreated,
		},
		{
			name: "username taken",
			body: `{"username":"anna","password":"secret1"}`,
			err:  users.ErrUsernameTaken,
			code: http.StatusConflict,
		},
		{
			name: "invalid input from service",
			body: `{"username":"anna","password":"secret1"}`,
			err:  users.ErrInvalidInput,
			code: http.StatusBadRequest,
		},
		{
			name: "internal",
			body: `{"username":"anna","password":"secret1"}`,
			err:  users.ErrInternal,
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				svc.On("Register", mock.Anything, mock.MatchedBy(func(req *models.RegisterRequest) bool {
					return req.Username == "anna" && req.Password == "secret1"
				})).Return(tt.result, nil)
			}
			h := NewHandler(svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.body))

			assert.Equal(t, tt.code, w.Code)
			assert.NotContains(t, w.Body.String(), "secret1")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_ValidationRejectsBeforeService(t *testing.T) {
	bodies := []string{
		`{"password":"secret1"}`,
		`{"username":"anna"}`,
		`{"username":"anna","password":"123"}`,
		`{"username":"anna","password":"secret1","role":"root"}`,
		`{"username":"anna","password":"secret1","email":"not-an-email"}`,
		`not json`,
	}

	for _, body := range bodies {
		svc := new(mockService)
		h := NewHandler(svc, logger.Nop())

		w := httptest.NewRecorder()
		h.Handle(w, newRequest(body))

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	}
}
