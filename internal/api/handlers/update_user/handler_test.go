package update_user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/users"
	"github.com/m04kA/SMC-RentalService/internal/service/users/models"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Update(ctx context.Context, id int64, req *models.UpdateRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func newRequest(target, body string, userID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+target, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"userId": target})
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
		{"updated", nil, http.StatusOK},
		{"other user", users.ErrAccessDenied, http.StatusForbidden},
		{"not found", users.ErrUserNotFound, http.StatusNotFound},
		{"username taken", users.ErrUsernameTaken, http.StatusConflict},
		{"no fields", users.ErrNoFieldsToUpdate, http.StatusBadRequest},
		{"internal", users.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			call := svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(req *models.UpdateRequest) bool {
				return req.UserID == 3 && req.FirstName != nil && *req.FirstName == "Anna"
			}))
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&models.UserResponse{ID: 3, FirstName: "Anna"}, nil)
			}
			h := NewHandler(svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest("3", `{"firstName":"Anna"}`, 3))

			assert.Equal(t, tt.code, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_RejectsBeforeService(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		userID int64
		code   int
	}{
		{"bad id", "x", `{}`, 3, http.StatusBadRequest},
		{"no identity", "3", `{}`, 0, http.StatusUnauthorized},
		{"malformed", "3", `{`, 3, http.StatusBadRequest},
		{"bad email", "3", `{"email":"nope"}`, 3, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			h := NewHandler(svc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.target, tt.body, tt.userID))

			assert.Equal(t, tt.code, w.Code)
			svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
