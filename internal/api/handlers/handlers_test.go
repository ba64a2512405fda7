package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type sampleRequest struct {
	PropertyID int64  `json:"propertyId" validate:"required,gt=0"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Internal   string `json:"-"`
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"propertyId":7,"startDate":"2024-01-01"}`))

	var req sampleRequest
	require.NoError(t, DecodeJSON(r, &req))
	assert.Equal(t, int64(7), req.PropertyID)
	assert.Equal(t, "2024-01-01", req.StartDate)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"propertyId":`))
	assert.Error(t, DecodeJSON(bad, &req))
}

func TestValidationMessage_UsesJSONNames(t *testing.T) {
	err := Validate(&sampleRequest{StartDate: "01.01.2024"})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "propertyId (required)")
	assert.Contains(t, msg, "startDate (datetime)")

	assert.NoError(t, Validate(&sampleRequest{PropertyID: 1, StartDate: "2024-01-01"}))
	assert.Equal(t, "некорректные данные запроса", ValidationMessage(errors.New("other")))
}

func TestRespondServerError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"transient", fmt.Errorf("op: %w", domain.ErrTransientStore), http.StatusServiceUnavailable},
		{"integrity", fmt.Errorf("op: %w", domain.ErrIntegrity), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondServerError(w, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotContains(t, body.Error, "boom")
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}
