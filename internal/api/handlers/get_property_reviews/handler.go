package get_property_reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/reviews"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgNotFound          = "объект не найден"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/reviews - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	result, err := h.service.GetByProperty(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, reviews.ErrPropertyNotFound) {
			h.logger.Warn("GET /properties/{id}/reviews - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /properties/{id}/reviews - Failed to get reviews: property_id=%d, error=%v",
			propertyID, err)
		handlers.RespondServerError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Reviews)
}
