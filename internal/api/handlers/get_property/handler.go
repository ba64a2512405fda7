package get_property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/properties"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgNotFound          = "объект не найден"
)

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	property, err := h.service.GetByID(r.Context(), propertyID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /properties/{id} - Failed to get property: property_id=%d, error=%v", propertyID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, property)
}
