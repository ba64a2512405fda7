package get_property_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "объект не найден"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус, допустимые значения: Pending, Approved, Denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/bookings
// Список бронирований объекта для его владельца, ?status= опционален
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/bookings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetPropertyBookings(r.Context(), &models.GetPropertyBookingsRequest{
		UserID:     userID,
		PropertyID: propertyID,
		Status:     statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/bookings - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id}/bookings - Access denied: property_id=%d, user_id=%d",
				propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /properties/{id}/bookings - Failed to get bookings: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/bookings - Bookings retrieved: property_id=%d, count=%d",
		propertyID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
