package delete_property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/properties"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "объект не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/properties/{propertyId}
// Вместе с объектом удаляются его бронирования и отзывы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /properties/{id} - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит, что пользователь владеет объектом
	result, err := h.service.Delete(r.Context(), propertyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("DELETE /properties/{id} - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("DELETE /properties/{id} - Access denied: property_id=%d, user_id=%d", propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /properties/{id} - Failed to delete property: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("DELETE /properties/{id} - Property deleted: property_id=%d, bookings=%d, reviews=%d",
		propertyID, result.BookingsDeleted, result.ReviewsDeleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
