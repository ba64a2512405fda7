package get_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "бронирование доступно только арендатору и владельцу объекта"
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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := parseBookingID(r)
	if err != nil {
		h.logger.Warn("GetBooking: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, viewerID)
	switch {
	case err == nil:
		handlers.RespondJSON(w, http.StatusOK, booking)

	// Бронирование на удаленный объект для клиента выглядит так же, как отсутствующее
	case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrPropertyNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GetBooking: user=%d is neither renter nor lister of booking=%d", viewerID, bookingID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("GetBooking: booking=%d: %v", bookingID, err)
		handlers.RespondServerError(w, err)
	}
}

func parseBookingID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["bookingId"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", raw)
	}
	return id, nil
}
