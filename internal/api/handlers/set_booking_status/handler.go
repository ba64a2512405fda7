package set_booking_status

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	setBookingStatus "github.com/m04kA/SMC-RentalService/internal/usecase/set_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "некорректный статус, допустимые значения: Approved, Denied"
	msgAlreadyDecided     = "бронирование уже в статусе %s"
	msgConflict           = "бронирование уже не ожидает решения"
)

type Handler struct {
	useCase SetBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase SetBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SetStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/status - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		var conflict *domain.StatusConflictError
		switch {
		case errors.Is(err, setBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.As(err, &conflict):
			h.logger.Warn("PUT /bookings/{id}/status - %v", conflict)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgAlreadyDecided, conflict.Current))

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /bookings/{id}/status - Conflict: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgConflict)

		case errors.Is(err, domain.ErrRange):
			h.logger.Warn("PUT /bookings/{id}/status - Invalid status: booking_id=%d, status=%q", bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PUT /bookings/{id}/status - Failed to set status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/status - Status changed: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
