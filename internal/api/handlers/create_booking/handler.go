package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPropertyNotFound   = "объект не найден"
	msgInvalidRange       = "дата выезда должна быть позже даты заезда"
	msgTotalTooLarge      = "стоимость проживания превышает допустимый максимум, сократите период"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Арендатор - пользователь из заголовка X-User-ID
	renterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(renterID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%d", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, pricing.ErrTotalTooLarge):
			h.logger.Warn("POST /bookings - Total too large: property_id=%d, start=%s, end=%s",
				req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgTotalTooLarge)

		case errors.Is(err, domain.ErrRange):
			h.logger.Warn("POST /bookings - Invalid range: property_id=%d, start=%s, end=%s",
				req.PropertyID, req.StartDate, req.EndDate)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, property_id=%d, error=%v",
				renterID, req.PropertyID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, property_id=%d",
		result.ID, renterID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
