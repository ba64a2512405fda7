package create_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/reviews"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPropertyNotFound   = "объект не найден"
	msgRenterNotFound     = "пользователь не найден"
	msgInvalidData        = "некорректные данные отзыва"
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

// Handle POST /api/v1/properties/{propertyId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/reviews - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	renterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /properties/{id}/reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /properties/{id}/reviews - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	review, err := h.service.Create(r.Context(), req.ToServiceRequest(propertyID, renterID))
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{id}/reviews - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, reviews.ErrRenterNotFound):
			h.logger.Warn("POST /properties/{id}/reviews - Renter not found: user_id=%d", renterID)
			handlers.RespondNotFound(w, msgRenterNotFound)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /properties/{id}/reviews - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /properties/{id}/reviews - Failed to create review: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/reviews - Review created: review_id=%d, property_id=%d, user_id=%d",
		review.ID, propertyID, renterID)
	handlers.RespondJSON(w, http.StatusCreated, review)
}
