package create_property

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/properties"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOwnerNotFound      = "владелец не найден"
	msgInvalidData        = "некорректные данные объекта"
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

// Handle POST /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /properties - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePropertyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /properties - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	property, err := h.service.Create(r.Context(), req.ToServiceRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrOwnerNotFound):
			h.logger.Warn("POST /properties - Owner not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("POST /properties - Invalid data: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /properties - Failed to create property: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("POST /properties - Property created: property_id=%d, owner_id=%d", property.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, property)
}
