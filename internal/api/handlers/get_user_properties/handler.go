package get_user_properties

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle GET /api/v1/users/{userId}/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/properties - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.GetByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /users/{userId}/properties - Failed to get properties: owner_id=%d, error=%v",
			ownerID, err)
		handlers.RespondServerError(w, err)
		return
	}

	h.logger.Info("GET /users/{userId}/properties - Properties retrieved: owner_id=%d, count=%d",
		ownerID, len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, result)
}
