package register_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUsernameTaken      = "пользователь с таким username уже существует"
	msgInvalidData        = "некорректные данные пользователя"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /users - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	user, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken):
			h.logger.Warn("POST /users - Username taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgUsernameTaken)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /users - Failed to register user: username=%s, error=%v", req.Username, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("POST /users - User registered: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}
