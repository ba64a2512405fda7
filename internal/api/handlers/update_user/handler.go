package update_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/users"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgUsernameTaken      = "пользователь с таким username уже существует"
	msgNoFields           = "нет полей для обновления"
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

// Handle PUT /api/v1/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /users/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /users/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	// Сервис сам проверит, что пользователь меняет свой профиль
	user, err := h.service.Update(r.Context(), targetID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("PUT /users/{id} - Access denied: user_id=%d, target_id=%d", userID, targetID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /users/{id} - User not found: user_id=%d", targetID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, users.ErrUsernameTaken):
			h.logger.Warn("PUT /users/{id} - Username taken: user_id=%d", targetID)
			handlers.RespondConflict(w, msgUsernameTaken)

		case errors.Is(err, users.ErrNoFieldsToUpdate):
			handlers.RespondBadRequest(w, msgNoFields)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /users/{id} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /users/{id} - Failed to update user: user_id=%d, error=%v", targetID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("PUT /users/{id} - User updated: user_id=%d", targetID)
	handlers.RespondJSON(w, http.StatusOK, user)
}
