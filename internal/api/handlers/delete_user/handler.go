package delete_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	deleteUser "github.com/m04kA/SMC-RentalService/internal/usecase/delete_user"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgNotFound      = "пользователь не найден"
)

type Handler struct {
	useCase DeleteUserUseCase
	logger  Logger
}

func NewHandler(useCase DeleteUserUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/users/{userId}
// Удаляет пользователя вместе с его объектами, бронированиями и отзывами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /users/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь удаляет только свой аккаунт
	if userID != targetID {
		h.logger.Warn("DELETE /users/{id} - Access denied: user_id=%d, target_id=%d", userID, targetID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &deleteUser.Request{UserID: targetID})
	if err != nil {
		switch {
		case errors.Is(err, deleteUser.ErrUserNotFound):
			h.logger.Warn("DELETE /users/{id} - User not found: user_id=%d", targetID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteUser.ErrInvalidInput):
			h.logger.Warn("DELETE /users/{id} - Invalid input: user_id=%d", targetID)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("DELETE /users/{id} - Failed to delete user: user_id=%d, error=%v", targetID, err)
			handlers.RespondServerError(w, err)
		}
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: user_id=%d, properties=%d, bookings=%d, reviews=%d",
		targetID, result.PropertiesDeleted, result.BookingsDeleted, result.ReviewsDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
