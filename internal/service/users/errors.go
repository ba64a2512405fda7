package users

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)

	// ErrUsernameTaken возвращается, когда username уже занят
	ErrUsernameTaken = fmt.Errorf("%w: username already exists", domain.ErrConflict)

	// ErrNoFieldsToUpdate возвращается, когда в запросе на обновление нет ни одного поля
	ErrNoFieldsToUpdate = fmt.Errorf("%w: no fields to update", domain.ErrRange)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrRange)

	// ErrAccessDenied возвращается, когда пользователь меняет чужой профиль
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
