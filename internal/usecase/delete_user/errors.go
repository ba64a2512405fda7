package delete_user

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("%w: delete_user: user not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: delete_user: invalid input data", domain.ErrRange)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_user: internal error")
)
