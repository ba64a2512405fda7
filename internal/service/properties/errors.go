package properties

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = fmt.Errorf("%w: property not found", domain.ErrNotFound)

	// ErrOwnerNotFound возвращается, когда владелец не существует
	ErrOwnerNotFound = fmt.Errorf("%w: owner not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владеет объектом
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrRange)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
