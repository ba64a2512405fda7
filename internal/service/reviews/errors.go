package reviews

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = fmt.Errorf("%w: property not found", domain.ErrNotFound)

	// ErrRenterNotFound возвращается, когда автор отзыва не существует
	ErrRenterNotFound = fmt.Errorf("%w: renter not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrRange)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
