package set_booking_status

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: set_booking_status: booking not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: set_booking_status: invalid input data", domain.ErrRange)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_booking_status: internal error")
)
