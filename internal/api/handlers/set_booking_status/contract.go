package set_booking_status

import (
	"context"

	setBookingStatus "github.com/m04kA/SMC-RentalService/internal/usecase/set_booking_status"
)

type SetBookingStatusUseCase interface {
	Execute(ctx context.Context, req *setBookingStatus.Request) (*setBookingStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
