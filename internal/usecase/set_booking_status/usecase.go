package set_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
)

// Результаты перехода для метрик
const (
	resultOK       = "ok"
	resultConflict = "conflict"
	resultNotFound = "not_found"
	resultError    = "error"
)

// UseCase use case для одобрения/отклонения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute переводит бронирование из Pending в Approved или Denied
//
// Переход выполняется одним условным UPDATE (WHERE status = 'Pending'),
// поэтому из двух одновременных решений по одному бронированию успешным будет ровно одно.
// Если UPDATE не затронул строк, бронирование читается повторно, чтобы отличить
// отсутствие бронирования от конфликта статуса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetBookingStatus: booking=%d, target=%s", req.BookingID, req.Status)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseDecision(req.Status)
	if err != nil {
		uc.logger.Warn("SetBookingStatus: booking=%d: %v", req.BookingID, err)
		return nil, err
	}

	var result *domain.Booking

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		updated, err := uc.bookingRepo.UpdateStatusFromPending(txCtx, req.BookingID, target)
		if err == nil {
			result = updated
			return nil
		}
		if !errors.Is(err, bookingRepo.ErrNotPending) {
			return storeerr.Wrap("update status", err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return storeerr.Wrap("get booking", err)
		}

		return &domain.StatusConflictError{BookingID: current.ID, Current: current.Status}
	})

	if err != nil {
		return nil, uc.classify(req, target, err)
	}

	uc.metrics.BookingTransition(target.String(), resultOK)
	uc.logger.Info("SetBookingStatus: booking id=%d is now %s", result.ID, result.Status)

	return &Response{
		ID:         result.ID,
		PropertyID: result.PropertyID,
		RenterID:   result.RenterID,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		TotalPrice: result.TotalPrice,
		Status:     result.Status.String(),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

func (uc *UseCase) classify(req *Request, target domain.BookingStatus, err error) error {
	err = storeerr.Wrap("set booking status", err)

	switch {
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.BookingTransition(target.String(), resultConflict)
		uc.logger.Warn("SetBookingStatus: %v", err)
		return err
	case errors.Is(err, domain.ErrNotFound):
		uc.metrics.BookingTransition(target.String(), resultNotFound)
		uc.logger.Warn("SetBookingStatus: booking id=%d not found", req.BookingID)
		return err
	case errors.Is(err, domain.ErrTransientStore):
		uc.metrics.BookingTransition(target.String(), resultError)
		uc.logger.Warn("SetBookingStatus: store unavailable: %v", err)
		return err
	default:
		uc.metrics.BookingTransition(target.String(), resultError)
		uc.logger.Error("SetBookingStatus: booking=%d, target=%s: %v", req.BookingID, target, err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
