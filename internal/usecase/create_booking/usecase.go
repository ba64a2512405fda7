package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	calculator   PriceCalculator
	txManager    TransactionManager
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	calculator PriceCalculator,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		calculator:   calculator,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Чтение объекта, расчет цены и вставка выполняются в одной транзакции.
// Пересечение с другими бронированиями объекта не проверяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: property=%d, renter=%d, %s..%s",
		req.PropertyID, req.RenterID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Объект, цена и вставка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Объект (FOR SHARE внутри транзакции: владелец не удалит его до коммита)
		property, err := uc.propertyRepo.GetByID(txCtx, req.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return storeerr.Wrap("get property", err)
		}

		// 2.2. Стоимость фиксируется в момент создания
		total, err := uc.calculator.ComputeTotal(property.PricePerNight, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}

		// 2.3. INSERT ... RETURNING: запись и чтение одним запросом
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PropertyID: property.ID,
			RenterID:   req.RenterID,
			StartDate:  domain.DateOnly(req.StartDate),
			EndDate:    domain.DateOnly(req.EndDate),
			TotalPrice: total,
			Status:     domain.StatusPending,
		})
		if err != nil {
			return storeerr.Wrap("create booking", err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classify(req, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s", result.ID, result.TotalPrice.StringFixed(domain.PriceScale))

	return toResponse(result), nil
}

// classify логирует ошибку с уровнем по её виду
// Ошибки begin/commit приходят из txmanager без вида, их классифицирует storeerr
func (uc *UseCase) classify(req *Request, err error) error {
	err = storeerr.Wrap("create booking", err)

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRange):
		uc.logger.Warn("CreateBooking: property=%d rejected: %v", req.PropertyID, err)
		return err
	case errors.Is(err, domain.ErrTransientStore):
		uc.logger.Warn("CreateBooking: store unavailable: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: property=%d, renter=%d: %v", req.PropertyID, req.RenterID, err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}
	if req.RenterID <= 0 {
		return fmt.Errorf("%w: renterID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	return nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		RenterID:   b.RenterID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Nights:     b.Nights(),
		TotalPrice: b.TotalPrice,
		Status:     b.Status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
