package delete_user

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
)

// Имена таблиц для метрик и логов
const (
	tableReviews    = "reviews"
	tableBookings   = "bookings"
	tableProperties = "properties"
	tableUsers      = "users"
)

// step шаг каскадного удаления
type step struct {
	name  string
	table string
	run   func(ctx context.Context, userID int64) (int64, error)
}

// UseCase use case для каскадного удаления пользователя
type UseCase struct {
	userRepo     UserRepository
	propertyRepo PropertyRepository
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	propertyRepo PropertyRepository,
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// steps порядок удаления: сначала дочерние строки, потом родительские.
// Внешние ключи схемы объявлены без ON DELETE CASCADE, поэтому порядок обязателен.
func (uc *UseCase) steps() []step {
	return []step{
		{"reviews by renter", tableReviews, uc.reviewRepo.DeleteByRenter},
		{"bookings by renter", tableBookings, uc.bookingRepo.DeleteByRenter},
		{"reviews on owned properties", tableReviews, uc.reviewRepo.DeleteByPropertyOwner},
		{"bookings on owned properties", tableBookings, uc.bookingRepo.DeleteByPropertyOwner},
		{"owned properties", tableProperties, uc.propertyRepo.DeleteByOwner},
		{"user", tableUsers, uc.deleteUserRow},
	}
}

// Execute удаляет пользователя вместе со всеми зависимыми строками в одной транзакции
//
// Строка пользователя и строки его объектов блокируются до начала удаления:
// параллельные вставки бронирований и отзывов, ссылающихся на них, ждут коммита
// и затем падают на внешнем ключе, а не оставляют сирот.
// Ошибка на любом шаге откатывает всю транзакцию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteUser: user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var deleted map[string]int64

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// повтор транзакции начинается с чистого счета
		deleted = make(map[string]int64, 4)

		if _, err := uc.userRepo.GetByIDForUpdate(txCtx, req.UserID); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return storeerr.Wrap("lock user", err)
		}

		if _, err := uc.propertyRepo.LockByOwner(txCtx, req.UserID); err != nil {
			return storeerr.Wrap("lock owned properties", err)
		}

		for i, s := range uc.steps() {
			n, err := s.run(txCtx, req.UserID)
			if err != nil {
				return storeerr.Wrap(fmt.Sprintf("step %d (%s)", i+1, s.name), err)
			}
			deleted[s.table] += n
		}

		return nil
	})

	if err != nil {
		return nil, uc.classify(req, err)
	}

	uc.metrics.UserDeleted(deleted)
	uc.logger.Info("DeleteUser: user id=%d deleted with %d reviews, %d bookings, %d properties",
		req.UserID, deleted[tableReviews], deleted[tableBookings], deleted[tableProperties])

	return &Response{
		UserID:            req.UserID,
		ReviewsDeleted:    deleted[tableReviews],
		BookingsDeleted:   deleted[tableBookings],
		PropertiesDeleted: deleted[tableProperties],
	}, nil
}

func (uc *UseCase) deleteUserRow(ctx context.Context, userID int64) (int64, error) {
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return 0, err
	}
	return 1, nil
}

func (uc *UseCase) classify(req *Request, err error) error {
	err = storeerr.Wrap("delete user", err)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("DeleteUser: user id=%d not found", req.UserID)
		return err
	case errors.Is(err, domain.ErrTransientStore):
		uc.logger.Warn("DeleteUser: store unavailable: %v", err)
		return err
	default:
		uc.logger.Error("DeleteUser: user=%d, transaction rolled back: %v", req.UserID, err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
