package delete_user

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	LockByOwner(ctx context.Context, ownerID int64) ([]int64, error)
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteByRenter(ctx context.Context, renterID int64) (int64, error)
	DeleteByPropertyOwner(ctx context.Context, ownerID int64) (int64, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	DeleteByRenter(ctx context.Context, renterID int64) (int64, error)
	DeleteByPropertyOwner(ctx context.Context, ownerID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные метрики
type MetricsRecorder interface {
	UserDeleted(rowsByTable map[string]int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
