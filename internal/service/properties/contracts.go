package properties

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeleteByProperty(ctx context.Context, propertyID int64) (int64, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	DeleteByProperty(ctx context.Context, propertyID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
