package users

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)
}

// PasswordHasher хеширует пароль с новой солью
type PasswordHasher interface {
	Hash(password string) (hash, salt string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
