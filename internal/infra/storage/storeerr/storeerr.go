// Package storeerr переводит ошибки хранилища в доменные виды ошибок.
package storeerr

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/pgerrors"
)

// Wrap оборачивает ошибку хранилища в domain.ErrTransientStore, domain.ErrRange
// (переполнение числовой колонки) или domain.ErrIntegrity.
// Ошибки, уже несущие доменный вид (NotFound, Range, Conflict), возвращаются как есть.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	if pgerrors.IsTransient(err) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", domain.ErrTransientStore, op, err)
	}
	// Сумма, не поместившаяся в NUMERIC колонку, - ошибка входных данных
	if pgerrors.IsNumericOutOfRange(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrRange, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrIntegrity, op, err)
}

// IsClassified сообщает, что ошибка уже несет один из доменных видов
func IsClassified(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrRange) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrTransientStore) ||
		errors.Is(err, domain.ErrIntegrity)
}
