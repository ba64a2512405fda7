// Package pgerrors классифицирует ошибки PostgreSQL по SQLSTATE.
package pgerrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

// Коды и классы SQLSTATE, с которыми работает сервис
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeQueryCanceled        = "57014"
	CodeLockNotAvailable     = "55P03"
	CodeNumericOutOfRange    = "22003"

	classIntegrityViolation = "23"
	classConnectionError    = "08"
	classOperatorIntervened = "57"
)

// Code возвращает SQLSTATE ошибки, если это *pq.Error
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsTransient сообщает, что запрос можно безопасно повторить:
// конфликт сериализации, deadlock, потеря соединения, таймаут
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	code := Code(err)
	switch {
	case len(code) != 5:
		return false
	case code == CodeSerializationFailure, code == CodeDeadlockDetected, code == CodeLockNotAvailable:
		return true
	case code[:2] == classConnectionError, code[:2] == classOperatorIntervened:
		return true
	}
	return false
}

// IsRetryable как IsTransient, но без таймаута: истекший контекст повторять бессмысленно
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	return IsTransient(err)
}

// IsIntegrityViolation нарушение ограничения целостности (класс 23)
func IsIntegrityViolation(err error) bool {
	code := Code(err)
	return len(code) == 5 && code[:2] == classIntegrityViolation
}

// IsUniqueViolation нарушение уникальности
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsNumericOutOfRange значение не помещается в числовую колонку
func IsNumericOutOfRange(err error) bool {
	return Code(err) == CodeNumericOutOfRange
}
