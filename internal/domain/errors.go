package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by all use cases. Package-level sentinels wrap one of them,
// so the HTTP layer maps a response with errors.Is on the kind.
var (
	// ErrNotFound referenced entity is absent
	ErrNotFound = errors.New("not found")

	// ErrRange semantically invalid input (e.g. non-positive night count)
	ErrRange = errors.New("invalid range")

	// ErrConflict valid request rejected because of the current entity state
	ErrConflict = errors.New("conflict")

	// ErrTransientStore timeout or connection failure, safe to retry
	ErrTransientStore = errors.New("store temporarily unavailable")

	// ErrIntegrity unexpected store failure inside a unit of work
	ErrIntegrity = errors.New("integrity failure")
)

// StatusConflictError is returned when a decision is made on a booking
// that has already left Pending
type StatusConflictError struct {
	BookingID int64
	Current   BookingStatus
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("booking %d is already %s", e.BookingID, e.Current)
}

func (e *StatusConflictError) Unwrap() error {
	return ErrConflict
}
