package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "Pending"
	StatusApproved BookingStatus = "Approved"
	StatusDenied   BookingStatus = "Denied"
)

// transitions is the whole booking state machine: Pending -> {Approved, Denied}
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusDenied},
	StatusApproved: {},
	StatusDenied:   {},
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo returns true if the state machine allows s -> target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus.
// The match is exact: "approved" is rejected, not coerced to "Approved".
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrRange, s)
	}
	return status, nil
}

// ParseDecision parses the target of an owner decision: Approved or Denied
func ParseDecision(s string) (BookingStatus, error) {
	status, err := ParseBookingStatus(s)
	if err != nil {
		return "", err
	}
	if !StatusPending.CanTransitionTo(status) {
		return "", fmt.Errorf("%w: %q is not a decision status", ErrRange, s)
	}
	return status, nil
}

// Booking represents a stay request of a renter for a property
type Booking struct {
	ID         int64
	PropertyID int64
	RenterID   int64
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice decimal.Decimal // nightly price * nights, fixed at creation
	Status     BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights returns the number of nights between StartDate and EndDate
func (b *Booking) Nights() int {
	return CalendarDays(b.StartDate, b.EndDate)
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	PropertyID *int64         // Бронирования объекта (для владельца)
	RenterID   *int64         // Бронирования арендатора
	Status     *BookingStatus // Фильтр по статусу (опционально)
}
