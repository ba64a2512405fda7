package set_booking_status

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID int64
	Status    string // Approved или Denied, регистр значим
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID         int64
	PropertyID int64
	RenterID   int64
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
