package create_booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	PropertyID int64     // ID объекта
	RenterID   int64     // ID арендатора (из заголовка авторизации)
	StartDate  time.Time // Дата заезда
	EndDate    time.Time // Дата выезда
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	PropertyID int64
	RenterID   int64
	StartDate  time.Time
	EndDate    time.Time
	Nights     int
	TotalPrice decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
