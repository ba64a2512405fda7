package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// GetRenterBookingsRequest запрос на получение бронирований арендатора
type GetRenterBookingsRequest struct {
	UserID   int64   `json:"userId"`   // Кто запрашивает
	RenterID int64   `json:"renterId"` // Чьи бронирования
	Status   *string `json:"status,omitempty"`
}

// GetPropertyBookingsRequest запрос на получение бронирований объекта (для владельца)
type GetPropertyBookingsRequest struct {
	UserID     int64   `json:"userId"`
	PropertyID int64   `json:"propertyId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	RenterID   int64  `json:"renterId"`
	StartDate  string `json:"startDate"` // "2024-01-01"
	EndDate    string `json:"endDate"`
	Nights     int    `json:"nights"`
	TotalPrice string `json:"totalPrice"` // "300.00"
	Status     string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		RenterID:   b.RenterID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		Nights:     b.Nights(),
		TotalPrice: b.TotalPrice.StringFixed(domain.PriceScale),
		Status:     b.Status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ParseStatusFilter разбирает необязательный фильтр по статусу
func ParseStatusFilter(status *string) (*domain.BookingStatus, error) {
	if status == nil {
		return nil, nil
	}

	parsed, err := domain.ParseBookingStatus(*status)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
