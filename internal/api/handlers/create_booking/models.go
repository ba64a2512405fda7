package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Арендатор берется из заголовка X-User-ID, а не из тела
type CreateBookingRequest struct {
	PropertyID int64  `json:"propertyId" validate:"required,gt=0"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"` // "2024-01-01"
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	RenterID   int64  `json:"renterId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Nights     int    `json:"nights"`
	TotalPrice string `json:"totalPrice"` // "300.00"
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(renterID int64) (*createBooking.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse startDate: %w", err)
	}

	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse endDate: %w", err)
	}

	return &createBooking.Request{
		PropertyID: r.PropertyID,
		RenterID:   renterID,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		RenterID:   resp.RenterID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		Nights:     resp.Nights,
		TotalPrice: resp.TotalPrice.StringFixed(domain.PriceScale),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
