package set_booking_status

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	setBookingStatus "github.com/m04kA/SMC-RentalService/internal/usecase/set_booking_status"
)

// SetStatusRequest HTTP request model
// Допустимые значения проверяет use case: Approved или Denied, с учетом регистра
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	RenterID   int64  `json:"renterId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	TotalPrice string `json:"totalPrice"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetStatusRequest) ToUseCaseRequest(bookingID int64) *setBookingStatus.Request {
	return &setBookingStatus.Request{
		BookingID: bookingID,
		Status:    r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setBookingStatus.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		PropertyID: resp.PropertyID,
		RenterID:   resp.RenterID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		TotalPrice: resp.TotalPrice.StringFixed(domain.PriceScale),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
