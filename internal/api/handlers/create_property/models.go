package create_property

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/service/properties/models"
)

// CreatePropertyRequest HTTP request model
// Владелец берется из заголовка X-User-ID
type CreatePropertyRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description,omitempty" validate:"max=5000"`
	Address       string           `json:"address,omitempty" validate:"max=500"`
	PricePerNight *decimal.Decimal `json:"pricePerNight" validate:"required"` // 100 или "100.00"
	Rooms         int              `json:"rooms,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePropertyRequest) ToServiceRequest(ownerID int64) *models.CreatePropertyRequest {
	return &models.CreatePropertyRequest{
		OwnerID:       ownerID,
		Name:          r.Name,
		Description:   r.Description,
		Address:       r.Address,
		PricePerNight: *r.PricePerNight,
		Rooms:         r.Rooms,
	}
}
