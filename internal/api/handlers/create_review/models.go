package create_review

import (
	"github.com/m04kA/SMC-RentalService/internal/service/reviews/models"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateReviewRequest) ToServiceRequest(propertyID, renterID int64) *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		PropertyID: propertyID,
		RenterID:   renterID,
		Rating:     r.Rating,
		Comment:    r.Comment,
	}
}
