package update_user

import (
	"github.com/m04kA/SMC-RentalService/internal/service/users/models"
)

// UpdateUserRequest HTTP request model, nil поле не меняется
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user lister admin"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateUserRequest) ToServiceRequest(userID int64) *models.UpdateRequest {
	return &models.UpdateRequest{
		UserID:    userID,
		Username:  r.Username,
		Password:  r.Password,
		Role:      r.Role,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}
