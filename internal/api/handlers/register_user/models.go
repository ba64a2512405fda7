package register_user

import (
	"github.com/m04kA/SMC-RentalService/internal/service/users/models"
)

// RegisterUserRequest HTTP request model
type RegisterUserRequest struct {
	Username  string  `json:"username" validate:"required,max=64"`
	Password  string  `json:"password" validate:"required,min=6,max=128"`
	Role      string  `json:"role,omitempty" validate:"omitempty,oneof=user lister admin"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string  `json:"firstName,omitempty" validate:"max=100"`
	LastName  string  `json:"lastName,omitempty" validate:"max=100"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterUserRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:  r.Username,
		Password:  r.Password,
		Role:      r.Role,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}
