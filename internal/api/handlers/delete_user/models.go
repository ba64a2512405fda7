package delete_user

import (
	deleteUser "github.com/m04kA/SMC-RentalService/internal/usecase/delete_user"
)

// DeleteUserResponse HTTP response model
type DeleteUserResponse struct {
	UserID            int64 `json:"userId"`
	ReviewsDeleted    int64 `json:"reviewsDeleted"`
	BookingsDeleted   int64 `json:"bookingsDeleted"`
	PropertiesDeleted int64 `json:"propertiesDeleted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *deleteUser.Response) *DeleteUserResponse {
	return &DeleteUserResponse{
		UserID:            resp.UserID,
		ReviewsDeleted:    resp.ReviewsDeleted,
		BookingsDeleted:   resp.BookingsDeleted,
		PropertiesDeleted: resp.PropertiesDeleted,
	}
}
