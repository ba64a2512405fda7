package get_user_properties

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/properties/models"
)

type PropertyService interface {
	GetByOwner(ctx context.Context, ownerID int64) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
