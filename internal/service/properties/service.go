package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
	"github.com/m04kA/SMC-RentalService/internal/service/properties/models"
)

// Service сервис для работы с объектами недвижимости
type Service struct {
	propertyRepo PropertyRepository
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса объектов
func NewService(
	propertyRepo PropertyRepository,
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает объект; владелец - текущий пользователь
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Create: owner=%d, name=%s, price=%s", req.OwnerID, req.Name, req.PricePerNight)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	rooms := req.Rooms
	if rooms == 0 {
		rooms = domain.DefaultRooms
	}

	created, err := s.propertyRepo.Create(ctx, &domain.Property{
		OwnerID:       req.OwnerID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Address:       req.Address,
		PricePerNight: req.PricePerNight.Round(domain.PriceScale),
		Rooms:         rooms,
	})
	if err != nil {
		if errors.Is(err, propertyRepo.ErrOwnerNotFound) {
			s.logger.Warn("Create: owner id=%d not found", req.OwnerID)
			return nil, ErrOwnerNotFound
		}
		return nil, s.internal("Create", err)
	}

	s.logger.Info("Create: created property id=%d", created.ID)
	return models.FromDomainProperty(created), nil
}

// GetByID получает объект по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PropertyResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("GetByID: property id=%d not found", id)
			return nil, ErrPropertyNotFound
		}
		return nil, s.internal("GetByID", err)
	}

	return models.FromDomainProperty(property), nil
}

// GetByOwner получает объекты владельца
func (s *Service) GetByOwner(ctx context.Context, ownerID int64) (*models.PropertyListResponse, error) {
	properties, err := s.propertyRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, s.internal("GetByOwner", err)
	}

	s.logger.Info("GetByOwner: fetched %d properties for owner=%d", len(properties), ownerID)
	return models.FromDomainPropertyList(properties), nil
}

// Delete удаляет объект вместе с его отзывами и бронированиями в одной транзакции
// Удалить объект может только владелец
func (s *Service) Delete(ctx context.Context, id int64, userID int64) (*models.DeletePropertyResponse, error) {
	s.logger.Info("Delete: property id=%d by user=%d", id, userID)

	resp := &models.DeletePropertyResponse{PropertyID: id}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// блокировка строки: новые бронирования и отзывы ждут коммита
		property, err := s.propertyRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return storeerr.Wrap("lock property", err)
		}

		if !property.IsOwnedBy(userID) {
			return ErrAccessDenied
		}

		if resp.ReviewsDeleted, err = s.reviewRepo.DeleteByProperty(txCtx, id); err != nil {
			return storeerr.Wrap("delete reviews", err)
		}
		if resp.BookingsDeleted, err = s.bookingRepo.DeleteByProperty(txCtx, id); err != nil {
			return storeerr.Wrap("delete bookings", err)
		}
		if err := s.propertyRepo.Delete(txCtx, id); err != nil {
			return storeerr.Wrap("delete property", err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			s.logger.Warn("Delete: property id=%d not found", id)
			return nil, err
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Delete: user=%d is not the owner of property id=%d", userID, id)
			return nil, err
		}
		return nil, s.internal("Delete", err)
	}

	s.logger.Info("Delete: property id=%d deleted with %d bookings, %d reviews",
		id, resp.BookingsDeleted, resp.ReviewsDeleted)
	return resp, nil
}

func validateCreate(req *models.CreatePropertyRequest) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxPropertyName {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxPropertyName)
	}
	if len(req.Description) > domain.MaxDescriptionChars {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	if req.PricePerNight.IsNegative() {
		return fmt.Errorf("%w: pricePerNight must not be negative", ErrInvalidInput)
	}
	if req.PricePerNight.Round(domain.PriceScale).GreaterThan(domain.MaxNightlyPrice) {
		return fmt.Errorf("%w: pricePerNight must not exceed %s", ErrInvalidInput, domain.MaxNightlyPrice.StringFixed(domain.PriceScale))
	}
	if req.Rooms < 0 || req.Rooms > domain.MaxRooms {
		return fmt.Errorf("%w: rooms must be 1..%d", ErrInvalidInput, domain.MaxRooms)
	}
	return nil
}

func (s *Service) internal(op string, err error) error {
	err = storeerr.Wrap(op, err)
	if errors.Is(err, domain.ErrTransientStore) {
		s.logger.Warn("%s: store unavailable: %v", op, err)
		return err
	}
	s.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
