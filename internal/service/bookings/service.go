package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят арендатор и владелец объекта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		return nil, s.internal("GetByID", err)
	}

	if booking.RenterID != userID {
		if err := s.checkOwnerAccess(ctx, booking.PropertyID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetRenterBookings получает бронирования арендатора
// Опционально фильтрует по статусу; пользователь видит только свои бронирования
func (s *Service) GetRenterBookings(ctx context.Context, req *models.GetRenterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRenterBookings: renter=%d, user=%d, status=%v", req.RenterID, req.UserID, req.Status)

	if req.UserID != req.RenterID {
		s.logger.Warn("GetRenterBookings: user=%d cannot read bookings of renter=%d", req.UserID, req.RenterID)
		return nil, ErrAccessDenied
	}

	status, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetRenterBookings: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{RenterID: &req.RenterID, Status: status})
	if err != nil {
		return nil, s.internal("GetRenterBookings", err)
	}

	s.logger.Info("GetRenterBookings: fetched %d bookings for renter=%d", len(bookings), req.RenterID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPropertyBookings получает бронирования объекта; доступно только владельцу
func (s *Service) GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPropertyBookings: property=%d, user=%d, status=%v", req.PropertyID, req.UserID, req.Status)

	status, err := models.ParseStatusFilter(req.Status)
	if err != nil {
		s.logger.Warn("GetPropertyBookings: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.checkOwnerAccess(ctx, req.PropertyID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{PropertyID: &req.PropertyID, Status: status})
	if err != nil {
		return nil, s.internal("GetPropertyBookings", err)
	}

	s.logger.Info("GetPropertyBookings: fetched %d bookings for property=%d", len(bookings), req.PropertyID)
	return models.FromDomainBookingList(bookings), nil
}

// checkOwnerAccess проверяет, что пользователь владеет объектом
func (s *Service) checkOwnerAccess(ctx context.Context, propertyID int64, userID int64) error {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("checkOwnerAccess: property id=%d not found", propertyID)
			return ErrPropertyNotFound
		}
		return s.internal("checkOwnerAccess", err)
	}

	if !property.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of property=%d", userID, propertyID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) internal(op string, err error) error {
	err = storeerr.Wrap(op, err)
	if errors.Is(err, domain.ErrTransientStore) {
		s.logger.Warn("%s: store unavailable: %v", op, err)
		return err
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
