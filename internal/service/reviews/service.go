package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	reviewRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/review"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
	"github.com/m04kA/SMC-RentalService/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo   ReviewRepository
	propertyRepo PropertyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	propertyRepo PropertyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает отзыв на объект
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: property=%d, renter=%d, rating=%d", req.PropertyID, req.RenterID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be %d..%d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if len(req.Comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	var result *domain.Review

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.propertyRepo.GetByID(txCtx, req.PropertyID); err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return storeerr.Wrap("get property", err)
		}

		created, err := s.reviewRepo.Create(txCtx, &domain.Review{
			PropertyID: req.PropertyID,
			RenterID:   req.RenterID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})
		if err != nil {
			// объект заблокирован FOR SHARE, значит не существует автор
			if errors.Is(err, reviewRepo.ErrReferenceNotFound) {
				return ErrRenterNotFound
			}
			return storeerr.Wrap("create review", err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Create: %v", err)
			return nil, err
		}
		return nil, s.internal("Create", err)
	}

	s.logger.Info("Create: created review id=%d", result.ID)
	return models.FromDomainReview(result), nil
}

// GetByProperty получает отзывы объекта
func (s *Service) GetByProperty(ctx context.Context, propertyID int64) (*models.ReviewListResponse, error) {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("GetByProperty: property id=%d not found", propertyID)
			return nil, ErrPropertyNotFound
		}
		return nil, s.internal("GetByProperty", err)
	}

	reviews, err := s.reviewRepo.GetByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, s.internal("GetByProperty", err)
	}

	return models.FromDomainReviewList(reviews), nil
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
