package users

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/storage/storeerr"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RentalService/internal/service/users/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// Service сервис для работы с пользователями
// Удаление пользователя выполняет usecase delete_user
type Service struct {
	userRepo UserRepository
	hasher   PasswordHasher
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, hasher PasswordHasher, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register регистрирует пользователя
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: username=%s", req.Username)

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	role := req.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !slices.Contains(domain.Roles, role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, s.internal("Register", err)
	}
	if exists {
		s.logger.Warn("Register: username=%s already exists", username)
		return nil, ErrUsernameTaken
	}

	hash, salt, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.internal("Register", err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		// гонка двух регистраций с одним username
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			s.logger.Warn("Register: username=%s already exists", username)
			return nil, ErrUsernameTaken
		}
		return nil, s.internal("Register", err)
	}

	s.logger.Info("Register: created user id=%d", created.ID)
	return models.FromDomainUser(created), nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		return nil, s.internal("GetByID", err)
	}

	return models.FromDomainUser(user), nil
}

// Update частично обновляет профиль; пользователь меняет только свой профиль
// Новый пароль хешируется с новой солью
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRequest) (*models.UserResponse, error) {
	s.logger.Info("Update: user id=%d by user=%d", id, req.UserID)

	if req.UserID != id {
		s.logger.Warn("Update: user=%d cannot update user id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	upd, err := s.toDomainUpdate(req)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	updated, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("Update: user id=%d not found", id)
			return nil, ErrUserNotFound
		case errors.Is(err, userRepo.ErrUsernameTaken):
			s.logger.Warn("Update: username already exists")
			return nil, ErrUsernameTaken
		}
		return nil, s.internal("Update", err)
	}

	s.logger.Info("Update: user id=%d updated", id)
	return models.FromDomainUser(updated), nil
}

func (s *Service) toDomainUpdate(req *models.UpdateRequest) (domain.UserUpdate, error) {
	upd := domain.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return upd, fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
		}
		upd.Username = ptr.Ptr(username)
	}

	if req.Role != nil {
		if !slices.Contains(domain.Roles, *req.Role) {
			return upd, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *req.Role)
		}
		upd.Role = req.Role
	}

	if req.Password != nil {
		if *req.Password == "" {
			return upd, fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
		}
		hash, salt, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return upd, s.internal("Update", err)
		}
		upd.PasswordHash = ptr.Ptr(hash)
		upd.Salt = ptr.Ptr(salt)
	}

	return upd, nil
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
