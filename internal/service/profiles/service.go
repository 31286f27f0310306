package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	profileRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/profile"
	userRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/user"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"
)

// Service сервис профилей пользователей
type Service struct {
	profileRepo ProfileRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(profileRepo ProfileRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Get возвращает профиль пользователя владельцу или администратору
func (s *Service) Get(ctx context.Context, actor domain.Actor, userID int64) (*models.ProfileResponse, error) {
	if err := s.authorize(actor, userID, "Get"); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID, "Get")
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Get: profile of user=%d not found", userID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainProfile(profile, user), nil
}

// Replace полностью перезаписывает профиль (PUT), создавая его при отсутствии
func (s *Service) Replace(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Replace: profile of user=%d by user=%d", userID, actor.UserID)

	profile := &domain.Profile{
		UserID:      userID,
		Specialties: req.Specialties,
		HourlyRate:  req.HourlyRate,
		SocialLinks: req.SocialLinks,
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	return s.save(ctx, actor, profile, "Replace")
}

// Patch обновляет только переданные поля профиля (PATCH)
func (s *Service) Patch(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Patch: profile of user=%d by user=%d", userID, actor.UserID)

	if err := s.authorize(actor, userID, "Patch"); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Error("Patch: repository error for user=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: Patch - repository error: %w", ErrInternal, err)
		}
		profile = &domain.Profile{UserID: userID}
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Specialties != nil {
		profile.Specialties = req.Specialties
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = req.HourlyRate
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = req.SocialLinks
	}

	return s.save(ctx, actor, profile, "Patch")
}

func (s *Service) save(ctx context.Context, actor domain.Actor, profile *domain.Profile, op string) (*models.ProfileResponse, error) {
	if err := s.authorize(actor, profile.UserID, op); err != nil {
		return nil, err
	}
	if profile.HourlyRate != nil && *profile.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must be non-negative", ErrInvalidInput)
	}

	user, err := s.getUser(ctx, profile.UserID, op)
	if err != nil {
		return nil, err
	}

	saved, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		s.logger.Error("%s: repository error for user=%d: %v", op, profile.UserID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: profile of user=%d saved", op, profile.UserID)
	return models.FromDomainProfile(saved, user), nil
}

func (s *Service) authorize(actor domain.Actor, userID int64, op string) error {
	if !domain.Authorize(actor, &domain.Profile{UserID: userID}).Write {
		s.logger.Warn("%s: access denied for user=%d to profile of user=%d", op, actor.UserID, userID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getUser(ctx context.Context, id int64, op string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: failed to get user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - user: %w", ErrInternal, op, err)
	}
	return user, nil
}
