package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues/models"
)

// Роли, которым разрешено создавать площадки каждого типа
var creatorRoles = map[domain.VenueKind][]domain.Role{
	domain.VenueStudio: {domain.RoleStudioOwner, domain.RoleAdmin},
	domain.VenueJamPad: {domain.RoleStudioOwner, domain.RoleBusiness, domain.RoleAdmin},
}

// Service сервис студий и джем-падов
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// Create создает площадку, владельцем становится вызывающий
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: %s by user=%d", req.Kind, actor.UserID)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown venue type", ErrInvalidInput)
	}
	if !actor.HasRole(creatorRoles[req.Kind]...) {
		s.logger.Warn("Create: role %s cannot create %s", actor.Role, req.Kind)
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(req.Name) == "" || req.HourlyRate < 0 {
		s.logger.Warn("Create: invalid venue data from user=%d", actor.UserID)
		return nil, fmt.Errorf("%w: name is required and hourly rate must be non-negative", ErrInvalidInput)
	}

	venue, err := s.venueRepo.Create(ctx, &domain.Venue{
		Kind:        req.Kind,
		OwnerID:     actor.UserID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		HourlyRate:  req.HourlyRate,
		Equipment:   req.Equipment,
		Amenities:   req.Amenities,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created %s id=%d", venue.Kind, venue.ID)
	return models.FromDomainVenue(venue), nil
}

// GetByID возвращает площадку. Каталог публичный
func (s *Service) GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*models.VenueResponse, error) {
	venue, err := s.getVenue(ctx, kind, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainVenue(venue), nil
}

// List возвращает каталог площадок
func (s *Service) List(ctx context.Context, req *models.ListVenuesRequest) (*models.VenueListResponse, error) {
	page := req.Page.Normalize()

	venues, err := s.venueRepo.List(ctx, domain.VenueFilter{
		Kind:     req.Kind,
		OwnerID:  req.OwnerID,
		Location: req.Location,
		Page:     page,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d %s venues", len(venues), req.Kind)
	return models.FromDomainVenueList(venues, page), nil
}

// Update частично обновляет площадку (владелец или администратор)
func (s *Service) Update(ctx context.Context, actor domain.Actor, kind domain.VenueKind, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: %s id=%d by user=%d", kind, id, actor.UserID)

	venue, err := s.getVenue(ctx, kind, id, "Update")
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, venue).Write {
		s.logger.Warn("Update: access denied for user=%d to %s id=%d", actor.UserID, kind, id)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		venue.Name = *req.Name
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Location != nil {
		venue.Location = *req.Location
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate must be non-negative", ErrInvalidInput)
		}
		venue.HourlyRate = *req.HourlyRate
	}
	if req.Equipment != nil {
		venue.Equipment = req.Equipment
	}
	if req.Amenities != nil {
		venue.Amenities = req.Amenities
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: repository error for %s id=%d: %v", kind, id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated %s id=%d", kind, id)
	return models.FromDomainVenue(venue), nil
}

// Delete удаляет площадку (владелец или администратор)
func (s *Service) Delete(ctx context.Context, actor domain.Actor, kind domain.VenueKind, id int64) error {
	s.logger.Info("Delete: %s id=%d by user=%d", kind, id, actor.UserID)

	venue, err := s.getVenue(ctx, kind, id, "Delete")
	if err != nil {
		return err
	}

	if !domain.Authorize(actor, venue).Write {
		s.logger.Warn("Delete: access denied for user=%d to %s id=%d", actor.UserID, kind, id)
		return ErrAccessDenied
	}

	if err := s.venueRepo.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		s.logger.Error("Delete: repository error for %s id=%d: %v", kind, id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted %s id=%d", kind, id)
	return nil
}

func (s *Service) getVenue(ctx context.Context, kind domain.VenueKind, id int64, op string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: %s id=%d not found", op, kind, id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: repository error for %s id=%d: %v", op, kind, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return venue, nil
}
