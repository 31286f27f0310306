package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID.
// Видят клиент, владелец площадки и администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, booking).Read {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования с учетом роли:
// администратор видит все, владелец площадок - свои и бронирования своих площадок, остальные - свои
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	page := req.Page.Normalize()
	s.logger.Info("List: user=%d role=%s skip=%d take=%d", req.Actor.UserID, req.Actor.Role, page.Skip, page.Take)

	if req.Status != nil && !req.Status.IsValid() {
		s.logger.Warn("List: invalid status=%s", *req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if req.VenueKind != nil && !req.VenueKind.IsValid() {
		s.logger.Warn("List: invalid venue type=%s", *req.VenueKind)
		return nil, fmt.Errorf("%w: invalid venue type", ErrInvalidInput)
	}

	filter := domain.BookingFilter{
		VenueKind: req.VenueKind,
		Status:    req.Status,
		Page:      page,
	}

	if !req.Actor.IsAdmin() {
		userID := req.Actor.UserID
		filter.UserID = &userID
		if req.Actor.HasRole(domain.RoleStudioOwner, domain.RoleBusiness) {
			filter.VenueOwnerID = &userID
		}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d bookings for user=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings, page), nil
}

// Remove удаляет бронирование.
// Права те же, что на изменение; завершенное бронирование удаляет только администратор
func (s *Service) Remove(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Remove: deleting booking id=%d by user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, id, "Remove")
	if err != nil {
		return err
	}

	if !domain.Authorize(actor, booking).Write {
		s.logger.Warn("Remove: access denied for user=%d to booking id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if booking.IsCompleted() && !actor.IsAdmin() {
		s.logger.Warn("Remove: booking id=%d is completed, user=%d is not admin", id, actor.UserID)
		return ErrCompletedImmutable
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Remove: booking id=%d not found during delete", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Remove: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Remove: successfully deleted booking id=%d", id)
	return nil
}

// CompleteFinished переводит закончившиеся подтвержденные бронирования в COMPLETED
func (s *Service) CompleteFinished(ctx context.Context) (int64, error) {
	count, err := s.bookingRepo.CompleteFinished(ctx, s.now())
	if err != nil {
		s.logger.Error("CompleteFinished: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteFinished - repository error: %w", ErrInternal, err)
	}
	return count, nil
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}
