package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
)

// UseCase use case для частичного обновления бронирования
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	txManager   TransactionManager
	events      EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		txManager:   txManager,
		events:      publisher,
		logger:      logger,
	}
}

// Execute применяет изменения к бронированию.
// Новый интервал проверяется на пересечения под той же блокировкой площадки, что и при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: booking id=%d by user=%d role=%s", req.BookingID, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result    *domain.Booking
		confirmed bool
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование вместе с владельцем площадки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Клиент, владелец площадки или администратор
		if !domain.Authorize(req.Actor, booking).Write {
			uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", req.Actor.UserID, booking.ID)
			return ErrAccessDenied
		}

		// 2.3. Завершенное бронирование меняет только администратор
		if booking.IsCompleted() && !req.Actor.IsAdmin() {
			uc.logger.Warn("UpdateBooking: booking id=%d is completed, rejected for user=%d", booking.ID, req.Actor.UserID)
			return ErrCompletedImmutable
		}

		previousStatus := booking.Status

		// 2.4. Смена статуса
		if req.Status != nil && *req.Status != booking.Status {
			if !req.Actor.IsAdmin() && req.Actor.UserID != booking.VenueOwnerID {
				uc.logger.Warn("UpdateBooking: user=%d cannot change status of booking id=%d", req.Actor.UserID, booking.ID)
				return ErrStatusChangeDenied
			}
			if booking.IsCompleted() {
				uc.logger.Warn("UpdateBooking: booking id=%d is completed, status change rejected", booking.ID)
				return ErrCompletedImmutable
			}
		}

		// 2.5. Время и цена меняются только у PENDING, кроме администратора
		if req.changesSchedule() && !booking.IsPending() && !req.Actor.IsAdmin() {
			uc.logger.Warn("UpdateBooking: booking id=%d in status %s is not editable by user=%d",
				booking.ID, booking.Status, req.Actor.UserID)
			return ErrNotEditable
		}

		timesChanged := (req.StartTime != nil && !req.StartTime.Equal(booking.StartTime)) ||
			(req.EndTime != nil && !req.EndTime.Equal(booking.EndTime))

		if req.StartTime != nil {
			booking.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			booking.EndTime = *req.EndTime
		}
		if req.Status != nil {
			booking.Status = *req.Status
		}
		if req.Notes != nil {
			booking.Notes = req.Notes
		}

		if !domain.ValidTimeRange(booking.StartTime, booking.EndTime) {
			uc.logger.Warn("UpdateBooking: invalid time range %s - %s", booking.StartTime, booking.EndTime)
			return ErrInvalidTimeRange
		}

		// 2.6. Интервал снова занимает слот: проверяем пересечения, исключая само бронирование
		reactivated := !isBlocking(previousStatus) && booking.IsActive()
		if booking.IsActive() && (timesChanged || reactivated) {
			if err := uc.bookingRepo.LockVenue(txCtx, booking.VenueID); err != nil {
				uc.logger.Error("UpdateBooking: failed to lock venue id=%d: %v", booking.VenueID, err)
				return fmt.Errorf("%w: failed to lock venue: %w", ErrInternal, err)
			}

			overlap, err := uc.bookingRepo.HasOverlap(txCtx, booking.VenueID, booking.StartTime, booking.EndTime, &booking.ID)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to check overlap for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
			}
			if overlap {
				uc.logger.Warn("UpdateBooking: slot not available for booking id=%d", booking.ID)
				return ErrSlotNotAvailable
			}
		}

		// 2.7. Пересчет цены
		if timesChanged || req.TotalPrice != nil {
			venue, err := uc.venueRepo.GetByID(txCtx, booking.VenueKind, booking.VenueID)
			if err != nil {
				if errors.Is(err, venueRepo.ErrVenueNotFound) {
					uc.logger.Warn("UpdateBooking: venue %s id=%d not found", booking.VenueKind, booking.VenueID)
					return ErrVenueNotFound
				}
				uc.logger.Error("UpdateBooking: failed to get venue id=%d: %v", booking.VenueID, err)
				return fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
			}

			if req.TotalPrice != nil {
				if _, err := domain.CheckPrice(booking.StartTime, booking.EndTime, venue.HourlyRate, *req.TotalPrice); err != nil {
					uc.logger.Warn("UpdateBooking: booking id=%d: %v", booking.ID, err)
					return err
				}
				booking.TotalPrice = *req.TotalPrice
			} else {
				booking.TotalPrice = domain.CalculatePrice(booking.StartTime, booking.EndTime, venue.HourlyRate)
			}
		}

		// 2.8. Сохраняем
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		confirmed = previousStatus != domain.BookingConfirmed && booking.Status == domain.BookingConfirmed
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	if confirmed {
		if err := uc.events.Publish(ctx, events.BookingConfirmed(result)); err != nil {
			uc.logger.Warn("UpdateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
		}
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, status=%s", result.ID, result.Status)
	return models.FromDomainBooking(result), nil
}

func isBlocking(status domain.BookingStatus) bool {
	for _, s := range domain.BlockingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
