package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	txManager   TransactionManager
	events      EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		txManager:   txManager,
		events:      publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и запись выполняются в сериализуемой транзакции под блокировкой площадки.
// Снимок проигравшего запроса снят до получения блокировки, поэтому он падает с serialization_failure
// и повторяется менеджером транзакций, а повтор уже видит занятый слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%s/%d, start=%s, end=%s, price=%.2f",
		req.UserID, req.VenueKind, req.VenueID, req.StartTime.Format("2006-01-02T15:04"), req.EndTime.Format("2006-01-02T15:04"), req.TotalPrice)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокировка площадки первым запросом транзакции
		if err := uc.bookingRepo.LockVenue(txCtx, req.VenueID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to lock venue: %w", ErrInternal, err)
		}

		// 2.2. Площадка должна существовать
		venue, err := uc.venueRepo.GetByID(txCtx, req.VenueKind, req.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				uc.logger.Warn("CreateBooking: venue %s id=%d not found", req.VenueKind, req.VenueID)
				return ErrVenueNotFound
			}
			uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
			return fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
		}

		// 2.3. Начало строго раньше конца
		if !domain.ValidTimeRange(req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateBooking: invalid time range %s - %s", req.StartTime, req.EndTime)
			return ErrInvalidTimeRange
		}

		// 2.4. Интервал не должен пересекаться с активными бронированиями
		overlap, err := uc.bookingRepo.HasOverlap(txCtx, venue.ID, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlap for venue id=%d: %v", venue.ID, err)
			return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
		}
		if overlap {
			uc.logger.Warn("CreateBooking: slot not available on venue id=%d", venue.ID)
			return ErrSlotNotAvailable
		}

		// 2.5. Цена клиента должна совпадать с расчетной в пределах допуска
		if _, err := domain.CheckPrice(req.StartTime, req.EndTime, venue.HourlyRate, req.TotalPrice); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 2.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			VenueKind:  req.VenueKind,
			VenueID:    venue.ID,
			UserID:     req.UserID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			TotalPrice: req.TotalPrice,
			Status:     domain.BookingPending,
			Notes:      req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		created.VenueOwnerID = venue.OwnerID
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncEvent("booking_created")
	if err := uc.events.Publish(ctx, events.BookingCreated(result)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return models.FromDomainBooking(result), nil
}
