package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
)

// UseCase use case для получения расписания площадки на день
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SlotMinutes == 0 {
		req.SlotMinutes = DefaultSlotMinutes
	}

	uc.logger.Info("GetAvailableSlots: venue=%s/%d, date=%s, slot=%dm",
		req.VenueKind, req.VenueID, req.Date.Format(domain.DateFormat), req.SlotMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueKind, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailableSlots: venue %s id=%d not found", req.VenueKind, req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
	}

	// 4. Генерируем временные слоты
	slots := generateTimeSlots(req.Date, req.SlotMinutes, now)

	// 5. Получаем активные бронирования за сутки
	dayStart := startOfDay(req.Date)
	bookings, err := uc.bookingRepo.ListActiveInRange(ctx, venue.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for venue id=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 6. Отмечаем занятые слоты
	slots = markAvailability(slots, bookings, venue.HourlyRate)

	uc.logger.Info("GetAvailableSlots: venue id=%d, %d slots, %d bookings", venue.ID, len(slots), len(bookings))

	return &Response{
		Date:       dayStart,
		VenueKind:  venue.Kind,
		VenueID:    venue.ID,
		HourlyRate: venue.HourlyRate,
		Slots:      slots,
	}, nil
}
