package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.VenueKind.IsValid() {
		return fmt.Errorf("%w: unknown venue kind %q", ErrInvalidInput, req.VenueKind)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotMinutes < MinSlotMinutes || req.SlotMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slot must be %d..%d minutes", ErrInvalidInput, MinSlotMinutes, MaxSlotMinutes)
	}

	// Слоты должны ровно покрывать сутки
	if (24*60)%req.SlotMinutes != 0 {
		return fmt.Errorf("%w: slot of %d minutes does not divide a day", ErrInvalidInput, req.SlotMinutes)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше MaxAdvanceDays
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	maxDate := startOfDay(now).AddDate(0, 0, MaxAdvanceDays)
	if startOfDay(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only look %d days ahead", ErrDateTooFarInFuture, MaxAdvanceDays)
	}

	return nil
}
