package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// validateRequest проверяет входные данные, не требующие обращения к БД
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if !req.VenueKind.IsValid() {
		return fmt.Errorf("%w: unknown venue kind %q", ErrInvalidInput, req.VenueKind)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}
	if req.TotalPrice < 0 {
		return fmt.Errorf("%w: total price must be non-negative", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return nil
}
