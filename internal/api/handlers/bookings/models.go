package bookings

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	createBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/create_booking"
	updateBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/update_booking"
)

// CreateBookingRequest HTTP запрос на бронирование. Задается ровно одно из studioId/jamPadId
type CreateBookingRequest struct {
	StudioID   *int64    `json:"studioId,omitempty" validate:"omitempty,gt=0"`
	JamPadID   *int64    `json:"jamPadId,omitempty" validate:"omitempty,gt=0"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required"`
	TotalPrice float64   `json:"totalPrice" validate:"gte=0"`
	Notes      *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// UpdateBookingRequest HTTP запрос частичного обновления
type UpdateBookingRequest struct {
	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	TotalPrice *float64   `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	Status     *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// hasSingleVenue ровно одна площадка
func (r *CreateBookingRequest) hasSingleVenue() bool {
	return (r.StudioID != nil) != (r.JamPadID != nil)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	req := &createBooking.Request{
		UserID:     userID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		TotalPrice: r.TotalPrice,
		Notes:      r.Notes,
	}
	if r.StudioID != nil {
		req.VenueKind = domain.VenueStudio
		req.VenueID = *r.StudioID
	} else if r.JamPadID != nil {
		req.VenueKind = domain.VenueJamPad
		req.VenueID = *r.JamPadID
	}
	return req
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *updateBooking.Request {
	req := &updateBooking.Request{
		Actor:      actor,
		BookingID:  bookingID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		TotalPrice: r.TotalPrice,
		Notes:      r.Notes,
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		req.Status = &status
	}
	return req
}
