package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// ListBookingsRequest запрос списка бронирований
type ListBookingsRequest struct {
	Actor     domain.Actor
	VenueKind *domain.VenueKind
	Status    *domain.BookingStatus
	Page      domain.Page
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	VenueType string `json:"venueType"`
	VenueID   int64  `json:"venueId"`
	// Дублируем id площадки в поле, соответствующем её типу
	StudioID   *int64    `json:"studioId,omitempty"`
	JamPadID   *int64    `json:"jamPadId,omitempty"`
	UserID     int64     `json:"userId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Skip     int               `json:"skip"`
	Take     int               `json:"take"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		VenueType:  string(b.VenueKind),
		VenueID:    b.VenueID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	venueID := b.VenueID
	switch b.VenueKind {
	case domain.VenueStudio:
		resp.StudioID = &venueID
	case domain.VenueJamPad:
		resp.JamPadID = &venueID
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, page domain.Page) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Skip:     page.Skip,
		Take:     page.Take,
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
