package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memBookings []*domain.Booking

func (m memBookings) ListActiveInRange(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range m {
		if b.VenueID == venueID && b.IsActive() && domain.Overlaps(b.StartTime, b.EndTime, from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

type memVenues map[int64]*domain.Venue

func (m memVenues) GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*domain.Venue, error) {
	v, ok := m[id]
	if !ok || v.Kind != kind {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

func day(d, hour, minute int) time.Time {
	return time.Date(2025, 11, d, hour, minute, 0, 0, time.UTC)
}

func newUseCase(now time.Time, bookings memBookings) *UseCase {
	venues := memVenues{
		1: {ID: 1, Kind: domain.VenueStudio, OwnerID: 50, HourlyRate: 40},
	}
	uc := NewUseCase(bookings, venues, logger.NewDiscard())
	uc.timeProvider = fixedTime(now)
	return uc
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	bookings := memBookings{
		{ID: 1, VenueID: 1, StartTime: day(4, 10, 0), EndTime: day(4, 12, 0), Status: domain.BookingConfirmed},
		{ID: 2, VenueID: 1, StartTime: day(4, 14, 30), EndTime: day(4, 15, 0), Status: domain.BookingPending},
		{ID: 3, VenueID: 1, StartTime: day(4, 16, 0), EndTime: day(4, 17, 0), Status: domain.BookingCancelled},
	}
	uc := newUseCase(day(3, 9, 0), bookings)

	resp, err := uc.Execute(context.Background(), &Request{VenueKind: domain.VenueStudio, VenueID: 1, Date: day(4, 0, 0)})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 24)
	assert.Equal(t, 40.0, resp.HourlyRate)

	busy := map[int]bool{}
	for _, s := range resp.Slots {
		assert.Equal(t, 40.0, s.Price)
		if !s.Available {
			busy[s.StartTime.Hour()] = true
		}
	}
	// 10-12 занято, 14:30-15:00 задевает слот 14-15, отмененное бронирование не учитывается
	assert.Equal(t, map[int]bool{10: true, 11: true, 14: true}, busy)
}

func TestExecute_TodaySkipsStartedSlots(t *testing.T) {
	uc := newUseCase(day(4, 20, 15), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		VenueKind:   domain.VenueStudio,
		VenueID:     1,
		Date:        day(4, 0, 0),
		SlotMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 7)
	assert.Equal(t, day(4, 20, 30), resp.Slots[0].StartTime)
	assert.Equal(t, 20.0, resp.Slots[0].Price)
}

func TestExecute_Errors(t *testing.T) {
	now := day(4, 9, 0)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"past date", &Request{VenueKind: domain.VenueStudio, VenueID: 1, Date: day(3, 0, 0)}, ErrInvalidDate},
		{"too far", &Request{VenueKind: domain.VenueStudio, VenueID: 1, Date: now.AddDate(0, 0, MaxAdvanceDays+1)}, ErrDateTooFarInFuture},
		{"slot does not divide a day", &Request{VenueKind: domain.VenueStudio, VenueID: 1, Date: now, SlotMinutes: 50}, ErrInvalidInput},
		{"slot too short", &Request{VenueKind: domain.VenueStudio, VenueID: 1, Date: now, SlotMinutes: 5}, ErrInvalidInput},
		{"wrong kind", &Request{VenueKind: domain.VenueJamPad, VenueID: 1, Date: now}, ErrVenueNotFound},
		{"missing venue", &Request{VenueKind: domain.VenueStudio, VenueID: 9, Date: now}, ErrVenueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(now, nil)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
