package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memBookings struct {
	items     []*domain.Booking
	locked    []int64
	createErr error
}

func (m *memBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	b.ID = int64(len(m.items) + 1)
	cp := *b
	m.items = append(m.items, &cp)
	return b, nil
}

func (m *memBookings) LockVenue(ctx context.Context, venueID int64) error {
	m.locked = append(m.locked, venueID)
	return nil
}

func (m *memBookings) HasOverlap(ctx context.Context, venueID int64, start, end time.Time, excludeID *int64) (bool, error) {
	for _, b := range m.items {
		if b.VenueID != venueID || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

type memVenues map[int64]*domain.Venue

func (m memVenues) GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*domain.Venue, error) {
	v, ok := m[id]
	if !ok || v.Kind != kind {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type noopTx struct{}

func (noopTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopEvents struct {
	count int
}

func (n *nopEvents) Publish(ctx context.Context, event events.Event) error {
	n.count++
	return nil
}

type nopMetrics struct{}

func (nopMetrics) IncEvent(string) {}

func at(hour int) time.Time {
	return time.Date(2025, 11, 3, hour, 0, 0, 0, time.UTC)
}

func newUseCase() (*UseCase, *memBookings, *nopEvents) {
	bookings := &memBookings{}
	venues := memVenues{
		1: {ID: 1, Kind: domain.VenueStudio, OwnerID: 50, HourlyRate: 50},
		2: {ID: 2, Kind: domain.VenueJamPad, OwnerID: 51, HourlyRate: 30},
	}
	publisher := &nopEvents{}
	uc := NewUseCase(bookings, venues, noopTx{}, publisher, nopMetrics{}, logger.NewDiscard())
	return uc, bookings, publisher
}

func request(start, end int, price float64) *Request {
	return &Request{
		UserID:     10,
		VenueKind:  domain.VenueStudio,
		VenueID:    1,
		StartTime:  at(start),
		EndTime:    at(end),
		TotalPrice: price,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc, bookings, publisher := newUseCase()

	resp, err := uc.Execute(context.Background(), request(10, 12, 100))

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingPending), resp.Status)
	assert.Equal(t, 100.0, resp.TotalPrice)
	require.NotNil(t, resp.StudioID)
	assert.Equal(t, int64(1), *resp.StudioID)
	assert.Equal(t, []int64{1}, bookings.locked)
	assert.Equal(t, 1, publisher.count)
}

func TestExecute_OverlapRejectedAdjacentAccepted(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(10, 12, 100))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, request(11, 13, 100))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = uc.Execute(ctx, request(12, 14, 100))
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	uc, bookings, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(10, 12, 100))
	require.NoError(t, err)
	bookings.items[0].Status = domain.BookingCancelled

	_, err = uc.Execute(ctx, request(10, 12, 100))
	assert.NoError(t, err)
}

func TestExecute_PriceTolerance(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(10, 12, 100.5))
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, request(14, 16, 102))
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)

	var mismatch *domain.PriceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.InDelta(t, 100.0, mismatch.Calculated, 1e-9)
	assert.InDelta(t, 102.0, mismatch.Provided, 1e-9)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc, bookings, _ := newUseCase()

	req := request(10, 12, 100)
	req.VenueID = 99
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	// Джем-пад нельзя забронировать как студию
	req = request(10, 12, 60)
	req.VenueID = 2
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	// Блокировка берется до чтения площадки
	assert.Equal(t, []int64{99, 2}, bookings.locked)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc, bookings, _ := newUseCase()

	_, err := uc.Execute(context.Background(), request(12, 12, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = uc.Execute(context.Background(), request(13, 12, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	assert.Empty(t, bookings.items)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newUseCase()

	req := request(10, 12, 100)
	req.VenueKind = "HALL"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request(10, 12, -1)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OtherVenueDoesNotConflict(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, request(10, 12, 100))
	require.NoError(t, err)

	req := request(10, 12, 60)
	req.VenueKind = domain.VenueJamPad
	req.VenueID = 2
	_, err = uc.Execute(ctx, req)
	assert.NoError(t, err)
}

func TestExecute_KeepsDriverErrorInChain(t *testing.T) {
	uc, bookings, publisher := newUseCase()
	bookings.createErr = fmt.Errorf("%w: Create - execute insert: %w",
		bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})

	_, err := uc.Execute(context.Background(), request(10, 12, 100))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
	assert.Zero(t, publisher.count)
}
