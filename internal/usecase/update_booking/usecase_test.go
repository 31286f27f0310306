package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
	"github.com/m04kA/SMC-SoundInkube/pkg/ptr"
)

const (
	clientID     = int64(10)
	venueOwnerID = int64(50)
	strangerID   = int64(77)
	adminID      = int64(1)
)

type memBookings struct {
	items map[int64]*domain.Booking
}

func (m *memBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) Update(ctx context.Context, booking *domain.Booking) error {
	cp := *booking
	m.items[booking.ID] = &cp
	return nil
}

func (m *memBookings) LockVenue(ctx context.Context, venueID int64) error { return nil }

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

type recordingEvents struct {
	types []string
}

func (r *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	r.types = append(r.types, event.Type)
	return nil
}

func at(hour int) time.Time {
	return time.Date(2025, 11, 3, hour, 0, 0, 0, time.UTC)
}

func booking(id int64, start, end int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		VenueKind:    domain.VenueStudio,
		VenueID:      1,
		UserID:       clientID,
		StartTime:    at(start),
		EndTime:      at(end),
		TotalPrice:   float64(end-start) * 50,
		Status:       status,
		VenueOwnerID: venueOwnerID,
	}
}

func setup(items ...*domain.Booking) (*UseCase, *memBookings, *recordingEvents) {
	repo := &memBookings{items: map[int64]*domain.Booking{}}
	for _, b := range items {
		repo.items[b.ID] = b
	}
	venues := memVenues{1: {ID: 1, Kind: domain.VenueStudio, OwnerID: venueOwnerID, HourlyRate: 50}}
	publisher := &recordingEvents{}
	return NewUseCase(repo, venues, noopTx{}, publisher, logger.NewDiscard()), repo, publisher
}

func client() domain.Actor { return domain.Actor{UserID: clientID, Role: domain.RoleClient} }
func owner() domain.Actor  { return domain.Actor{UserID: venueOwnerID, Role: domain.RoleStudioOwner} }
func admin() domain.Actor  { return domain.Actor{UserID: adminID, Role: domain.RoleAdmin} }

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := setup()

	_, err := uc.Execute(context.Background(), &Request{Actor: admin(), BookingID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_StrangerForbidden(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingPending))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{UserID: strangerID, Role: domain.RoleClient},
		BookingID: 1,
		Notes:     ptr.Ptr("hi"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ClientCannotChangeStatus(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingPending))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     client(),
		BookingID: 1,
		Status:    ptr.Ptr(domain.BookingConfirmed),
	})
	assert.ErrorIs(t, err, ErrStatusChangeDenied)
}

func TestExecute_VenueOwnerConfirms(t *testing.T) {
	uc, repo, publisher := setup(booking(1, 10, 12, domain.BookingPending))

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		Status:    ptr.Ptr(domain.BookingConfirmed),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.BookingConfirmed), resp.Status)
	assert.Equal(t, domain.BookingConfirmed, repo.items[1].Status)
	assert.Equal(t, []string{events.TypeBookingConfirmed}, publisher.types)
}

func TestExecute_CompletedCannotBeLeft(t *testing.T) {
	for _, actor := range []domain.Actor{owner(), admin()} {
		uc, _, _ := setup(booking(1, 10, 12, domain.BookingCompleted))

		_, err := uc.Execute(context.Background(), &Request{
			Actor:     actor,
			BookingID: 1,
			Status:    ptr.Ptr(domain.BookingCancelled),
		})
		assert.ErrorIs(t, err, ErrCompletedImmutable, "role %s", actor.Role)
	}
}

func TestExecute_CompletedTimesOwnerRejectedAdminAllowed(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingCompleted))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     client(),
		BookingID: 1,
		StartTime: ptr.Ptr(at(9)),
	})
	assert.ErrorIs(t, err, ErrCompletedImmutable)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     admin(),
		BookingID: 1,
		StartTime: ptr.Ptr(at(9)),
	})
	require.NoError(t, err)
	assert.Equal(t, at(9), resp.StartTime)
	assert.InDelta(t, 150.0, resp.TotalPrice, 1e-9)
	assert.Equal(t, string(domain.BookingCompleted), resp.Status)
}

func TestExecute_ConfirmedTimesRejectedForClient(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingConfirmed))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      client(),
		BookingID:  1,
		TotalPrice: ptr.Ptr(100.0),
	})
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_RescheduleChecksOverlapExcludingSelf(t *testing.T) {
	uc, _, _ := setup(
		booking(1, 10, 12, domain.BookingPending),
		booking(2, 14, 16, domain.BookingConfirmed),
	)
	ctx := context.Background()

	// Сдвиг внутри собственного интервала не конфликтует сам с собой
	resp, err := uc.Execute(ctx, &Request{Actor: client(), BookingID: 1, EndTime: ptr.Ptr(at(13))})
	require.NoError(t, err)
	assert.InDelta(t, 150.0, resp.TotalPrice, 1e-9)

	_, err = uc.Execute(ctx, &Request{Actor: client(), BookingID: 1, EndTime: ptr.Ptr(at(15))})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Соприкосновение допустимо
	_, err = uc.Execute(ctx, &Request{Actor: client(), BookingID: 1, EndTime: ptr.Ptr(at(14))})
	assert.NoError(t, err)
}

func TestExecute_SuppliedPriceTolerance(t *testing.T) {
	uc, repo, _ := setup(booking(1, 10, 12, domain.BookingPending))
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		Actor:      client(),
		BookingID:  1,
		EndTime:    ptr.Ptr(at(13)),
		TotalPrice: ptr.Ptr(160.0),
	})
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)
	assert.Equal(t, at(12), repo.items[1].EndTime)

	resp, err := uc.Execute(ctx, &Request{
		Actor:      client(),
		BookingID:  1,
		EndTime:    ptr.Ptr(at(13)),
		TotalPrice: ptr.Ptr(150.5),
	})
	require.NoError(t, err)
	assert.InDelta(t, 150.5, resp.TotalPrice, 1e-9)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingPending))

	_, err := uc.Execute(context.Background(), &Request{Actor: client(), BookingID: 1, StartTime: ptr.Ptr(at(12))})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_ReactivationChecksOverlap(t *testing.T) {
	uc, _, _ := setup(
		booking(1, 10, 12, domain.BookingCancelled),
		booking(2, 11, 13, domain.BookingPending),
	)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     owner(),
		BookingID: 1,
		Status:    ptr.Ptr(domain.BookingPending),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InvalidStatus(t *testing.T) {
	uc, _, _ := setup(booking(1, 10, 12, domain.BookingPending))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     admin(),
		BookingID: 1,
		Status:    ptr.Ptr(domain.BookingStatus("DONE")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CompletedNotesOnlyByAdmin(t *testing.T) {
	for _, actor := range []domain.Actor{client(), owner()} {
		uc, repo, _ := setup(booking(1, 10, 12, domain.BookingCompleted))

		_, err := uc.Execute(context.Background(), &Request{
			Actor:     actor,
			BookingID: 1,
			Notes:     ptr.Ptr("late note"),
		})
		assert.ErrorIs(t, err, ErrCompletedImmutable, "role %s", actor.Role)
		assert.Nil(t, repo.items[1].Notes, "role %s", actor.Role)
	}

	uc, repo, _ := setup(booking(1, 10, 12, domain.BookingCompleted))
	_, err := uc.Execute(context.Background(), &Request{
		Actor:     admin(),
		BookingID: 1,
		Notes:     ptr.Ptr("late note"),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.items[1].Notes)
	assert.Equal(t, "late note", *repo.items[1].Notes)
}
