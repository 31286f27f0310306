package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
	"github.com/m04kA/SMC-SoundInkube/pkg/ptr"
)

type mockRepo struct {
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Booking, error)
	ListFunc             func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	DeleteFunc           func(ctx context.Context, id int64) error
	CompleteFinishedFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepo) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepo) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	return m.CompleteFinishedFunc(ctx, now)
}

func stored(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:           7,
		VenueKind:    domain.VenueJamPad,
		VenueID:      3,
		UserID:       10,
		VenueOwnerID: 50,
		Status:       status,
	}
}

func findBooking(b *domain.Booking) func(ctx context.Context, id int64) (*domain.Booking, error) {
	return func(ctx context.Context, id int64) (*domain.Booking, error) {
		if id != b.ID {
			return nil, bookingRepo.ErrBookingNotFound
		}
		return b, nil
	}
}

func TestGetByID_Visibility(t *testing.T) {
	repo := &mockRepo{GetByIDFunc: findBooking(stored(domain.BookingPending))}
	svc := NewService(repo, logger.NewDiscard())
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 7, domain.Actor{UserID: 10, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "JAMPAD", resp.VenueType)
	require.NotNil(t, resp.JamPadID)
	assert.Nil(t, resp.StudioID)

	_, err = svc.GetByID(ctx, 7, domain.Actor{UserID: 50, Role: domain.RoleStudioOwner})
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 7, domain.Actor{UserID: 99, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 7, domain.Actor{UserID: 99, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 8, domain.Actor{UserID: 10, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_FilterByRole(t *testing.T) {
	var got domain.BookingFilter
	repo := &mockRepo{ListFunc: func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
		got = filter
		return []*domain.Booking{stored(domain.BookingPending)}, nil
	}}
	svc := NewService(repo, logger.NewDiscard())
	ctx := context.Background()

	resp, err := svc.List(ctx, &models.ListBookingsRequest{Actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin}})
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.VenueOwnerID)
	assert.Equal(t, domain.DefaultTake, resp.Take)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.List(ctx, &models.ListBookingsRequest{
		Actor: domain.Actor{UserID: 50, Role: domain.RoleStudioOwner},
		Page:  domain.Page{Skip: 5, Take: 500},
	})
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	require.NotNil(t, got.VenueOwnerID)
	assert.Equal(t, int64(50), *got.VenueOwnerID)
	assert.Equal(t, domain.MaxTake, got.Page.Take)
	assert.Equal(t, 5, got.Page.Skip)

	_, err = svc.List(ctx, &models.ListBookingsRequest{Actor: domain.Actor{UserID: 10, Role: domain.RoleClient}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), *got.UserID)
	assert.Nil(t, got.VenueOwnerID)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := NewService(&mockRepo{}, logger.NewDiscard())

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Actor:  domain.Actor{UserID: 10, Role: domain.RoleClient},
		Status: ptr.Ptr(domain.BookingStatus("LOST")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		actor   domain.Actor
		wantErr error
		deleted bool
	}{
		{"client removes pending", domain.BookingPending, domain.Actor{UserID: 10, Role: domain.RoleClient}, nil, true},
		{"venue owner removes confirmed", domain.BookingConfirmed, domain.Actor{UserID: 50, Role: domain.RoleStudioOwner}, nil, true},
		{"stranger forbidden", domain.BookingPending, domain.Actor{UserID: 99, Role: domain.RoleClient}, ErrAccessDenied, false},
		{"client cannot remove completed", domain.BookingCompleted, domain.Actor{UserID: 10, Role: domain.RoleClient}, ErrCompletedImmutable, false},
		{"admin removes completed", domain.BookingCompleted, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &mockRepo{
				GetByIDFunc: findBooking(stored(tt.status)),
				DeleteFunc: func(ctx context.Context, id int64) error {
					deleted = true
					return nil
				},
			}
			svc := NewService(repo, logger.NewDiscard())

			err := svc.Remove(context.Background(), 7, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.deleted, deleted)
		})
	}
}

func TestCompleteFinished(t *testing.T) {
	now := time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)
	repo := &mockRepo{CompleteFinishedFunc: func(ctx context.Context, ts time.Time) (int64, error) {
		assert.Equal(t, now, ts)
		return 3, nil
	}}
	svc := NewService(repo, logger.NewDiscard())
	svc.now = func() time.Time { return now }

	count, err := svc.CompleteFinished(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	repo.CompleteFinishedFunc = func(ctx context.Context, ts time.Time) (int64, error) {
		return 0, errors.New("db down")
	}
	_, err = svc.CompleteFinished(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
