package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	profileRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/profile"
	userRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/user"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
	"github.com/m04kA/SMC-SoundInkube/pkg/ptr"
)

type memProfiles map[int64]*domain.Profile

func (m memProfiles) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, ok := m[userID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memProfiles) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	cp := *p
	m[p.UserID] = &cp
	return p, nil
}

type memUsers map[int64]*domain.User

func (m memUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

var (
	musician = domain.Actor{UserID: 10, Role: domain.RoleMusicProfessional}
	other    = domain.Actor{UserID: 11, Role: domain.RoleClient}
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func newService() (*Service, memProfiles) {
	profiles := memProfiles{}
	users := memUsers{
		10: {ID: 10, Name: "Sam", Role: domain.RoleMusicProfessional},
		11: {ID: 11, Name: "Kim", Role: domain.RoleClient},
	}
	return NewService(profiles, users, logger.NewDiscard()), profiles
}

func TestReplaceAndGet(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Get(ctx, musician, 10)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	resp, err := svc.Replace(ctx, musician, 10, &models.ProfileRequest{
		Bio:         ptr.Ptr("Session drummer"),
		Specialties: []string{"drums"},
		SocialLinks: map[string]string{"site": "https://example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", resp.Name)

	got, err := svc.Get(ctx, musician, 10)
	require.NoError(t, err)
	assert.Equal(t, "Session drummer", got.Bio)
	assert.Equal(t, []string{"drums"}, got.Specialties)
}

func TestPatch_KeepsOtherFields(t *testing.T) {
	svc, profiles := newService()
	ctx := context.Background()
	profiles[10] = &domain.Profile{UserID: 10, Bio: "old", Specialties: []string{"bass"}}

	resp, err := svc.Patch(ctx, musician, 10, &models.ProfileRequest{HourlyRate: ptr.Ptr(40.0)})
	require.NoError(t, err)
	assert.Equal(t, "old", resp.Bio)
	assert.Equal(t, []string{"bass"}, resp.Specialties)
	require.NotNil(t, resp.HourlyRate)
	assert.Equal(t, 40.0, *resp.HourlyRate)
}

func TestAccess_OwnerOrAdmin(t *testing.T) {
	svc, profiles := newService()
	ctx := context.Background()
	profiles[10] = &domain.Profile{UserID: 10, Bio: "mine"}

	_, err := svc.Get(ctx, other, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Patch(ctx, other, 10, &models.ProfileRequest{Bio: ptr.Ptr("hacked")})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, "mine", profiles[10].Bio)

	_, err = svc.Patch(ctx, admin, 10, &models.ProfileRequest{Bio: ptr.Ptr("moderated")})
	require.NoError(t, err)
	assert.Equal(t, "moderated", profiles[10].Bio)

	_, err = svc.Replace(ctx, admin, 99, &models.ProfileRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReplace_NegativeRate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Replace(context.Background(), musician, 10, &models.ProfileRequest{HourlyRate: ptr.Ptr(-5.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
