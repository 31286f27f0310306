package schools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	enrollmentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/enrollment"
	schoolRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/school"
	"github.com/m04kA/SMC-SoundInkube/internal/service/schools/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memSchools map[int64]*domain.MusicSchool

func (m memSchools) Create(ctx context.Context, school *domain.MusicSchool) (*domain.MusicSchool, error) {
	school.ID = int64(len(m) + 1)
	m[school.ID] = school
	return school, nil
}

func (m memSchools) GetByID(ctx context.Context, id int64) (*domain.MusicSchool, error) {
	s, ok := m[id]
	if !ok {
		return nil, schoolRepo.ErrSchoolNotFound
	}
	return s, nil
}

func (m memSchools) List(ctx context.Context, filter domain.SchoolFilter) ([]*domain.MusicSchool, error) {
	out := make([]*domain.MusicSchool, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out, nil
}

type memEnrollments map[int64]*domain.Enrollment

func (m memEnrollments) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	e.ID = int64(len(m) + 1)
	m[e.ID] = e
	return e, nil
}

func (m memEnrollments) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	e, ok := m[id]
	if !ok {
		return nil, enrollmentRepo.ErrEnrollmentNotFound
	}
	cp := *e
	return &cp, nil
}

func (m memEnrollments) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range m {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m memEnrollments) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error {
	m[id].Status = status
	return nil
}

func TestCreate_OnlyBusinessOrAdmin(t *testing.T) {
	svc := NewService(memSchools{}, memEnrollments{}, logger.NewDiscard())
	ctx := context.Background()
	req := &models.CreateSchoolRequest{Name: "Jazz School", CourseFee: 300}

	_, err := svc.Create(ctx, domain.Actor{UserID: 5, Role: domain.RoleStudioOwner}, req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Create(ctx, domain.Actor{UserID: 6, Role: domain.RoleBusiness}, req)
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.OwnerID)
}

func TestEnroll_PriceFromCourseFee(t *testing.T) {
	schools := memSchools{1: {ID: 1, OwnerID: 6, CourseFee: 300}}
	enrollments := memEnrollments{}
	svc := NewService(schools, enrollments, logger.NewDiscard())

	resp, err := svc.Enroll(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleClient}, 1)
	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.Price)
	assert.Equal(t, string(domain.EnrollmentPending), resp.Status)

	_, err = svc.Enroll(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleClient}, 2)
	assert.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestUpdateEnrollmentStatus(t *testing.T) {
	enrollments := memEnrollments{
		1: {ID: 1, SchoolID: 1, UserID: 10, SchoolOwnerID: 6, Status: domain.EnrollmentConfirmed},
		2: {ID: 2, SchoolID: 1, UserID: 10, SchoolOwnerID: 6, Status: domain.EnrollmentCompleted},
	}
	svc := NewService(memSchools{}, enrollments, logger.NewDiscard())
	ctx := context.Background()

	_, err := svc.UpdateEnrollmentStatus(ctx, domain.Actor{UserID: 10, Role: domain.RoleClient}, 1, domain.EnrollmentCompleted)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.UpdateEnrollmentStatus(ctx, domain.Actor{UserID: 6, Role: domain.RoleBusiness}, 1, domain.EnrollmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(domain.EnrollmentCompleted), resp.Status)

	_, err = svc.UpdateEnrollmentStatus(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 2, domain.EnrollmentCancelled)
	assert.ErrorIs(t, err, ErrEnrollmentFinal)

	_, err = svc.UpdateEnrollmentStatus(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1, "UNKNOWN")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateEnrollmentStatus(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 9, domain.EnrollmentCancelled)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestListMyEnrollments(t *testing.T) {
	enrollments := memEnrollments{
		1: {ID: 1, UserID: 10},
		2: {ID: 2, UserID: 11},
	}
	svc := NewService(memSchools{}, enrollments, logger.NewDiscard())

	resp, err := svc.ListMyEnrollments(context.Background(), domain.Actor{UserID: 10}, domain.Page{})
	require.NoError(t, err)
	require.Len(t, resp.Enrollments, 1)
	assert.Equal(t, int64(1), resp.Enrollments[0].ID)
}
