package schools

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/schools/models"
)

type SchoolService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateSchoolRequest) (*models.SchoolResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SchoolResponse, error)
	List(ctx context.Context, req *models.ListSchoolsRequest) (*models.SchoolListResponse, error)
	Enroll(ctx context.Context, actor domain.Actor, schoolID int64) (*models.EnrollmentResponse, error)
	ListMyEnrollments(ctx context.Context, actor domain.Actor, page domain.Page) (*models.EnrollmentListResponse, error)
	UpdateEnrollmentStatus(ctx context.Context, actor domain.Actor, id int64, status domain.EnrollmentStatus) (*models.EnrollmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
