package schools

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// SchoolRepository интерфейс репозитория школ
type SchoolRepository interface {
	Create(ctx context.Context, school *domain.MusicSchool) (*domain.MusicSchool, error)
	GetByID(ctx context.Context, id int64) (*domain.MusicSchool, error)
	List(ctx context.Context, filter domain.SchoolFilter) ([]*domain.MusicSchool, error)
}

// EnrollmentRepository интерфейс репозитория записей в школы
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
