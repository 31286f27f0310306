package schools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	enrollmentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/enrollment"
	schoolRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/school"
	"github.com/m04kA/SMC-SoundInkube/internal/service/schools/models"
)

// Service сервис музыкальных школ и записей в них
type Service struct {
	schoolRepo     SchoolRepository
	enrollmentRepo EnrollmentRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса школ
func NewService(schoolRepo SchoolRepository, enrollmentRepo EnrollmentRepository, logger Logger) *Service {
	return &Service{
		schoolRepo:     schoolRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// Create создает школу (BUSINESS или ADMIN)
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateSchoolRequest) (*models.SchoolResponse, error) {
	s.logger.Info("Create: school by user=%d", actor.UserID)

	if !actor.HasRole(domain.RoleBusiness, domain.RoleAdmin) {
		s.logger.Warn("Create: role %s cannot create school", actor.Role)
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(req.Name) == "" || req.CourseFee < 0 {
		return nil, fmt.Errorf("%w: name is required and course fee must be non-negative", ErrInvalidInput)
	}

	school, err := s.schoolRepo.Create(ctx, &domain.MusicSchool{
		OwnerID:     actor.UserID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CourseFee:   req.CourseFee,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created school id=%d", school.ID)
	return models.FromDomainSchool(school), nil
}

// GetByID возвращает школу
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SchoolResponse, error) {
	school, err := s.getSchool(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainSchool(school), nil
}

// List возвращает каталог школ
func (s *Service) List(ctx context.Context, req *models.ListSchoolsRequest) (*models.SchoolListResponse, error) {
	page := req.Page.Normalize()

	schools, err := s.schoolRepo.List(ctx, domain.SchoolFilter{Location: req.Location, Page: page})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchoolList(schools, page), nil
}

// Enroll записывает вызывающего в школу. Цена фиксируется по текущей стоимости курса
func (s *Service) Enroll(ctx context.Context, actor domain.Actor, schoolID int64) (*models.EnrollmentResponse, error) {
	s.logger.Info("Enroll: user=%d to school id=%d", actor.UserID, schoolID)

	school, err := s.getSchool(ctx, schoolID, "Enroll")
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.Create(ctx, &domain.Enrollment{
		SchoolID: school.ID,
		UserID:   actor.UserID,
		Price:    school.CourseFee,
		Status:   domain.EnrollmentPending,
	})
	if err != nil {
		s.logger.Error("Enroll: repository error: %v", err)
		return nil, fmt.Errorf("%w: Enroll - repository error: %w", ErrInternal, err)
	}
	enrollment.SchoolOwnerID = school.OwnerID

	s.logger.Info("Enroll: successfully created enrollment id=%d", enrollment.ID)
	return models.FromDomainEnrollment(enrollment), nil
}

// ListMyEnrollments записи вызывающего
func (s *Service) ListMyEnrollments(ctx context.Context, actor domain.Actor, page domain.Page) (*models.EnrollmentListResponse, error) {
	page = page.Normalize()

	enrollments, err := s.enrollmentRepo.ListByUser(ctx, actor.UserID, page)
	if err != nil {
		s.logger.Error("ListMyEnrollments: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: ListMyEnrollments - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainEnrollmentList(enrollments, page), nil
}

// UpdateEnrollmentStatus меняет статус записи (владелец школы или администратор).
// COMPLETED - конечный статус
func (s *Service) UpdateEnrollmentStatus(ctx context.Context, actor domain.Actor, id int64, status domain.EnrollmentStatus) (*models.EnrollmentResponse, error) {
	s.logger.Info("UpdateEnrollmentStatus: enrollment id=%d to %s by user=%d", id, status, actor.UserID)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
			s.logger.Warn("UpdateEnrollmentStatus: enrollment id=%d not found", id)
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("UpdateEnrollmentStatus: repository error for enrollment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateEnrollmentStatus - repository error: %w", ErrInternal, err)
	}

	if !actor.IsAdmin() && actor.UserID != enrollment.SchoolOwnerID {
		s.logger.Warn("UpdateEnrollmentStatus: access denied for user=%d to enrollment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if enrollment.Status == domain.EnrollmentCompleted && status != domain.EnrollmentCompleted {
		s.logger.Warn("UpdateEnrollmentStatus: enrollment id=%d is completed", id)
		return nil, ErrEnrollmentFinal
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("UpdateEnrollmentStatus: repository error for enrollment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateEnrollmentStatus - repository error: %w", ErrInternal, err)
	}
	enrollment.Status = status

	s.logger.Info("UpdateEnrollmentStatus: enrollment id=%d is now %s", id, status)
	return models.FromDomainEnrollment(enrollment), nil
}

func (s *Service) getSchool(ctx context.Context, id int64, op string) (*domain.MusicSchool, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, schoolRepo.ErrSchoolNotFound) {
			s.logger.Warn("%s: school id=%d not found", op, id)
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("%s: repository error for school id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return school, nil
}
