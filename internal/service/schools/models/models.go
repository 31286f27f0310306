package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// CreateSchoolRequest запрос на создание школы
type CreateSchoolRequest struct {
	Name        string
	Description string
	Location    string
	CourseFee   float64
}

// ListSchoolsRequest запрос каталога школ
type ListSchoolsRequest struct {
	Location *string
	Page     domain.Page
}

// Response модели

// SchoolResponse ответ с данными школы
type SchoolResponse struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"ownerId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	CourseFee     float64   `json:"courseFee"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SchoolListResponse ответ со списком школ
type SchoolListResponse struct {
	Schools []SchoolResponse `json:"schools"`
	Skip    int              `json:"skip"`
	Take    int              `json:"take"`
}

// EnrollmentResponse ответ с данными записи
type EnrollmentResponse struct {
	ID        int64     `json:"id"`
	SchoolID  int64     `json:"schoolId"`
	UserID    int64     `json:"userId"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrollmentListResponse ответ со списком записей
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Skip        int                  `json:"skip"`
	Take        int                  `json:"take"`
}

// FromDomainSchool конвертирует domain модель в DTO
func FromDomainSchool(s *domain.MusicSchool) *SchoolResponse {
	if s == nil {
		return nil
	}
	return &SchoolResponse{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		Name:          s.Name,
		Description:   s.Description,
		Location:      s.Location,
		CourseFee:     s.CourseFee,
		AverageRating: s.AverageRating,
		TotalReviews:  s.TotalReviews,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSchoolList конвертирует список школ
func FromDomainSchoolList(schools []*domain.MusicSchool, page domain.Page) *SchoolListResponse {
	resp := &SchoolListResponse{
		Schools: make([]SchoolResponse, 0, len(schools)),
		Skip:    page.Skip,
		Take:    page.Take,
	}
	for _, s := range schools {
		resp.Schools = append(resp.Schools, *FromDomainSchool(s))
	}
	return resp
}

// FromDomainEnrollment конвертирует domain модель в DTO
func FromDomainEnrollment(e *domain.Enrollment) *EnrollmentResponse {
	if e == nil {
		return nil
	}
	return &EnrollmentResponse{
		ID:        e.ID,
		SchoolID:  e.SchoolID,
		UserID:    e.UserID,
		Price:     e.Price,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromDomainEnrollmentList конвертирует список записей
func FromDomainEnrollmentList(enrollments []*domain.Enrollment, page domain.Page) *EnrollmentListResponse {
	resp := &EnrollmentListResponse{
		Enrollments: make([]EnrollmentResponse, 0, len(enrollments)),
		Skip:        page.Skip,
		Take:        page.Take,
	}
	for _, e := range enrollments {
		resp.Enrollments = append(resp.Enrollments, *FromDomainEnrollment(e))
	}
	return resp
}
