package domain

import "time"

// MusicSchool музыкальная школа
type MusicSchool struct {
	ID            int64
	OwnerID       int64
	Name          string
	Description   string
	Location      string
	CourseFee     float64
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *MusicSchool) OwnerIDs() []int64 {
	return []int64{s.OwnerID}
}

func (s *MusicSchool) IsPublic() bool {
	return true
}

// EnrollmentStatus статус записи в школу
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentConfirmed EnrollmentStatus = "CONFIRMED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentPending, EnrollmentConfirmed, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

// Enrollment запись ученика в школу
type Enrollment struct {
	ID       int64
	SchoolID int64
	UserID   int64
	Price    float64
	Status   EnrollmentStatus

	// Владелец школы (join)
	SchoolOwnerID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Enrollment) OwnerIDs() []int64 {
	return []int64{e.UserID, e.SchoolOwnerID}
}

// SchoolFilter фильтр каталога школ
type SchoolFilter struct {
	Location *string
	Page     Page
}
