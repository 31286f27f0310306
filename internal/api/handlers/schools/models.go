package schools

import "github.com/m04kA/SMC-SoundInkube/internal/service/schools/models"

// CreateSchoolRequest HTTP запрос на создание музыкальной школы
type CreateSchoolRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Location    string  `json:"location" validate:"required,max=300"`
	CourseFee   float64 `json:"courseFee" validate:"gte=0"`
}

// UpdateEnrollmentStatusRequest HTTP запрос на смену статуса записи
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

func (r *CreateSchoolRequest) toServiceRequest() *models.CreateSchoolRequest {
	return &models.CreateSchoolRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		CourseFee:   r.CourseFee,
	}
}
