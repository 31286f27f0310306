package venues

import (
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues/models"
)

// CreateVenueRequest HTTP запрос на создание студии или джем-пада
type CreateVenueRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Location    string   `json:"location" validate:"required,max=300"`
	HourlyRate  float64  `json:"hourlyRate" validate:"gte=0"`
	Equipment   []string `json:"equipment" validate:"omitempty,dive,required"`
	Amenities   []string `json:"amenities" validate:"omitempty,dive,required"`
}

// UpdateVenueRequest HTTP запрос частичного обновления
type UpdateVenueRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,min=1,max=300"`
	HourlyRate  *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	Equipment   []string `json:"equipment,omitempty" validate:"omitempty,dive,required"`
	Amenities   []string `json:"amenities,omitempty" validate:"omitempty,dive,required"`
}

func (r *CreateVenueRequest) toServiceRequest(kind domain.VenueKind) *models.CreateVenueRequest {
	return &models.CreateVenueRequest{
		Kind:        kind,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		HourlyRate:  r.HourlyRate,
		Equipment:   r.Equipment,
		Amenities:   r.Amenities,
	}
}

func (r *UpdateVenueRequest) toServiceRequest() *models.UpdateVenueRequest {
	return &models.UpdateVenueRequest{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		HourlyRate:  r.HourlyRate,
		Equipment:   r.Equipment,
		Amenities:   r.Amenities,
	}
}
