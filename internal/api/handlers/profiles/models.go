package profiles

import "github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"

// ProfileRequest HTTP запрос на запись профиля (PUT и PATCH)
type ProfileRequest struct {
	Bio         *string           `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Specialties []string          `json:"specialties,omitempty" validate:"omitempty,dive,required,max=100"`
	HourlyRate  *float64          `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	SocialLinks map[string]string `json:"socialLinks,omitempty" validate:"omitempty,dive,keys,required,endkeys,url"`
}

func (r *ProfileRequest) toServiceRequest() *models.ProfileRequest {
	return &models.ProfileRequest{
		Bio:         r.Bio,
		Specialties: r.Specialties,
		HourlyRate:  r.HourlyRate,
		SocialLinks: r.SocialLinks,
	}
}
