package domain

import "time"

// Profile профиль пользователя (1:1)
type Profile struct {
	UserID      int64
	Bio         string
	Specialties []string
	HourlyRate  *float64
	SocialLinks map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Profile) OwnerIDs() []int64 {
	return []int64{p.UserID}
}
