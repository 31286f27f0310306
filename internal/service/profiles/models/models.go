package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// ProfileRequest полное (PUT) или частичное (PATCH) обновление профиля.
// Для PATCH nil означает "не менять"
type ProfileRequest struct {
	Bio         *string
	Specialties []string
	HourlyRate  *float64
	SocialLinks map[string]string
}

// Response модели

// ProfileResponse ответ с профилем
type ProfileResponse struct {
	UserID      int64             `json:"userId"`
	Name        string            `json:"name,omitempty"`
	Role        string            `json:"role,omitempty"`
	Bio         string            `json:"bio"`
	Specialties []string          `json:"specialties"`
	HourlyRate  *float64          `json:"hourlyRate,omitempty"`
	SocialLinks map[string]string `json:"socialLinks"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// FromDomainProfile конвертирует профиль и пользователя в DTO. user может быть nil
func FromDomainProfile(p *domain.Profile, user *domain.User) *ProfileResponse {
	if p == nil {
		return nil
	}

	resp := &ProfileResponse{
		UserID:      p.UserID,
		Bio:         p.Bio,
		Specialties: p.Specialties,
		HourlyRate:  p.HourlyRate,
		SocialLinks: p.SocialLinks,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resp.Specialties == nil {
		resp.Specialties = []string{}
	}
	if resp.SocialLinks == nil {
		resp.SocialLinks = map[string]string{}
	}
	if user != nil {
		resp.Name = user.Name
		resp.Role = string(user.Role)
	}

	return resp
}
