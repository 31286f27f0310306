package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// CreateVenueRequest запрос на создание площадки
type CreateVenueRequest struct {
	Kind        domain.VenueKind
	Name        string
	Description string
	Location    string
	HourlyRate  float64
	Equipment   []string
	Amenities   []string
}

// UpdateVenueRequest частичное обновление площадки. nil означает "не менять"
type UpdateVenueRequest struct {
	Name        *string
	Description *string
	Location    *string
	HourlyRate  *float64
	Equipment   []string
	Amenities   []string
}

// ListVenuesRequest запрос каталога площадок
type ListVenuesRequest struct {
	Kind     domain.VenueKind
	OwnerID  *int64
	Location *string
	Page     domain.Page
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	OwnerID       int64     `json:"ownerId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	HourlyRate    float64   `json:"hourlyRate"`
	Equipment     []string  `json:"equipment"`
	Amenities     []string  `json:"amenities"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
	Skip   int             `json:"skip"`
	Take   int             `json:"take"`
}

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}
	return &VenueResponse{
		ID:            v.ID,
		Type:          string(v.Kind),
		OwnerID:       v.OwnerID,
		Name:          v.Name,
		Description:   v.Description,
		Location:      v.Location,
		HourlyRate:    v.HourlyRate,
		Equipment:     nonNil(v.Equipment),
		Amenities:     nonNil(v.Amenities),
		AverageRating: v.AverageRating,
		TotalReviews:  v.TotalReviews,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список площадок
func FromDomainVenueList(venues []*domain.Venue, page domain.Page) *VenueListResponse {
	resp := &VenueListResponse{
		Venues: make([]VenueResponse, 0, len(venues)),
		Skip:   page.Skip,
		Take:   page.Take,
	}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, *FromDomainVenue(v))
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
