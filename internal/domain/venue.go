package domain

import "time"

// VenueKind тип площадки. Студии и джем-пады устроены одинаково и хранятся в одной таблице
type VenueKind string

const (
	VenueStudio VenueKind = "STUDIO"
	VenueJamPad VenueKind = "JAMPAD"
)

// IsValid проверяет тип площадки
func (k VenueKind) IsValid() bool {
	return k == VenueStudio || k == VenueJamPad
}

// Venue студия или джем-пад. HourlyRate - единственная база для расчета цены бронирования
type Venue struct {
	ID            int64
	Kind          VenueKind
	OwnerID       int64
	Name          string
	Description   string
	Location      string
	HourlyRate    float64
	Equipment     []string
	Amenities     []string
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (v *Venue) OwnerIDs() []int64 {
	return []int64{v.OwnerID}
}

// IsPublic каталог площадок публичный
func (v *Venue) IsPublic() bool {
	return true
}

// VenueFilter фильтр каталога площадок
type VenueFilter struct {
	Kind     VenueKind
	OwnerID  *int64
	Location *string
	Page     Page
}
