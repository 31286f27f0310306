package domain

import (
	"time"
	"unicode/utf8"
)

// ReviewTargetKind о чем отзыв
type ReviewTargetKind string

const (
	ReviewStudio      ReviewTargetKind = "STUDIO"
	ReviewJamPad      ReviewTargetKind = "JAMPAD"
	ReviewMusicSchool ReviewTargetKind = "MUSIC_SCHOOL"
	ReviewListing     ReviewTargetKind = "LISTING"
)

func (k ReviewTargetKind) IsValid() bool {
	switch k {
	case ReviewStudio, ReviewJamPad, ReviewMusicSchool, ReviewListing:
		return true
	}
	return false
}

// VenueKind для отзывов о площадках возвращает тип площадки
func (k ReviewTargetKind) VenueKind() (VenueKind, bool) {
	switch k {
	case ReviewStudio:
		return VenueStudio, true
	case ReviewJamPad:
		return VenueJamPad, true
	}
	return "", false
}

// ReviewTarget ровно одна сущность, о которой отзыв
type ReviewTarget struct {
	Kind ReviewTargetKind
	ID   int64
}

// ReviewTargetFromIDs собирает цель отзыва из взаимоисключающих полей запроса
func ReviewTargetFromIDs(studioID, jamPadID, schoolID, listingID *int64) (ReviewTarget, error) {
	candidates := []struct {
		k  ReviewTargetKind
		id *int64
	}{
		{ReviewStudio, studioID},
		{ReviewJamPad, jamPadID},
		{ReviewMusicSchool, schoolID},
		{ReviewListing, listingID},
	}

	var target ReviewTarget
	set := 0
	for _, c := range candidates {
		if c.id == nil {
			continue
		}
		set++
		target = ReviewTarget{Kind: c.k, ID: *c.id}
	}

	if set != 1 || target.ID <= 0 {
		return ReviewTarget{}, ErrInvalidTarget
	}
	return target, nil
}

// Review отзыв
type Review struct {
	ID        int64
	AuthorID  int64
	Target    ReviewTarget
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Review) OwnerIDs() []int64 {
	return []int64{r.AuthorID}
}

func (r *Review) IsPublic() bool {
	return true
}

// RatingSummary агрегат по всем отзывам сущности
type RatingSummary struct {
	Average float64
	Count   int
}

// ValidRating 1..5
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// ValidComment 10..500 символов
func ValidComment(comment string) bool {
	n := utf8.RuneCountInString(comment)
	return n >= MinReviewCommentLen && n <= MaxReviewCommentLen
}
