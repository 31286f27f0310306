package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// CreateReviewRequest запрос на создание отзыва. Ровно одно поле цели
type CreateReviewRequest struct {
	StudioID  *int64
	JamPadID  *int64
	SchoolID  *int64
	ListingID *int64
	Rating    int
	Comment   string
}

// UpdateReviewRequest частичное обновление отзыва
type UpdateReviewRequest struct {
	Rating  *int
	Comment *string
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            int64     `json:"id"`
	AuthorID      int64     `json:"authorId"`
	StudioID      *int64    `json:"studioId,omitempty"`
	JamPadID      *int64    `json:"jamPadId,omitempty"`
	MusicSchoolID *int64    `json:"musicSchoolId,omitempty"`
	ListingID     *int64    `json:"listingId,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReviewListResponse список отзывов о сущности вместе с агрегатом
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
	Skip          int              `json:"skip"`
	Take          int              `json:"take"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	resp := &ReviewResponse{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	targetID := r.Target.ID
	switch r.Target.Kind {
	case domain.ReviewStudio:
		resp.StudioID = &targetID
	case domain.ReviewJamPad:
		resp.JamPadID = &targetID
	case domain.ReviewMusicSchool:
		resp.MusicSchoolID = &targetID
	case domain.ReviewListing:
		resp.ListingID = &targetID
	}

	return resp
}

// FromDomainReviewList конвертирует список отзывов
func FromDomainReviewList(reviews []*domain.Review, summary domain.RatingSummary, page domain.Page) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews:       make([]ReviewResponse, 0, len(reviews)),
		AverageRating: summary.Average,
		TotalReviews:  summary.Count,
		Skip:          page.Skip,
		Take:          page.Take,
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}
	return resp
}
