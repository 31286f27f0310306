package reviews

import "github.com/m04kA/SMC-SoundInkube/internal/service/reviews/models"

// CreateReviewRequest HTTP запрос на отзыв. Задается ровно одна цель
type CreateReviewRequest struct {
	StudioID      *int64 `json:"studioId,omitempty" validate:"omitempty,gt=0"`
	JamPadID      *int64 `json:"jamPadId,omitempty" validate:"omitempty,gt=0"`
	MusicSchoolID *int64 `json:"musicSchoolId,omitempty" validate:"omitempty,gt=0"`
	ListingID     *int64 `json:"listingId,omitempty" validate:"omitempty,gt=0"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// UpdateReviewRequest HTTP запрос частичного обновления отзыва
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (r *CreateReviewRequest) toServiceRequest() *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		StudioID:  r.StudioID,
		JamPadID:  r.JamPadID,
		SchoolID:  r.MusicSchoolID,
		ListingID: r.ListingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func (r *UpdateReviewRequest) toServiceRequest() *models.UpdateReviewRequest {
	return &models.UpdateReviewRequest{
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}
