package reviews

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ReviewResponse, error)
	ListByTarget(ctx context.Context, target domain.ReviewTarget, page domain.Page) (*models.ReviewListResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateReviewRequest) (*models.ReviewResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
