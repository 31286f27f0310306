package venues

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues/models"
)

type VenueService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateVenueRequest) (*models.VenueResponse, error)
	GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*models.VenueResponse, error)
	List(ctx context.Context, req *models.ListVenuesRequest) (*models.VenueListResponse, error)
	Update(ctx context.Context, actor domain.Actor, kind domain.VenueKind, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error)
	Delete(ctx context.Context, actor domain.Actor, kind domain.VenueKind, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
