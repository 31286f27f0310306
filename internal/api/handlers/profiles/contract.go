package profiles

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"
)

type ProfileService interface {
	Get(ctx context.Context, actor domain.Actor, userID int64) (*models.ProfileResponse, error)
	Replace(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error)
	Patch(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
