package venues

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*domain.Venue, error)
	List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error)
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, kind domain.VenueKind, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
