package reviews

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByTarget(ctx context.Context, target domain.ReviewTarget, page domain.Page) ([]*domain.Review, error)
	ExistsByAuthorAndTarget(ctx context.Context, authorID int64, target domain.ReviewTarget) (bool, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, target domain.ReviewTarget) (domain.RatingSummary, error)
}

// TargetRepository проверки и агрегат на стороне сущности, о которой отзыв
type TargetRepository interface {
	LockReviewTarget(ctx context.Context, target domain.ReviewTarget) (bool, error)
	CountCompletedInteractions(ctx context.Context, authorID int64, target domain.ReviewTarget) (int, error)
	UpdateRating(ctx context.Context, target domain.ReviewTarget, summary domain.RatingSummary) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счетчики бизнес-событий
type Metrics interface {
	IncEvent(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
