package settle_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	"github.com/m04kA/SMC-SoundInkube/internal/integrations/gateway"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, id int64, transactionID string, processedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int64, processedAt time.Time) (bool, error)
	MarkRefunded(ctx context.Context, id int64, processedAt time.Time) (bool, error)
}

// TargetRepository интерфейс репозитория целей платежа
type TargetRepository interface {
	PaymentTargetState(ctx context.Context, target domain.PaymentTarget) (*domain.PaymentTargetState, error)
	ConfirmPaymentTarget(ctx context.Context, target domain.PaymentTarget) (bool, error)
}

// Gateway интерфейс платежного шлюза
type Gateway interface {
	Charge(ctx context.Context, payment *domain.Payment) (*gateway.Charge, error)
	Refund(ctx context.Context, transactionID string) error
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
