package payments

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// TargetRepository читает состояние оплачиваемой сущности
type TargetRepository interface {
	PaymentTargetState(ctx context.Context, target domain.PaymentTarget) (*domain.PaymentTargetState, error)
}

// Settler проведение платежа и каскад статуса на цель
type Settler interface {
	Execute(ctx context.Context, paymentID int64) (*domain.Payment, error)
	Cascade(ctx context.Context, payment *domain.Payment) (bool, error)
}

// SettlementQueue очередь на асинхронное проведение
type SettlementQueue interface {
	Enqueue(ctx context.Context, paymentID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
