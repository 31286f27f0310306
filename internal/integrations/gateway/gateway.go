// Package gateway платежный шлюз. Реальной интеграции нет:
// шлюз всегда подтверждает списание и возврат и выдает уникальный идентификатор транзакции
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

var (
	// ErrInvalidAmount возвращается при неположительной сумме
	ErrInvalidAmount = errors.New("gateway: amount must be positive")

	// ErrDeclined возвращается, когда шлюз отклонил платеж
	ErrDeclined = errors.New("gateway: payment declined")

	// ErrInvalidRefund возвращается при возврате без транзакции
	ErrInvalidRefund = errors.New("gateway: refund requires transaction id")
)

// Charge результат списания
type Charge struct {
	TransactionID string
	ProcessedAt   time.Time
}

// Simulated симулированный шлюз
type Simulated struct {
	now func() time.Time
}

// NewSimulated создает симулированный шлюз
func NewSimulated() *Simulated {
	return &Simulated{now: time.Now}
}

// Charge списывает сумму платежа
func (g *Simulated) Charge(ctx context.Context, payment *domain.Payment) (*Charge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if payment.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment id=%d", ErrInvalidAmount, payment.ID)
	}

	return &Charge{
		TransactionID: uuid.NewString(),
		ProcessedAt:   g.now().UTC(),
	}, nil
}

// Refund возвращает списание по идентификатору транзакции
func (g *Simulated) Refund(ctx context.Context, transactionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if transactionID == "" {
		return fmt.Errorf("%w: empty transaction id", ErrInvalidRefund)
	}
	return nil
}
