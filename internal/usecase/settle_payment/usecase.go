package settle_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/payment"
	targetsRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/targets"
	"github.com/m04kA/SMC-SoundInkube/internal/integrations/gateway"
)

// UseCase проведение платежа: PENDING -> COMPLETED | FAILED и каскад на оплаченную сущность.
// Платеж за сущность, которая уже не ждет оплаты, отклоняется или возвращается
type UseCase struct {
	paymentRepo PaymentRepository
	targetRepo  TargetRepository
	gateway     Gateway
	txManager   TransactionManager
	events      EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	targetRepo TargetRepository,
	gateway Gateway,
	txManager TransactionManager,
	events EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		targetRepo:  targetRepo,
		gateway:     gateway,
		txManager:   txManager,
		events:      events,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute проводит платеж по ID.
// Повторный вызов для уже проведенного платежа только повторяет каскад, который ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	uc.logger.Info("SettlePayment: payment id=%d", paymentID)

	payment, err := uc.loadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case domain.PaymentCompleted:
		uc.logger.Info("SettlePayment: payment id=%d already completed, re-applying cascade", paymentID)
		if _, err := uc.Cascade(ctx, payment); err != nil {
			return nil, err
		}
		return payment, nil
	case domain.PaymentPending:
	default:
		uc.logger.Warn("SettlePayment: payment id=%d has final status %s, skipping", paymentID, payment.Status)
		return payment, nil
	}

	// 1. Цель должна ещё ждать оплаты, иначе платеж отклоняется без списания
	if !payment.Target.IsSet() {
		uc.logger.Warn("SettlePayment: target of payment id=%d was deleted", paymentID)
		return uc.fail(ctx, paymentID)
	}
	state, err := uc.targetRepo.PaymentTargetState(ctx, payment.Target)
	if err != nil && !errors.Is(err, targetsRepo.ErrTargetNotFound) {
		uc.logger.Error("SettlePayment: failed to get target %s/%d of payment id=%d: %v",
			payment.Target.Type, payment.Target.ID, paymentID, err)
		return nil, fmt.Errorf("%w: failed to get payment target: %w", ErrInternal, err)
	}
	if state == nil || !state.IsPending() {
		uc.logger.Warn("SettlePayment: target %s/%d of payment id=%d is not pending",
			payment.Target.Type, payment.Target.ID, paymentID)
		return uc.fail(ctx, paymentID)
	}

	// 2. Списание через шлюз (вне транзакции БД)
	charge, err := uc.gateway.Charge(ctx, payment)
	if err != nil {
		if errors.Is(err, gateway.ErrDeclined) || errors.Is(err, gateway.ErrInvalidAmount) {
			uc.logger.Warn("SettlePayment: gateway declined payment id=%d: %v", paymentID, err)
			return uc.fail(ctx, paymentID)
		}
		uc.logger.Error("SettlePayment: gateway error for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: gateway charge: %w", ErrInternal, err)
	}

	// 3. Фиксируем COMPLETED и подтверждаем цель в одной транзакции.
	// Если цель успела уйти из PENDING, платеж сразу переводится в REFUNDED
	refunded := false
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		changed, err := uc.paymentRepo.MarkCompleted(txCtx, paymentID, charge.TransactionID, charge.ProcessedAt)
		if err != nil {
			uc.logger.Error("SettlePayment: failed to mark payment id=%d completed: %v", paymentID, err)
			return fmt.Errorf("%w: failed to mark payment completed: %w", ErrInternal, err)
		}
		if !changed {
			// Платеж успел обработать другой обработчик
			uc.logger.Warn("SettlePayment: payment id=%d is no longer pending", paymentID)
			return nil
		}

		payment.Status = domain.PaymentCompleted
		confirmed, err := uc.Cascade(txCtx, payment)
		if err != nil {
			return err
		}
		if confirmed {
			return nil
		}

		uc.logger.Warn("SettlePayment: target %s/%d left pending during settlement of payment id=%d",
			payment.Target.Type, payment.Target.ID, paymentID)
		if _, err := uc.paymentRepo.MarkRefunded(txCtx, paymentID, time.Now().UTC()); err != nil {
			uc.logger.Error("SettlePayment: failed to mark payment id=%d refunded: %v", paymentID, err)
			return fmt.Errorf("%w: failed to mark payment refunded: %w", ErrInternal, err)
		}
		refunded = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Возврат списания, если цель не подтвердилась
	if refunded {
		if err := uc.gateway.Refund(ctx, charge.TransactionID); err != nil {
			uc.logger.Error("SettlePayment: gateway refund failed for payment id=%d transaction=%s: %v",
				paymentID, charge.TransactionID, err)
		}
		uc.metrics.IncEvent("payment_refunded")
	}

	result, err := uc.loadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if result.IsCompleted() {
		uc.metrics.IncEvent("payment_settled")
		if err := uc.events.Publish(ctx, events.PaymentCompleted(result)); err != nil {
			uc.logger.Warn("SettlePayment: failed to publish event for payment id=%d: %v", paymentID, err)
		}
	}

	uc.logger.Info("SettlePayment: payment id=%d settled with status %s", paymentID, result.Status)
	return result, nil
}

// Cascade применяет статус платежа к оплаченной сущности.
// Эффект есть только у COMPLETED: бронирование и запись становятся CONFIRMED, заказ - PAID.
// Обновление затрагивает только связанную сущность и только если она ещё в PENDING
func (uc *UseCase) Cascade(ctx context.Context, payment *domain.Payment) (bool, error) {
	if payment.Status != domain.PaymentCompleted || !payment.Target.IsSet() {
		return false, nil
	}

	changed, err := uc.targetRepo.ConfirmPaymentTarget(ctx, payment.Target)
	if err != nil {
		uc.logger.Error("SettlePayment: cascade failed for payment id=%d target=%s/%d: %v",
			payment.ID, payment.Target.Type, payment.Target.ID, err)
		return false, fmt.Errorf("%w: cascade: %w", ErrInternal, err)
	}

	if changed {
		uc.logger.Info("SettlePayment: payment id=%d confirmed target %s id=%d",
			payment.ID, payment.Target.Type, payment.Target.ID)
	}

	return changed, nil
}

// fail отклоняет платеж, который ещё в PENDING
func (uc *UseCase) fail(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	if _, err := uc.paymentRepo.MarkFailed(ctx, paymentID, time.Now().UTC()); err != nil {
		uc.logger.Error("SettlePayment: failed to mark payment id=%d as failed: %v", paymentID, err)
		return nil, fmt.Errorf("%w: failed to mark payment failed: %w", ErrInternal, err)
	}
	uc.metrics.IncEvent("payment_failed")
	return uc.loadPayment(ctx, paymentID)
}

func (uc *UseCase) loadPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("SettlePayment: payment id=%d not found", id)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("SettlePayment: failed to get payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
	}
	return payment, nil
}
