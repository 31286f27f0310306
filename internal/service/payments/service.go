package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	paymentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/payment"
	targetsRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/targets"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments/models"
)

// Service сервис платежей
type Service struct {
	paymentRepo PaymentRepository
	targetRepo  TargetRepository
	settler     Settler
	queue       SettlementQueue
	txManager   TransactionManager
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса платежей.
// Если queue равен nil, платеж проводится сразу в запросе
func NewService(
	paymentRepo PaymentRepository,
	targetRepo TargetRepository,
	settler Settler,
	queue SettlementQueue,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		targetRepo:  targetRepo,
		settler:     settler,
		queue:       queue,
		txManager:   txManager,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create создает платеж за сущность вызывающего и передает его на проведение
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Create: %s payment by user=%d amount=%.2f", req.Type, actor.UserID, req.Amount)

	// 1. Валидация входных данных
	if !req.Type.IsValid() || !req.Method.IsValid() {
		s.logger.Warn("Create: invalid type=%s or method=%s", req.Type, req.Method)
		return nil, fmt.Errorf("%w: invalid payment type or method", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	// 2. Ровно одна цель нужного типа
	target, err := domain.PaymentTargetFromIDs(req.Type, req.StudioBookingID, req.JamPadBookingID, req.EnrollmentID, req.MarketplaceOrderID)
	if err != nil {
		s.logger.Warn("Create: invalid target for %s: %v", req.Type, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	// 3. Цель существует, принадлежит вызывающему и ждет оплаты
	state, err := s.targetRepo.PaymentTargetState(ctx, target)
	if err != nil {
		if errors.Is(err, targetsRepo.ErrTargetNotFound) {
			s.logger.Warn("Create: target %s id=%d not found", target.Type, target.ID)
			return nil, ErrTargetNotFound
		}
		s.logger.Error("Create: failed to load target %s id=%d: %v", target.Type, target.ID, err)
		return nil, fmt.Errorf("%w: Create - target state: %w", ErrInternal, err)
	}

	if state.PayerID != actor.UserID && !actor.IsAdmin() {
		s.logger.Warn("Create: user=%d is not the payer of %s id=%d", actor.UserID, target.Type, target.ID)
		return nil, ErrAccessDenied
	}

	if !state.IsPending() {
		s.logger.Warn("Create: target %s id=%d has status %s", target.Type, target.ID, state.Status)
		return nil, ErrTargetNotPending
	}

	// 4. Сохраняем платеж в PENDING
	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		UserID:      actor.UserID,
		Type:        req.Type,
		Method:      req.Method,
		Amount:      req.Amount,
		Status:      domain.PaymentPending,
		Target:      target,
		RecipientID: state.RecipientID,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	// 5. Проведение: в очередь или сразу
	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, payment.ID); err != nil {
			// Платеж остается PENDING, его можно провести повторно
			s.logger.Error("Create: failed to enqueue payment id=%d: %v", payment.ID, err)
		}
		s.logger.Info("Create: payment id=%d queued for settlement", payment.ID)
		return models.FromDomainPayment(payment), nil
	}

	settled, err := s.settler.Execute(ctx, payment.ID)
	if err != nil {
		s.logger.Error("Create: settlement failed for payment id=%d: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: Create - settlement: %w", ErrInternal, err)
	}

	s.logger.Info("Create: payment id=%d settled with status %s", settled.ID, settled.Status)
	return models.FromDomainPayment(settled), nil
}

// GetByID платеж видят плательщик, получатель и администратор
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	payment, err := s.getPayment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !domain.Authorize(actor, payment).Read {
		s.logger.Warn("GetByID: access denied for user=%d to payment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainPayment(payment), nil
}

// ListAll все платежи (только администратор)
func (s *Service) ListAll(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListAll: user=%d is not admin", actor.UserID)
		return nil, ErrAccessDenied
	}
	return s.list(ctx, nil, req)
}

// ListByUser платежи вызывающего
func (s *Service) ListByUser(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	userID := actor.UserID
	return s.list(ctx, &userID, req)
}

// UpdateStatus меняет статус платежа (только администратор).
// Переход в COMPLETED проставляет transactionId и processedAt, если их нет, и подтверждает цель
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status domain.PaymentStatus) (*models.PaymentResponse, error) {
	s.logger.Info("UpdateStatus: payment id=%d to %s by user=%d", id, status, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("UpdateStatus: user=%d is not admin", actor.UserID)
		return nil, ErrAccessDenied
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var result *domain.Payment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := s.getPayment(txCtx, id, "UpdateStatus")
		if err != nil {
			return err
		}

		if payment.Status == status {
			result = payment
			return nil
		}

		payment.Status = status
		if status == domain.PaymentCompleted {
			if payment.TransactionID == nil {
				txID := uuid.NewString()
				payment.TransactionID = &txID
			}
			if payment.ProcessedAt == nil {
				processedAt := s.now()
				payment.ProcessedAt = &processedAt
			}
		}

		if err := s.paymentRepo.Update(txCtx, payment); err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for payment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		if _, err := s.settler.Cascade(txCtx, payment); err != nil {
			return fmt.Errorf("%w: UpdateStatus - cascade: %w", ErrInternal, err)
		}

		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: payment id=%d is now %s", id, result.Status)
	return models.FromDomainPayment(result), nil
}

func (s *Service) list(ctx context.Context, userID *int64, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	page := req.Page.Normalize()

	if req.Status != nil && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{UserID: userID, Status: req.Status, Page: page})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments, page), nil
}

func (s *Service) getPayment(ctx context.Context, id int64, op string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", op, id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return payment, nil
}
