package settle_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	paymentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/payment"
	targetsRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/targets"
	"github.com/m04kA/SMC-SoundInkube/internal/integrations/gateway"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memPayments struct {
	items map[int64]*domain.Payment
}

func (m *memPayments) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPayments) MarkCompleted(ctx context.Context, id int64, transactionID string, processedAt time.Time) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.Status != domain.PaymentPending {
		return false, nil
	}
	p.Status = domain.PaymentCompleted
	p.TransactionID = &transactionID
	p.ProcessedAt = &processedAt
	return true, nil
}

func (m *memPayments) MarkFailed(ctx context.Context, id int64, processedAt time.Time) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.Status != domain.PaymentPending {
		return false, nil
	}
	p.Status = domain.PaymentFailed
	p.ProcessedAt = &processedAt
	return true, nil
}

func (m *memPayments) MarkRefunded(ctx context.Context, id int64, processedAt time.Time) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.Status != domain.PaymentCompleted {
		return false, nil
	}
	p.Status = domain.PaymentRefunded
	p.ProcessedAt = &processedAt
	return true, nil
}

type memTargets struct {
	statuses map[domain.PaymentTarget]string
	confirms int
}

func (m *memTargets) PaymentTargetState(ctx context.Context, target domain.PaymentTarget) (*domain.PaymentTargetState, error) {
	status, ok := m.statuses[target]
	if !ok {
		return nil, targetsRepo.ErrTargetNotFound
	}
	return &domain.PaymentTargetState{Target: target, PayerID: 10, RecipientID: 50, Status: status, Amount: 150}, nil
}

func (m *memTargets) ConfirmPaymentTarget(ctx context.Context, target domain.PaymentTarget) (bool, error) {
	if m.statuses[target] != "PENDING" {
		return false, nil
	}
	if target.Type == domain.PaymentMarketplaceOrder {
		m.statuses[target] = string(domain.OrderPaid)
	} else {
		m.statuses[target] = "CONFIRMED"
	}
	m.confirms++
	return true, nil
}

type funcGateway func(ctx context.Context, p *domain.Payment) (*gateway.Charge, error)

func (f funcGateway) Charge(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
	return f(ctx, p)
}

func (f funcGateway) Refund(ctx context.Context, transactionID string) error {
	return nil
}

type countingGateway struct {
	*gateway.Simulated
	charges int
	refunds []string
}

func (g *countingGateway) Charge(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
	g.charges++
	return g.Simulated.Charge(ctx, p)
}

func (g *countingGateway) Refund(ctx context.Context, transactionID string) error {
	g.refunds = append(g.refunds, transactionID)
	return g.Simulated.Refund(ctx, transactionID)
}

type noopTx struct{}

func (noopTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingEvents struct {
	published []events.Event
}

func (r *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

type countingMetrics map[string]int

func (m countingMetrics) IncEvent(event string) {
	m[event]++
}

type fixture struct {
	payments *memPayments
	targets  *memTargets
	events   *recordingEvents
	metrics  countingMetrics
	uc       *UseCase
}

func newFixture(gw Gateway) *fixture {
	f := &fixture{
		payments: &memPayments{items: map[int64]*domain.Payment{}},
		targets:  &memTargets{statuses: map[domain.PaymentTarget]string{}},
		events:   &recordingEvents{},
		metrics:  countingMetrics{},
	}
	if gw == nil {
		gw = gateway.NewSimulated()
	}
	f.uc = NewUseCase(f.payments, f.targets, gw, noopTx{}, f.events, f.metrics, logger.NewDiscard())
	return f
}

func (f *fixture) addPayment(id int64, target domain.PaymentTarget) {
	f.payments.items[id] = &domain.Payment{
		ID:     id,
		UserID: 10,
		Type:   target.Type,
		Method: domain.MethodCard,
		Amount: 150,
		Status: domain.PaymentPending,
		Target: target,
	}
}

func TestExecute_CompletesPaymentAndConfirmsOnlyLinkedBooking(t *testing.T) {
	f := newFixture(nil)
	linked := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 1}
	other := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 2}
	f.targets.statuses[linked] = "PENDING"
	f.targets.statuses[other] = "PENDING"
	f.addPayment(100, linked)

	result, err := f.uc.Execute(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, result.Status)
	require.NotNil(t, result.TransactionID)
	assert.NotEmpty(t, *result.TransactionID)
	assert.NotNil(t, result.ProcessedAt)

	assert.Equal(t, "CONFIRMED", f.targets.statuses[linked])
	assert.Equal(t, "PENDING", f.targets.statuses[other])

	require.Len(t, f.events.published, 1)
	assert.Equal(t, events.TypePaymentCompleted, f.events.published[0].Type)
	assert.Equal(t, 1, f.metrics["payment_settled"])
}

func TestExecute_MarketplaceOrderBecomesPaid(t *testing.T) {
	f := newFixture(nil)
	order := domain.PaymentTarget{Type: domain.PaymentMarketplaceOrder, ID: 5}
	f.targets.statuses[order] = "PENDING"
	f.addPayment(1, order)

	_, err := f.uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderPaid), f.targets.statuses[order])
}

func TestExecute_IsIdempotent(t *testing.T) {
	f := newFixture(nil)
	target := domain.PaymentTarget{Type: domain.PaymentEnrollment, ID: 3}
	f.targets.statuses[target] = "PENDING"
	f.addPayment(1, target)

	first, err := f.uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, *first.TransactionID, *second.TransactionID)
	assert.Equal(t, 1, f.targets.confirms)
	assert.Equal(t, "CONFIRMED", f.targets.statuses[target])
}

func TestExecute_NonPendingTargetFailsWithoutCharge(t *testing.T) {
	gw := &countingGateway{Simulated: gateway.NewSimulated()}
	f := newFixture(gw)
	target := domain.PaymentTarget{Type: domain.PaymentJamPadBooking, ID: 4}
	f.targets.statuses[target] = "CANCELLED"
	f.addPayment(1, target)

	result, err := f.uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, result.Status)
	assert.Equal(t, "CANCELLED", f.targets.statuses[target])
	assert.Zero(t, gw.charges)
	assert.Empty(t, f.events.published)
	assert.Equal(t, 1, f.metrics["payment_failed"])
}

func TestExecute_SecondPaymentForSameBookingIsNotCharged(t *testing.T) {
	gw := &countingGateway{Simulated: gateway.NewSimulated()}
	f := newFixture(gw)
	target := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 1}
	f.targets.statuses[target] = "PENDING"
	f.addPayment(1, target)
	f.addPayment(2, target)

	first, err := f.uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentCompleted, first.Status)
	assert.Equal(t, domain.PaymentFailed, second.Status)
	assert.Equal(t, "CONFIRMED", f.targets.statuses[target])
	assert.Equal(t, 1, f.targets.confirms)
	assert.Equal(t, 1, gw.charges)
}

func TestExecute_TargetLeavesPendingDuringChargeIsRefunded(t *testing.T) {
	target := domain.PaymentTarget{Type: domain.PaymentEnrollment, ID: 7}
	var f *fixture
	simulated := gateway.NewSimulated()
	refunds := 0
	gw := &refundingGateway{
		charge: func(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
			// Запись отменили, пока шло списание
			f.targets.statuses[target] = "CANCELLED"
			return simulated.Charge(ctx, p)
		},
		refund: func(ctx context.Context, transactionID string) error {
			refunds++
			return nil
		},
	}
	f = newFixture(gw)
	f.targets.statuses[target] = "PENDING"
	f.addPayment(1, target)

	result, err := f.uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, result.Status)
	require.NotNil(t, result.TransactionID)
	assert.Equal(t, "CANCELLED", f.targets.statuses[target])
	assert.Zero(t, f.targets.confirms)
	assert.Equal(t, 1, refunds)
	assert.Empty(t, f.events.published)
	assert.Equal(t, 1, f.metrics["payment_refunded"])
}

type refundingGateway struct {
	charge func(ctx context.Context, p *domain.Payment) (*gateway.Charge, error)
	refund func(ctx context.Context, transactionID string) error
}

func (g *refundingGateway) Charge(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
	return g.charge(ctx, p)
}

func (g *refundingGateway) Refund(ctx context.Context, transactionID string) error {
	return g.refund(ctx, transactionID)
}

func TestExecute_DeletedTargetFailsWithoutCharge(t *testing.T) {
	gw := &countingGateway{Simulated: gateway.NewSimulated()}
	f := newFixture(gw)
	f.addPayment(1, domain.PaymentTarget{})

	result, err := f.uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, result.Status)
	assert.Zero(t, gw.charges)

	changed, err := f.uc.Cascade(context.Background(), &domain.Payment{ID: 1, Status: domain.PaymentCompleted})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestExecute_DeclinedPaymentFails(t *testing.T) {
	declined := funcGateway(func(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
		return nil, gateway.ErrDeclined
	})
	f := newFixture(declined)
	target := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 1}
	f.targets.statuses[target] = "PENDING"
	f.addPayment(1, target)

	result, err := f.uc.Execute(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, result.Status)
	assert.Equal(t, "PENDING", f.targets.statuses[target])
	assert.Empty(t, f.events.published)
}

func TestExecute_GatewayErrorKeepsPaymentPending(t *testing.T) {
	broken := funcGateway(func(ctx context.Context, p *domain.Payment) (*gateway.Charge, error) {
		return nil, errors.New("timeout")
	})
	f := newFixture(broken)
	target := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 1}
	f.targets.statuses[target] = "PENDING"
	f.addPayment(1, target)

	_, err := f.uc.Execute(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.PaymentPending, f.payments.items[1].Status)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Execute(context.Background(), 42)

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestCascade_OnlyCompletedHasEffect(t *testing.T) {
	f := newFixture(nil)
	target := domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: 1}
	f.targets.statuses[target] = "PENDING"

	for _, status := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentFailed, domain.PaymentRefunded} {
		changed, err := f.uc.Cascade(context.Background(), &domain.Payment{ID: 1, Status: status, Target: target})
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Equal(t, "PENDING", f.targets.statuses[target])

	changed, err := f.uc.Cascade(context.Background(), &domain.Payment{ID: 1, Status: domain.PaymentCompleted, Target: target})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "CONFIRMED", f.targets.statuses[target])
}
