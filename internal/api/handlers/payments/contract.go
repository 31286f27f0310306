package payments

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments/models"
)

type PaymentService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreatePaymentRequest) (*models.PaymentResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error)
	ListAll(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error)
	ListByUser(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status domain.PaymentStatus) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
