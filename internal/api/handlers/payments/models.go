package payments

import (
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments/models"
)

// CreatePaymentRequest HTTP запрос на оплату. Поле цели должно соответствовать type
type CreatePaymentRequest struct {
	Type               string  `json:"type" validate:"required,oneof=STUDIO_BOOKING JAMPAD_BOOKING ENROLLMENT MARKETPLACE_ORDER"`
	Method             string  `json:"method" validate:"required,oneof=CARD BANK_TRANSFER WALLET"`
	Amount             float64 `json:"amount" validate:"gt=0"`
	StudioBookingID    *int64  `json:"studioBookingId,omitempty" validate:"omitempty,gt=0"`
	JamPadBookingID    *int64  `json:"jamPadBookingId,omitempty" validate:"omitempty,gt=0"`
	EnrollmentID       *int64  `json:"enrollmentId,omitempty" validate:"omitempty,gt=0"`
	MarketplaceOrderID *int64  `json:"marketplaceOrderId,omitempty" validate:"omitempty,gt=0"`
}

// UpdatePaymentRequest HTTP запрос администратора на смену статуса
type UpdatePaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED REFUNDED"`
}

func (r *CreatePaymentRequest) toServiceRequest() *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		Type:               domain.PaymentType(r.Type),
		Method:             domain.PaymentMethod(r.Method),
		Amount:             r.Amount,
		StudioBookingID:    r.StudioBookingID,
		JamPadBookingID:    r.JamPadBookingID,
		EnrollmentID:       r.EnrollmentID,
		MarketplaceOrderID: r.MarketplaceOrderID,
	}
}
