package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модели

// CreatePaymentRequest запрос на создание платежа.
// Из четырех полей цели должно быть задано ровно одно, соответствующее Type
type CreatePaymentRequest struct {
	Type               domain.PaymentType
	Method             domain.PaymentMethod
	Amount             float64
	StudioBookingID    *int64
	JamPadBookingID    *int64
	EnrollmentID       *int64
	MarketplaceOrderID *int64
}

// ListPaymentsRequest запрос списка платежей
type ListPaymentsRequest struct {
	Status *domain.PaymentStatus
	Page   domain.Page
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"userId"`
	Type               string     `json:"type"`
	Method             string     `json:"method"`
	Amount             float64    `json:"amount"`
	Status             string     `json:"status"`
	TransactionID      *string    `json:"transactionId,omitempty"`
	ProcessedAt        *time.Time `json:"processedAt,omitempty"`
	StudioBookingID    *int64     `json:"studioBookingId,omitempty"`
	JamPadBookingID    *int64     `json:"jamPadBookingId,omitempty"`
	EnrollmentID       *int64     `json:"enrollmentId,omitempty"`
	MarketplaceOrderID *int64     `json:"marketplaceOrderId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Skip     int               `json:"skip"`
	Take     int               `json:"take"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Type:          string(p.Type),
		Method:        string(p.Method),
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		ProcessedAt:   p.ProcessedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	targetID := p.Target.ID
	switch p.Target.Type {
	case domain.PaymentStudioBooking:
		resp.StudioBookingID = &targetID
	case domain.PaymentJamPadBooking:
		resp.JamPadBookingID = &targetID
	case domain.PaymentEnrollment:
		resp.EnrollmentID = &targetID
	case domain.PaymentMarketplaceOrder:
		resp.MarketplaceOrderID = &targetID
	}

	return resp
}

// FromDomainPaymentList конвертирует список платежей
func FromDomainPaymentList(payments []*domain.Payment, page domain.Page) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
		Skip:     page.Skip,
		Take:     page.Take,
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, *FromDomainPayment(p))
	}
	return resp
}
