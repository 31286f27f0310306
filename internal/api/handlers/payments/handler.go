package payments

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "платеж не найден"
	msgTargetNotFound     = "объект оплаты не найден"
	msgInvalidTarget      = "нужно указать ровно один объект оплаты, соответствующий типу платежа"
	msgTargetNotPending   = "объект оплаты не ожидает оплаты"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные платежа"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/payments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePaymentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.Create(r.Context(), actor, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidTarget):
			h.logger.Warn("POST /payments - Invalid target: user_id=%d, type=%s", actor.UserID, req.Type)
			handlers.RespondBadRequest(w, msgInvalidTarget)

		case errors.Is(err, payments.ErrTargetNotFound):
			h.logger.Warn("POST /payments - Target not found: user_id=%d, type=%s", actor.UserID, req.Type)
			handlers.RespondNotFound(w, msgTargetNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments - Target belongs to another user: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrTargetNotPending):
			h.logger.Warn("POST /payments - Target not pending: user_id=%d, type=%s", actor.UserID, req.Type)
			handlers.RespondBadRequest(w, msgTargetNotPending)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments - Failed to create payment: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment created: payment_id=%d, status=%s, user_id=%d", payment.ID, payment.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, payment)
}

// ListAll GET /api/v1/payments
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /payments", h.service.ListAll)
}

// ListMine GET /api/v1/payments/user
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /payments/user", h.service.ListByUser)
}

type listFunc func(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, fetch listFunc) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("%s - Invalid pagination: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListPaymentsRequest{Page: page}
	if status := handlers.QueryString(r, "status"); status != nil {
		s := domain.PaymentStatus(*status)
		if !s.IsValid() {
			h.logger.Warn("%s - Invalid status filter: %s", route, *status)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.Status = &s
	}

	result, err := fetch(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: user_id=%d", route, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed to list payments: user_id=%d, error=%v", route, actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/payments/{paymentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.ParseID(r, "paymentId")
	if err != nil {
		h.logger.Warn("GET /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /payments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	payment, err := h.service.GetByID(r.Context(), actor, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /payments/{id} - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /payments/{id} - Access denied: payment_id=%d, user_id=%d", paymentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/{id} - Failed to get payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, payment)
}

// UpdateStatus PATCH /api/v1/payments/{paymentId}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.ParseID(r, "paymentId")
	if err != nil {
		h.logger.Warn("PATCH /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /payments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePaymentRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /payments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.UpdateStatus(r.Context(), actor, paymentID, domain.PaymentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id} - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("PATCH /payments/{id} - Not admin: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("PATCH /payments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /payments/{id} - Failed to update payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id} - Payment updated: payment_id=%d, status=%s", paymentID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, payment)
}
