package payments_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/payments"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments"
	"github.com/m04kA/SMC-SoundInkube/internal/service/payments/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type mockService struct {
	createErr error
	lastReq   *models.CreatePaymentRequest
}

func (m *mockService) Create(ctx context.Context, actor domain.Actor, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	m.lastReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.PaymentResponse{ID: 1, Status: string(domain.PaymentCompleted)}, nil
}

func (m *mockService) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error) {
	return nil, payments.ErrPaymentNotFound
}

func (m *mockService) ListAll(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	if !actor.IsAdmin() {
		return nil, payments.ErrAccessDenied
	}
	return &models.PaymentListResponse{}, nil
}

func (m *mockService) ListByUser(ctx context.Context, actor domain.Actor, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	return &models.PaymentListResponse{}, nil
}

func (m *mockService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, status domain.PaymentStatus) (*models.PaymentResponse, error) {
	return nil, payments.ErrAccessDenied
}

var payer = domain.Actor{UserID: 8, Role: domain.RoleClient}

func router(svc *mockService) *mux.Router {
	h := paymentsHandler.NewHandler(svc, logger.NewDiscard())
	r := mux.NewRouter()
	r.HandleFunc("/payments", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/payments", h.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/payments/user", h.ListMine).Methods(http.MethodGet)
	r.HandleFunc("/payments/{paymentId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/payments/{paymentId}", h.UpdateStatus).Methods(http.MethodPatch)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body == "" {
		req.Body = http.NoBody
	}
	req = req.WithContext(middleware.WithActor(req.Context(), payer))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const body = `{"type":"STUDIO_BOOKING","method":"CARD","amount":100,"studioBookingId":4}`

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusCreated},
		{name: "wrong target", err: payments.ErrInvalidTarget, wantStatus: http.StatusBadRequest},
		{name: "missing target", err: payments.ErrTargetNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign target", err: payments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already paid", err: payments.ErrTargetNotPending, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{createErr: tt.err}
			rec := do(router(svc), http.MethodPost, "/payments", body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCreate_MapsRequest(t *testing.T) {
	svc := &mockService{}
	rec := do(router(svc), http.MethodPost, "/payments", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.PaymentStudioBooking, svc.lastReq.Type)
	assert.Equal(t, domain.MethodCard, svc.lastReq.Method)
	require.NotNil(t, svc.lastReq.StudioBookingID)
	assert.Equal(t, int64(4), *svc.lastReq.StudioBookingID)
}

func TestCreate_BodyValidation(t *testing.T) {
	r := router(&mockService{})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/payments", `{"type":"GIFT","method":"CARD","amount":1,"studioBookingId":4}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/payments", `{"type":"ENROLLMENT","method":"CARD","amount":0,"enrollmentId":4}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/payments", `{"type":"ENROLLMENT","method":"CASH","amount":5,"enrollmentId":4}`).Code)
}

func TestAdminRoutes(t *testing.T) {
	r := router(&mockService{})

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/payments", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/payments/user", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/payments/user?status=LOST", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPatch, "/payments/1", `{"status":"COMPLETED"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/payments/1", "").Code)
}
