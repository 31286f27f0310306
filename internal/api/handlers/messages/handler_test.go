package messages_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messagesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/messages"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type mockService struct {
	sendErr  error
	page     domain.Page
	readErr  error
	threadOf int64
}

func (m *mockService) Send(ctx context.Context, actor domain.Actor, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &models.MessageResponse{ID: 1, SenderID: actor.UserID, RecipientID: req.RecipientID, Content: req.Content}, nil
}

func (m *mockService) Conversations(ctx context.Context, actor domain.Actor) ([]models.ConversationResponse, error) {
	return []models.ConversationResponse{}, nil
}

func (m *mockService) Thread(ctx context.Context, actor domain.Actor, counterpartID int64, page domain.Page) (*models.ThreadResponse, error) {
	m.threadOf = counterpartID
	m.page = page
	return &models.ThreadResponse{Messages: []models.MessageResponse{}, Skip: page.Skip, Take: page.Take}, nil
}

func (m *mockService) MarkRead(ctx context.Context, actor domain.Actor, id int64) (*models.MessageResponse, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return &models.MessageResponse{ID: id, IsRead: true}, nil
}

func (m *mockService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return messages.ErrMessageNotFound
}

var sender = domain.Actor{UserID: 3, Role: domain.RoleMusicProfessional}

func router(svc *mockService) *mux.Router {
	h := messagesHandler.NewHandler(svc, logger.NewDiscard())
	r := mux.NewRouter()
	r.HandleFunc("/messages", h.Send).Methods(http.MethodPost)
	r.HandleFunc("/messages/conversations", h.Conversations).Methods(http.MethodGet)
	r.HandleFunc("/messages/conversation/{userId}", h.Thread).Methods(http.MethodGet)
	r.HandleFunc("/messages/{messageId}/read", h.MarkRead).Methods(http.MethodPatch)
	r.HandleFunc("/messages/{messageId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), sender))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSend(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		sendErr error
		actor   bool
		status  int
	}{
		{"created", `{"recipientId":4,"content":"привет"}`, nil, true, http.StatusCreated},
		{"unauthorized", `{"recipientId":4,"content":"привет"}`, nil, false, http.StatusUnauthorized},
		{"empty content", `{"recipientId":4,"content":""}`, nil, true, http.StatusBadRequest},
		{"unknown field", `{"recipientId":4,"content":"a","extra":1}`, nil, true, http.StatusBadRequest},
		{"self", `{"recipientId":3,"content":"a"}`, messages.ErrSelfMessage, true, http.StatusBadRequest},
		{"no recipient", `{"recipientId":99,"content":"a"}`, messages.ErrRecipientNotFound, true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router(&mockService{sendErr: tt.sendErr}), http.MethodPost, "/messages", tt.body, tt.actor)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestThread_PassesPagination(t *testing.T) {
	svc := &mockService{}

	rec := do(router(svc), http.MethodGet, "/messages/conversation/4?skip=20&take=5", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.threadOf)
	assert.Equal(t, domain.Page{Skip: 20, Take: 5}, svc.page)
}

func TestMarkRead_NotRecipient(t *testing.T) {
	rec := do(router(&mockService{readErr: messages.ErrAccessDenied}), http.MethodPatch, "/messages/7/read", "", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDelete_NotFound(t *testing.T) {
	rec := do(router(&mockService{}), http.MethodDelete, "/messages/7", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
