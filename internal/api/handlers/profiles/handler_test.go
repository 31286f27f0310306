package profiles_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profilesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/profiles"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type mockService struct {
	gotUserID int64
	gotReq    *models.ProfileRequest
}

func (m *mockService) check(actor domain.Actor, userID int64) error {
	m.gotUserID = userID
	if actor.UserID != userID && !actor.IsAdmin() {
		return profiles.ErrAccessDenied
	}
	if userID == 404 {
		return profiles.ErrProfileNotFound
	}
	return nil
}

func (m *mockService) Get(ctx context.Context, actor domain.Actor, userID int64) (*models.ProfileResponse, error) {
	if err := m.check(actor, userID); err != nil {
		return nil, err
	}
	return &models.ProfileResponse{UserID: userID}, nil
}

func (m *mockService) Replace(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	m.gotReq = req
	if err := m.check(actor, userID); err != nil {
		return nil, err
	}
	return &models.ProfileResponse{UserID: userID}, nil
}

func (m *mockService) Patch(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error) {
	return m.Replace(ctx, actor, userID, req)
}

func router(svc *mockService) *mux.Router {
	h := profilesHandler.NewHandler(svc, logger.NewDiscard())
	r := mux.NewRouter()
	r.HandleFunc("/profiles/me", h.GetMine).Methods(http.MethodGet)
	r.HandleFunc("/profiles/me", h.PutMine).Methods(http.MethodPut)
	r.HandleFunc("/profiles/{userId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/profiles/{userId}", h.Patch).Methods(http.MethodPatch)
	return r
}

func do(r http.Handler, actor domain.Actor, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var (
	owner = domain.Actor{UserID: 5, Role: domain.RoleMusicProfessional}
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func TestGetMine_UsesCaller(t *testing.T) {
	svc := &mockService{}

	rec := do(router(svc), owner, http.MethodGet, "/profiles/me", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotUserID)
}

func TestPutMine_PassesFields(t *testing.T) {
	svc := &mockService{}
	body := `{"bio":"гитарист","specialties":["guitar"],"hourlyRate":25,"socialLinks":{"site":"https://example.com"}}`

	rec := do(router(svc), owner, http.MethodPut, "/profiles/me", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "гитарист", *svc.gotReq.Bio)
	assert.Equal(t, []string{"guitar"}, svc.gotReq.Specialties)
	assert.Equal(t, "https://example.com", svc.gotReq.SocialLinks["site"])
}

func TestProfileAccess(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Actor
		method string
		path   string
		body   string
		status int
	}{
		{"stranger reads", owner, http.MethodGet, "/profiles/6", "", http.StatusForbidden},
		{"admin reads", admin, http.MethodGet, "/profiles/6", "", http.StatusOK},
		{"stranger patches", owner, http.MethodPatch, "/profiles/6", `{"bio":"x"}`, http.StatusForbidden},
		{"admin patches missing", admin, http.MethodPatch, "/profiles/404", `{"bio":"x"}`, http.StatusNotFound},
		{"negative rate", owner, http.MethodPatch, "/profiles/5", `{"hourlyRate":-1}`, http.StatusBadRequest},
		{"bad link", owner, http.MethodPatch, "/profiles/5", `{"socialLinks":{"site":"not a url"}}`, http.StatusBadRequest},
		{"bad id", owner, http.MethodGet, "/profiles/abc", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router(&mockService{}), tt.actor, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
