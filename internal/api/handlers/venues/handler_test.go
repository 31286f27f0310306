package venues_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	venuesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/venues"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memVenues struct {
	items map[int64]*domain.Venue
}

func (m *memVenues) Create(ctx context.Context, v *domain.Venue) (*domain.Venue, error) {
	v.ID = int64(len(m.items) + 1)
	cp := *v
	m.items[v.ID] = &cp
	return v, nil
}

func (m *memVenues) GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*domain.Venue, error) {
	v, ok := m.items[id]
	if !ok || v.Kind != kind {
		return nil, venueRepo.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVenues) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, v := range m.items {
		if v.Kind == filter.Kind {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVenues) Update(ctx context.Context, v *domain.Venue) error {
	cp := *v
	m.items[v.ID] = &cp
	return nil
}

func (m *memVenues) Delete(ctx context.Context, kind domain.VenueKind, id int64) error {
	delete(m.items, id)
	return nil
}

var (
	owner    = domain.Actor{UserID: 1, Role: domain.RoleStudioOwner}
	stranger = domain.Actor{UserID: 2, Role: domain.RoleStudioOwner}
	business = domain.Actor{UserID: 3, Role: domain.RoleBusiness}
	admin    = domain.Actor{UserID: 99, Role: domain.RoleAdmin}
)

func setup() (*mux.Router, *memVenues) {
	repo := &memVenues{items: map[int64]*domain.Venue{
		1: {ID: 1, Kind: domain.VenueStudio, OwnerID: owner.UserID, Name: "Room A", Location: "Berlin", HourlyRate: 50},
	}}
	svc := venues.NewService(repo, logger.NewDiscard())

	r := mux.NewRouter()
	for _, h := range []struct {
		prefix string
		kind   domain.VenueKind
	}{{"/studios", domain.VenueStudio}, {"/jampads", domain.VenueJamPad}} {
		handler := venuesHandler.NewHandler(h.kind, svc, logger.NewDiscard())
		r.HandleFunc(h.prefix, handler.Create).Methods(http.MethodPost)
		r.HandleFunc(h.prefix, handler.List).Methods(http.MethodGet)
		r.HandleFunc(h.prefix+"/{venueId}", handler.Get).Methods(http.MethodGet)
		r.HandleFunc(h.prefix+"/{venueId}", handler.Update).Methods(http.MethodPatch)
		r.HandleFunc(h.prefix+"/{venueId}", handler.Delete).Methods(http.MethodDelete)
	}
	return r, repo
}

func do(r http.Handler, method, path, body string, actor domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body == "" {
		req.Body = http.NoBody
	}
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	r, repo := setup()

	rec := do(r, http.MethodPatch, "/studios/1", `{"hourlyRate":10}`, stranger)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 50.0, repo.items[1].HourlyRate)

	rec = do(r, http.MethodPatch, "/studios/1", `{"hourlyRate":60}`, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 60.0, repo.items[1].HourlyRate)

	rec = do(r, http.MethodPatch, "/studios/1", `{"name":"Admin rename"}`, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreate_RoleGating(t *testing.T) {
	r, _ := setup()
	body := `{"name":"Garage","location":"Hamburg","hourlyRate":15}`

	// бизнес может создать джем-пад, но не студию
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/studios", body, business).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/jampads", body, business).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/jampads", body, domain.Actor{UserID: 4, Role: domain.RoleClient}).Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/studios", `{"location":"x"}`, owner).Code)
}

func TestGet_KindIsolation(t *testing.T) {
	r, _ := setup()

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/studios/1", "", stranger).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/jampads/1", "", stranger).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/studios/x", "", stranger).Code)
}

func TestDelete_OwnerOnly(t *testing.T) {
	r, repo := setup()

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/studios/1", "", stranger).Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/studios/1", "", owner).Code)
	assert.Empty(t, repo.items)
}
