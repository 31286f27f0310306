package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SoundInkube/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	start := req.Date.Add(10 * time.Hour)
	return &getAvailableSlots.Response{
		Date:       req.Date,
		VenueKind:  req.VenueKind,
		VenueID:    req.VenueID,
		HourlyRate: 40,
		Slots: []getAvailableSlots.Slot{
			{StartTime: start, EndTime: start.Add(time.Hour), Price: 40, Available: true},
		},
	}, nil
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/jampads/{venueId}/availability", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(domain.VenueJamPad, uc, logger.NewDiscard())

	rec := serve(h, "/jampads/5/availability?date=2025-11-04&slotMinutes=30")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.VenueJamPad, uc.got.VenueKind)
	assert.Equal(t, int64(5), uc.got.VenueID)
	assert.Equal(t, 30, uc.got.SlotMinutes)
	assert.Contains(t, rec.Body.String(), `"date":"2025-11-04"`)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"missing date", "/jampads/5/availability", nil, http.StatusBadRequest},
		{"bad date", "/jampads/5/availability?date=04.11.2025", nil, http.StatusBadRequest},
		{"bad slot", "/jampads/5/availability?date=2025-11-04&slotMinutes=-1", nil, http.StatusBadRequest},
		{"bad id", "/jampads/x/availability?date=2025-11-04", nil, http.StatusBadRequest},
		{"not found", "/jampads/5/availability?date=2025-11-04", getAvailableSlots.ErrVenueNotFound, http.StatusNotFound},
		{"past", "/jampads/5/availability?date=2025-11-04", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(domain.VenueJamPad, &stubUseCase{err: tt.err}, logger.NewDiscard())
			rec := serve(h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
