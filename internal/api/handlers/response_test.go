package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

func TestRespondError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondForbidden(rec, "доступ запрещен")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, handlers.ErrorResponse{Code: http.StatusForbidden, Message: "доступ запрещен"}, body)
}

func TestDecodeAndValidate(t *testing.T) {
	type payload struct {
		Name string  `json:"name" validate:"required"`
		Rate float64 `json:"rate" validate:"gte=0"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Room A","rate":25}`},
		{name: "missing required", body: `{"rate":25}`, wantErr: true},
		{name: "negative rate", body: `{"name":"x","rate":-1}`, wantErr: true},
		{name: "unknown field", body: `{"name":"x","foo":1}`, wantErr: true},
		{name: "broken json", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := handlers.DecodeAndValidate(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	var dst map[string]interface{}
	assert.ErrorIs(t, handlers.DecodeJSON(req, &dst), handlers.ErrEmptyBody)
}

func TestParseID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := handlers.ParseID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "-1"})
	_, err = handlers.ParseID(req, "id")
	assert.ErrorIs(t, err, handlers.ErrInvalidParam)
}

func TestParsePage(t *testing.T) {
	page, err := handlers.ParsePage(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Skip: 0, Take: 10}, page)

	page, err = handlers.ParsePage(httptest.NewRequest(http.MethodGet, "/?skip=20&take=500", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Skip: 20, Take: domain.MaxTake}, page)

	_, err = handlers.ParsePage(httptest.NewRequest(http.MethodGet, "/?skip=abc", nil))
	assert.ErrorIs(t, err, handlers.ErrInvalidParam)
}
