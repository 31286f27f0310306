package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

// memRedis реализует только Get, Set и Incr
type memRedis struct {
	redis.Cmdable
	data map[string][]byte
}

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return redis.NewIntResult(n, nil)
}

func TestCache_HitAfterMiss(t *testing.T) {
	rdb := &memRedis{data: map[string][]byte{}}
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"venues":[]}`))
	})
	h := middleware.Cache(rdb, time.Minute, logger.NewDiscard())(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/studios?skip=0", nil))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/studios?skip=0", nil))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"venues":[]}`, rec.Body.String())
	assert.Equal(t, 1, calls)

	// другой query - другой ключ
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/studios?skip=10", nil))
	assert.Equal(t, 2, calls)
}

func TestCache_SkipsErrorsAndNonGet(t *testing.T) {
	rdb := &memRedis{data: map[string][]byte{}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := middleware.Cache(rdb, time.Minute, logger.NewDiscard())(next)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/studios/99", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/studios", nil))
	assert.Empty(t, rdb.data)
}

func TestInvalidateCache_SuccessfulWriteDropsCachedReads(t *testing.T) {
	rdb := &memRedis{data: map[string][]byte{}}
	rating := "4.0"
	read := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"averageRating":` + rating + `}`))
	})
	cached := middleware.Cache(rdb, time.Minute, logger.NewDiscard())(read)

	status := http.StatusCreated
	write := middleware.InvalidateCache(rdb, logger.NewDiscard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		cached.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/studios/1", nil))
		return rec
	}

	get()
	assert.Equal(t, "HIT", get().Header().Get("X-Cache"))

	// Отклоненная запись кэш не трогает
	status = http.StatusBadRequest
	write.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/reviews", nil))
	assert.Equal(t, "HIT", get().Header().Get("X-Cache"))

	// Новый отзыв: следующий запрос идет в обработчик и видит новый рейтинг
	rating = "4.5"
	status = http.StatusCreated
	write.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/reviews", nil))
	rec := get()
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"averageRating":4.5}`, rec.Body.String())
}

func TestInvalidateCache_IgnoresReads(t *testing.T) {
	rdb := &memRedis{data: map[string][]byte{}}
	h := middleware.InvalidateCache(rdb, logger.NewDiscard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))
	assert.Empty(t, rdb.data)
}
