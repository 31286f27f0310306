package middleware

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "soundinkube:http"

	// Номер поколения входит в ключ; запись в API увеличивает его, и старые ответы больше не читаются
	cacheGenerationKey = cacheKeyPrefix + ":generation"
)

// captureWriter копирует тело ответа, отдавая его клиенту
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (c *captureWriter) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *captureWriter) Write(b []byte) (int, error) {
	c.buf.Write(b)
	return c.ResponseWriter.Write(b)
}

// Cache кэширует успешные GET ответы публичных каталогов в Redis на ttl.
// Ошибки Redis не ломают запрос: он просто уходит в обработчик
func Cache(rdb redis.Cmdable, ttl time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil || ttl <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r, cacheGeneration(r, rdb, logger))
			if body, err := rdb.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(body)
				return
			} else if err != redis.Nil {
				logger.Warn("Cache: get key=%s failed: %v", key, err)
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status != http.StatusOK {
				return
			}
			if err := rdb.Set(r.Context(), key, cw.buf.Bytes(), ttl).Err(); err != nil {
				logger.Warn("Cache: set key=%s failed: %v", key, err)
			}
		})
	}
}

// InvalidateCache сбрасывает кэш каталогов после каждого успешного изменяющего запроса:
// отзывы меняют рейтинг площадок, школ и объявлений, остальные записи меняют сами каталоги
func InvalidateCache(rdb redis.Cmdable, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status < 200 || rec.status >= 300 {
				return
			}
			if err := rdb.Incr(r.Context(), cacheGenerationKey).Err(); err != nil {
				logger.Warn("Cache: invalidate after %s %s failed: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}

func cacheGeneration(r *http.Request, rdb redis.Cmdable, logger Logger) int64 {
	generation, err := rdb.Get(r.Context(), cacheGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		logger.Warn("Cache: get generation failed: %v", err)
	}
	return generation
}

func cacheKey(r *http.Request, generation int64) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%d:%x", cacheKeyPrefix, generation, sum[:])
}
