// Package middleware содержит HTTP middleware сервиса: аутентификацию, метрики, кэш и recovery
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgForbidden    = "недостаточно прав"
)

var (
	// ErrMissingToken заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("middleware: missing bearer token")

	// ErrInvalidToken подпись, срок действия или claims токена некорректны
	ErrInvalidToken = errors.New("middleware: invalid token")
)

type actorKey struct{}

// Authenticator проверяет JWT, выпущенные внешним сервисом авторизации (HS256, claims sub и role)
type Authenticator struct {
	secret []byte
	logger Logger
}

func NewAuthenticator(secret string, logger Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), logger: logger}
}

// Auth пропускает только запросы с валидным токеном
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.actorFromRequest(r)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, ErrMissingToken) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireRole пропускает только пользователей с одной из ролей. Ставится после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !actor.HasRole(roles...) {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor кладет пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}

func (a *Authenticator) actorFromRequest(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return domain.Actor{}, ErrMissingToken
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := subjectID(claims["sub"])
	if err != nil {
		return domain.Actor{}, err
	}

	roleClaim, _ := claims["role"].(string)
	role := domain.Role(strings.ToUpper(roleClaim))
	if !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, roleClaim)
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

// subjectID sub может прийти числом или строкой
func subjectID(sub interface{}) (int64, error) {
	switch v := sub.(type) {
	case float64:
		if v > 0 && v == float64(int64(v)) {
			return int64(v), nil
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: bad sub claim", ErrInvalidToken)
}
