package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles"
	"github.com/m04kA/SMC-SoundInkube/internal/service/profiles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProfileNotFound    = "профиль не найден"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные профиля"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetMine GET /api/v1/profiles/me
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /profiles/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	h.get(w, r, "GET /profiles/me", actor, actor.UserID)
}

// Get GET /api/v1/profiles/{userId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /profiles/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /profiles/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	h.get(w, r, "GET /profiles/{id}", actor, userID)
}

// PutMine PUT /api/v1/profiles/me
func (h *Handler) PutMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /profiles/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	h.write(w, r, "PUT /profiles/me", actor, actor.UserID, h.service.Replace)
}

// Patch PATCH /api/v1/profiles/{userId}
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.ParseID(r, "userId")
	if err != nil {
		h.logger.Warn("PATCH /profiles/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /profiles/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	h.write(w, r, "PATCH /profiles/{id}", actor, userID, h.service.Patch)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, route string, actor domain.Actor, userID int64) {
	profile, err := h.service.Get(r.Context(), actor, userID)
	if err != nil {
		h.respondError(w, route, actor, userID, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, profile)
}

type writeFunc func(ctx context.Context, actor domain.Actor, userID int64, req *models.ProfileRequest) (*models.ProfileResponse, error)

func (h *Handler) write(w http.ResponseWriter, r *http.Request, route string, actor domain.Actor, userID int64, save writeFunc) {
	var req ProfileRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := save(r.Context(), actor, userID, req.toServiceRequest())
	if err != nil {
		h.respondError(w, route, actor, userID, err)
		return
	}

	h.logger.Info("%s - Profile saved: user_id=%d, by=%d", route, userID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, actor domain.Actor, userID int64, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		h.logger.Warn("%s - Profile not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgProfileNotFound)

	case errors.Is(err, profiles.ErrUserNotFound):
		h.logger.Warn("%s - User not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, profiles.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d, by=%d", route, userID, actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, profiles.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
