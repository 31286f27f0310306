package venues

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues"
	"github.com/m04kA/SMC-SoundInkube/internal/service/venues/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные площадки"
)

// Handler обслуживает один вид площадок: /studios или /jampads
type Handler struct {
	kind    domain.VenueKind
	path    string
	service VenueService
	logger  Logger
}

func NewHandler(kind domain.VenueKind, service VenueService, logger Logger) *Handler {
	path := "/studios"
	if kind == domain.VenueJamPad {
		path = "/jampads"
	}
	return &Handler{
		kind:    kind,
		path:    path,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/studios | /api/v1/jampads
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST %s - Missing user ID", h.path)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateVenueRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	venue, err := h.service.Create(r.Context(), actor, req.toServiceRequest(h.kind))
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("POST %s - Role not allowed: user_id=%d, role=%s", h.path, actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("POST %s - Invalid input: %v", h.path, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST %s - Failed to create venue: user_id=%d, error=%v", h.path, actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST %s - Venue created successfully: id=%d, owner_id=%d", h.path, venue.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, venue)
}

// List GET /api/v1/studios | /api/v1/jampads
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET %s - Invalid pagination: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	ownerID, err := handlers.QueryInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET %s - Invalid ownerId: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListVenuesRequest{
		Kind:     h.kind,
		OwnerID:  ownerID,
		Location: handlers.QueryString(r, "location"),
		Page:     page,
	})
	if err != nil {
		h.logger.Error("GET %s - Failed to list venues: error=%v", h.path, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET %s - Venues retrieved: count=%d", h.path, len(result.Venues))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/studios/{venueId} | /api/v1/jampads/{venueId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET %s/{id} - Invalid venue ID: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	venue, err := h.service.GetByID(r.Context(), h.kind, id)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("GET %s/{id} - Venue not found: id=%d", h.path, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET %s/{id} - Failed to get venue: id=%d, error=%v", h.path, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, venue)
}

// Update PATCH /api/v1/studios/{venueId} | /api/v1/jampads/{venueId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "venueId")
	if err != nil {
		h.logger.Warn("PATCH %s/{id} - Invalid venue ID: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH %s/{id} - Missing user ID", h.path)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateVenueRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH %s/{id} - Invalid request body: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	venue, err := h.service.Update(r.Context(), actor, h.kind, id, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("PATCH %s/{id} - Venue not found: id=%d", h.path, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("PATCH %s/{id} - Access denied: id=%d, user_id=%d", h.path, id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("PATCH %s/{id} - Invalid input: %v", h.path, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH %s/{id} - Failed to update venue: id=%d, error=%v", h.path, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH %s/{id} - Venue updated successfully: id=%d, user_id=%d", h.path, id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, venue)
}

// Delete DELETE /api/v1/studios/{venueId} | /api/v1/jampads/{venueId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseID(r, "venueId")
	if err != nil {
		h.logger.Warn("DELETE %s/{id} - Invalid venue ID: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE %s/{id} - Missing user ID", h.path)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, h.kind, id); err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("DELETE %s/{id} - Venue not found: id=%d", h.path, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("DELETE %s/{id} - Access denied: id=%d, user_id=%d", h.path, id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE %s/{id} - Failed to delete venue: id=%d, error=%v", h.path, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE %s/{id} - Venue deleted successfully: id=%d, user_id=%d", h.path, id, actor.UserID)
	handlers.RespondNoContent(w)
}
