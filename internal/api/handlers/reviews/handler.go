package reviews

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/reviews"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidReviewID    = "некорректный ID отзыва"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "отзыв не найден"
	msgTargetNotFound     = "объект отзыва не найден"
	msgInvalidTarget      = "нужно указать ровно один объект отзыва"
	msgNoInteraction      = "отзыв можно оставить только после завершенного бронирования, обучения или покупки"
	msgDuplicateReview    = "вы уже оставили отзыв на этот объект"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "оценка должна быть от 1 до 5, комментарий от 10 до 500 символов"
)

// Handler HTTP слой отзывов. rating и comment проверяет сервис
type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.service.Create(r.Context(), actor, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidTarget):
			h.logger.Warn("POST /reviews - Invalid target: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgInvalidTarget)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /reviews - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reviews.ErrTargetNotFound):
			h.logger.Warn("POST /reviews - Target not found: user_id=%d", actor.UserID)
			handlers.RespondNotFound(w, msgTargetNotFound)

		case errors.Is(err, reviews.ErrNoCompletedInteraction):
			h.logger.Warn("POST /reviews - No completed interaction: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgNoInteraction)

		case errors.Is(err, reviews.ErrDuplicateReview):
			h.logger.Warn("POST /reviews - Duplicate review: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgDuplicateReview)

		default:
			h.logger.Error("POST /reviews - Failed to create review: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review created successfully: review_id=%d, author_id=%d", review.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, review)
}

// List GET /api/v1/reviews?studioId=|jamPadId=|musicSchoolId=|listingId=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var ids [4]*int64
	for i, name := range []string{"studioId", "jamPadId", "musicSchoolId", "listingId"} {
		id, err := handlers.QueryInt64(r, name)
		if err != nil {
			h.logger.Warn("GET /reviews - Invalid %s: %v", name, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		ids[i] = id
	}

	target, err := domain.ReviewTargetFromIDs(ids[0], ids[1], ids[2], ids[3])
	if err != nil {
		h.logger.Warn("GET /reviews - Invalid target: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTarget)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /reviews - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.ListByTarget(r.Context(), target, page)
	if err != nil {
		h.logger.Error("GET /reviews - Failed to list reviews: %s id=%d, error=%v", target.Kind, target.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/reviews/{reviewId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.ParseID(r, "reviewId")
	if err != nil {
		h.logger.Warn("GET /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	review, err := h.service.GetByID(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("GET /reviews/{id} - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reviews/{id} - Failed to get review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, review)
}

// Update PATCH /api/v1/reviews/{reviewId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.ParseID(r, "reviewId")
	if err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reviews/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.service.Update(r.Context(), actor, reviewID, req.toServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /reviews/{id} - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PATCH /reviews/{id} - Access denied: review_id=%d, user_id=%d", reviewID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("PATCH /reviews/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reviews/{id} - Failed to update review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reviews/{id} - Review updated successfully: review_id=%d", reviewID)
	handlers.RespondJSON(w, http.StatusOK, review)
}

// Delete DELETE /api/v1/reviews/{reviewId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.ParseID(r, "reviewId")
	if err != nil {
		h.logger.Warn("DELETE /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reviews/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, reviewID); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("DELETE /reviews/{id} - Review not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("DELETE /reviews/{id} - Access denied: review_id=%d, user_id=%d", reviewID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /reviews/{id} - Failed to delete review: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reviews/{id} - Review deleted successfully: review_id=%d", reviewID)
	handlers.RespondNoContent(w)
}
