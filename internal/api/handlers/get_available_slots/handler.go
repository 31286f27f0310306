package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SoundInkube/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgInvalidSlot      = "некорректная длительность слота"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast       = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgVenueNotFound    = "площадка не найдена"
	msgInvalidSlotInput = "длительность слота должна быть от 15 до 240 минут и делить сутки"
)

type Handler struct {
	kind    domain.VenueKind
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(kind domain.VenueKind, useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		kind:    kind,
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/{studios|jampads}/{venueId}/availability
// Query params: date (required, YYYY-MM-DD), slotMinutes (optional, default 60)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.ParseID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	slotMinutes, err := handlers.QueryInt64(r, "slotMinutes")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var slot int64
	if slotMinutes != nil {
		slot = *slotMinutes
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(h.kind, venueID, dateStr, slot)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: %s id=%d", h.kind, venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlotInput)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to get slots: %s id=%d, error=%v", h.kind, venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/availability - Slots retrieved: %s id=%d, slots_count=%d", h.kind, venueID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
