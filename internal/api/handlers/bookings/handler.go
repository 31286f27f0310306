package bookings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/create_booking"
	updateBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgPriceMismatch      = "цена не совпадает с расчетной: рассчитано %.2f, передано %.2f"
	msgStatusChange       = "изменить статус может только владелец площадки или администратор"
	msgCompletedImmutable = "завершенное бронирование нельзя изменить"
	msgNotEditable        = "время и цену можно менять только у бронирования в статусе PENDING"
	msgCompletedDelete    = "завершенное бронирование нельзя удалить"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSingleVenue        = "нужно указать ровно одно из полей studioId и jamPadId"
)

type Handler struct {
	create  CreateBookingUseCase
	update  UpdateBookingUseCase
	service BookingService
	logger  Logger
}

func NewHandler(create CreateBookingUseCase, update UpdateBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		create:  create,
		update:  update,
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !req.hasSingleVenue() {
		h.logger.Warn("POST /bookings - Exactly one of studioId/jamPadId required: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgSingleVenue)
		return
	}

	result, err := h.create.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		var mismatch *domain.PriceMismatchError
		switch {
		case errors.As(err, &mismatch):
			h.logger.Warn("POST /bookings - Price mismatch: user_id=%d, calculated=%.2f, provided=%.2f",
				userID, mismatch.Calculated, mismatch.Provided)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgPriceMismatch, mismatch.Calculated, mismatch.Provided))

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/v1/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	req := &models.ListBookingsRequest{Actor: actor, Page: page}
	if status := handlers.QueryString(r, "status"); status != nil {
		s := domain.BookingStatus(*status)
		req.Status = &s
	}
	if venueType := handlers.QueryString(r, "venueType"); venueType != nil {
		kind := domain.VenueKind(*venueType)
		req.VenueKind = &kind
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: user_id=%d, count=%d", actor.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/bookings/{bookingId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d, user_id=%d", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// Update PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.update.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		var mismatch *domain.PriceMismatchError
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrVenueNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Venue not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrStatusChangeDenied):
			h.logger.Warn("PATCH /bookings/{id} - Status change denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgStatusChange)

		case errors.As(err, &mismatch):
			h.logger.Warn("PATCH /bookings/{id} - Price mismatch: booking_id=%d, calculated=%.2f, provided=%.2f",
				bookingID, mismatch.Calculated, mismatch.Provided)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgPriceMismatch, mismatch.Calculated, mismatch.Provided))

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id} - Slot not available: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrCompletedImmutable):
			h.logger.Warn("PATCH /bookings/{id} - Completed booking is immutable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCompletedImmutable)

		case errors.Is(err, updateBooking.ErrNotEditable):
			h.logger.Warn("PATCH /bookings/{id} - Booking not editable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotEditable)

		case errors.Is(err, updateBooking.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /bookings/{id} - Invalid time range: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Remove(r.Context(), bookingID, actor); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCompletedImmutable):
			h.logger.Warn("DELETE /bookings/{id} - Completed booking: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCompletedDelete)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d, user_id=%d", bookingID, actor.UserID)
	handlers.RespondNoContent(w)
}
