package messages

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SoundInkube/internal/api/handlers"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMessageID   = "некорректный ID сообщения"
	msgInvalidUserID      = "некорректный ID собеседника"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сообщение не найдено"
	msgRecipientNotFound  = "получатель не найден"
	msgSelfMessage        = "нельзя отправить сообщение самому себе"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "сообщение должно быть от 1 до 2000 символов"
)

type Handler struct {
	service MessageService
	logger  Logger
}

func NewHandler(service MessageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Send POST /api/v1/messages
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /messages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SendMessageRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	message, err := h.service.Send(r.Context(), actor, &models.SendMessageRequest{
		RecipientID: req.RecipientID,
		Content:     req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrRecipientNotFound):
			h.logger.Warn("POST /messages - Recipient not found: recipient_id=%d", req.RecipientID)
			handlers.RespondNotFound(w, msgRecipientNotFound)

		case errors.Is(err, messages.ErrSelfMessage):
			h.logger.Warn("POST /messages - Self message: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgSelfMessage)

		case errors.Is(err, messages.ErrInvalidInput):
			h.logger.Warn("POST /messages - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /messages - Failed to send message: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /messages - Message sent: message_id=%d, from=%d, to=%d", message.ID, actor.UserID, req.RecipientID)
	handlers.RespondJSON(w, http.StatusCreated, message)
}

// Conversations GET /api/v1/messages/conversations
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /messages/conversations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	conversations, err := h.service.Conversations(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /messages/conversations - Failed: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, conversations)
}

// Thread GET /api/v1/messages/conversation/{userId}
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	counterpartID, err := handlers.ParseID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /messages/conversation/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /messages/conversation/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, err := handlers.ParsePage(r)
	if err != nil {
		h.logger.Warn("GET /messages/conversation/{id} - Invalid pagination: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	thread, err := h.service.Thread(r.Context(), actor, counterpartID, page)
	if err != nil {
		h.logger.Error("GET /messages/conversation/{id} - Failed: user_id=%d, counterpart=%d, error=%v",
			actor.UserID, counterpartID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, thread)
}

// MarkRead PATCH /api/v1/messages/{messageId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID, err := handlers.ParseID(r, "messageId")
	if err != nil {
		h.logger.Warn("PATCH /messages/{id}/read - Invalid message ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMessageID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /messages/{id}/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	message, err := h.service.MarkRead(r.Context(), actor, messageID)
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrMessageNotFound):
			h.logger.Warn("PATCH /messages/{id}/read - Message not found: message_id=%d", messageID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, messages.ErrAccessDenied):
			h.logger.Warn("PATCH /messages/{id}/read - Not recipient: message_id=%d, user_id=%d", messageID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /messages/{id}/read - Failed: message_id=%d, error=%v", messageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, message)
}

// Delete DELETE /api/v1/messages/{messageId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	messageID, err := handlers.ParseID(r, "messageId")
	if err != nil {
		h.logger.Warn("DELETE /messages/{id} - Invalid message ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMessageID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /messages/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, messageID); err != nil {
		switch {
		case errors.Is(err, messages.ErrMessageNotFound):
			h.logger.Warn("DELETE /messages/{id} - Message not found: message_id=%d", messageID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, messages.ErrAccessDenied):
			h.logger.Warn("DELETE /messages/{id} - Access denied: message_id=%d, user_id=%d", messageID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /messages/{id} - Failed: message_id=%d, error=%v", messageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /messages/{id} - Message deleted: message_id=%d", messageID)
	handlers.RespondNoContent(w)
}
