package models

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	RecipientID int64
	Content     string
}

// MessageResponse ответ с сообщением
type MessageResponse struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"senderId"`
	RecipientID int64     `json:"recipientId"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ConversationResponse собеседник, последнее сообщение и число непрочитанных
type ConversationResponse struct {
	UserID      int64           `json:"userId"`
	LastMessage MessageResponse `json:"lastMessage"`
	UnreadCount int             `json:"unreadCount"`
}

// ThreadResponse переписка с одним собеседником
type ThreadResponse struct {
	Messages []MessageResponse `json:"messages"`
	Skip     int               `json:"skip"`
	Take     int               `json:"take"`
}

// FromDomainMessage конвертирует domain модель в DTO
func FromDomainMessage(m *domain.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomainConversations конвертирует список диалогов
func FromDomainConversations(conversations []*domain.Conversation) []ConversationResponse {
	resp := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		resp = append(resp, ConversationResponse{
			UserID:      c.CounterpartID,
			LastMessage: *FromDomainMessage(&c.LastMessage),
			UnreadCount: c.UnreadCount,
		})
	}
	return resp
}

// FromDomainThread конвертирует переписку
func FromDomainThread(messages []*domain.Message, page domain.Page) *ThreadResponse {
	resp := &ThreadResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
		Skip:     page.Skip,
		Take:     page.Take,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, *FromDomainMessage(m))
	}
	return resp
}
