package domain

import "time"

// Message сообщение от отправителя получателю
type Message struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}

// OwnerIDs читать сообщение могут обе стороны
func (m *Message) OwnerIDs() []int64 {
	return []int64{m.SenderID, m.RecipientID}
}

// Conversation производное представление: последнее сообщение с собеседником
type Conversation struct {
	CounterpartID int64
	LastMessage   Message
	UnreadCount   int
}
