package messages

// SendMessageRequest HTTP запрос на отправку сообщения
type SendMessageRequest struct {
	RecipientID int64  `json:"recipientId" validate:"required,gt=0"`
	Content     string `json:"content" validate:"required,max=2000"`
}
