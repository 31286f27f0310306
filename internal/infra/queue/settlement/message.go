// Package settlement очередь проведения платежей в RabbitMQ.
// Публикатор кладет ID платежа, консьюмер вызывает проведение
package settlement

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidMessage возвращается для сообщения без ID платежа
	ErrInvalidMessage = errors.New("settlement.queue: invalid message")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("settlement.queue: failed to publish")
)

// Message задача на проведение платежа
type Message struct {
	PaymentID int64 `json:"paymentId"`
}

func encode(paymentID int64) ([]byte, error) {
	if paymentID <= 0 {
		return nil, fmt.Errorf("%w: payment id=%d", ErrInvalidMessage, paymentID)
	}
	return json.Marshal(Message{PaymentID: paymentID})
}

func decode(body []byte) (int64, error) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.PaymentID <= 0 {
		return 0, fmt.Errorf("%w: payment id=%d", ErrInvalidMessage, msg.PaymentID)
	}
	return msg.PaymentID, nil
}
