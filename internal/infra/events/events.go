// Package events публикует доменные события в Kafka.
// Ошибка публикации не должна ломать запрос: вызывающая сторона только логирует её
package events

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Типы событий
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypePaymentCompleted = "payment.completed"
	TypeReviewAggregated = "review.aggregated"
)

// Event доменное событие. Key определяет партицию (события одной сущности упорядочены)
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type bookingPayload struct {
	BookingID  int64     `json:"bookingId"`
	VenueKind  string    `json:"venueKind"`
	VenueID    int64     `json:"venueId"`
	UserID     int64     `json:"userId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
}

type paymentPayload struct {
	PaymentID     int64   `json:"paymentId"`
	UserID        int64   `json:"userId"`
	Type          string  `json:"type"`
	TargetID      int64   `json:"targetId"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId,omitempty"`
}

type ratingPayload struct {
	TargetKind    string  `json:"targetKind"`
	TargetID      int64   `json:"targetId"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// BookingCreated событие создания бронирования
func BookingCreated(b *domain.Booking) Event {
	return bookingEvent(TypeBookingCreated, b)
}

// BookingConfirmed событие подтверждения бронирования после оплаты или владельцем
func BookingConfirmed(b *domain.Booking) Event {
	return bookingEvent(TypeBookingConfirmed, b)
}

func bookingEvent(eventType string, b *domain.Booking) Event {
	return Event{
		Type:       eventType,
		Key:        "booking-" + strconv.FormatInt(b.ID, 10),
		OccurredAt: time.Now().UTC(),
		Payload: bookingPayload{
			BookingID:  b.ID,
			VenueKind:  string(b.VenueKind),
			VenueID:    b.VenueID,
			UserID:     b.UserID,
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			TotalPrice: b.TotalPrice,
			Status:     string(b.Status),
		},
	}
}

// PaymentCompleted событие проведения платежа
func PaymentCompleted(p *domain.Payment) Event {
	payload := paymentPayload{
		PaymentID: p.ID,
		UserID:    p.UserID,
		Type:      string(p.Type),
		TargetID:  p.Target.ID,
		Amount:    p.Amount,
	}
	if p.TransactionID != nil {
		payload.TransactionID = *p.TransactionID
	}

	return Event{
		Type:       TypePaymentCompleted,
		Key:        "payment-" + strconv.FormatInt(p.ID, 10),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// ReviewAggregated событие пересчета рейтинга сущности
func ReviewAggregated(target domain.ReviewTarget, summary domain.RatingSummary) Event {
	return Event{
		Type:       TypeReviewAggregated,
		Key:        string(target.Kind) + "-" + strconv.FormatInt(target.ID, 10),
		OccurredAt: time.Now().UTC(),
		Payload: ratingPayload{
			TargetKind:    string(target.Kind),
			TargetID:      target.ID,
			AverageRating: summary.Average,
			TotalReviews:  summary.Count,
		},
	}
}
