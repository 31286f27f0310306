package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newPublisher(writer, logger.NewDiscard())

	booking := &domain.Booking{ID: 7, VenueKind: domain.VenueStudio, VenueID: 3, Status: domain.BookingPending}
	require.NoError(t, p.Publish(context.Background(), BookingCreated(booking)))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "booking-7", string(msg.Key))
	assert.Equal(t, TypeBookingCreated, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeBookingCreated, decoded["type"])
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := newPublisher(&fakeWriter{err: errors.New("broker down")}, logger.NewDiscard())

	err := p.Publish(context.Background(), ReviewAggregated(
		domain.ReviewTarget{Kind: domain.ReviewStudio, ID: 1},
		domain.RatingSummary{Average: 4, Count: 3},
	))

	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "events", logger.NewDiscard())
	assert.ErrorIs(t, err, ErrNoBrokers)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", logger.NewDiscard())
	assert.ErrorIs(t, err, ErrEmptyTopic)
}
