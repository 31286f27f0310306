package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrNoBrokers возвращается, когда не задан ни один брокер
	ErrNoBrokers = errors.New("events: at least one broker is required")

	// ErrEmptyTopic возвращается, когда не задан топик
	ErrEmptyTopic = errors.New("events: topic cannot be empty")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter часть kafka.Writer, которой пользуется публикатор
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события в один топик
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  Logger
}

// NewKafkaPublisher создает публикатор
func NewKafkaPublisher(brokers []string, topic string, logger Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...interface{}) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Error("kafka: "+msg, args...) }),
	}

	return newPublisher(writer, logger), nil
}

func newPublisher(writer messageWriter, logger Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  writer,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Publish отправляет событие. Таймаут ограничивает время ожидания брокера
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %s key=%s: %v", ErrPublish, event.Type, event.Key, err)
	}

	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
