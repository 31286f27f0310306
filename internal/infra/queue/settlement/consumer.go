package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler проводит платеж
type Handler func(ctx context.Context, paymentID int64) error

// Consumer читает очередь проведения платежей
type Consumer struct {
	url      string
	queue    string
	prefetch int
	handler  Handler
	logger   Logger

	// Ошибки, после которых сообщение не возвращается в очередь
	permanent []error
}

// NewConsumer создает консьюмер. permanent - ошибки обработчика, которые не имеет смысла повторять
func NewConsumer(url, queue string, prefetch int, handler Handler, logger Logger, permanent ...error) *Consumer {
	if prefetch <= 0 {
		prefetch = 10
	}
	return &Consumer{
		url:       url,
		queue:     queue,
		prefetch:  prefetch,
		handler:   handler,
		logger:    logger,
		permanent: permanent,
	}
}

// Run читает очередь до отмены контекста, переподключаясь с экспоненциальной задержкой
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("SettlementConsumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			c.logger.Info("SettlementConsumer: stopped")
			return
		}
		c.logger.Warn("SettlementConsumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		c.logger.Warn("SettlementConsumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.logger.Info("SettlementConsumer: consuming queue %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	ack, requeue := c.process(ctx, d.Body, d.Redelivered)
	if ack {
		_ = d.Ack(false)
		return
	}
	_ = d.Nack(false, requeue)
}

// process возвращает (ack, requeue). Временная ошибка повторяется один раз
func (c *Consumer) process(ctx context.Context, body []byte, redelivered bool) (bool, bool) {
	paymentID, err := decode(body)
	if err != nil {
		c.logger.Error("SettlementConsumer: drop message: %v", err)
		return false, false
	}

	if err := c.handler(ctx, paymentID); err != nil {
		for _, p := range c.permanent {
			if errors.Is(err, p) {
				c.logger.Warn("SettlementConsumer: payment id=%d dropped: %v", paymentID, err)
				return false, false
			}
		}
		c.logger.Error("SettlementConsumer: payment id=%d failed (redelivered=%t): %v", paymentID, redelivered, err)
		return false, !redelivered
	}

	return true, false
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
