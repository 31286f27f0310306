// Package scheduler фоновые периодические задачи
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// BookingCompleter переводит закончившиеся бронирования в COMPLETED
type BookingCompleter interface {
	CompleteFinished(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler обертка над gocron
type Scheduler struct {
	s      gocron.Scheduler
	logger Logger
}

// New создает планировщик
func New(logger Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{s: s, logger: logger}, nil
}

// AddBookingCompletion регистрирует задачу автозавершения бронирований.
// Запуски не накладываются друг на друга: пока идет предыдущий, следующий пропускается
func (s *Scheduler) AddBookingCompletion(interval time.Duration, completer BookingCompleter) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			RunBookingCompletion(ctx, completer, s.logger)
		}),
		gocron.WithName("booking-completion"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register booking completion job: %w", err)
	}
	return nil
}

// Start запускает задачи
func (s *Scheduler) Start() {
	s.s.Start()
	s.logger.Info("Scheduler started")
}

// Shutdown останавливает планировщик и дожидается текущих задач
func (s *Scheduler) Shutdown() error {
	return s.s.Shutdown()
}

// RunBookingCompletion один проход автозавершения
func RunBookingCompletion(ctx context.Context, completer BookingCompleter, logger Logger) {
	n, err := completer.CompleteFinished(ctx)
	if err != nil {
		logger.Error("BookingCompletion: failed: %v", err)
		return
	}
	if n > 0 {
		logger.Info("BookingCompletion: %d bookings completed", n)
	}
}
