package messages

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// MessageRepository интерфейс репозитория сообщений
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListConversations(ctx context.Context, userID int64) ([]*domain.Conversation, error)
	ListThread(ctx context.Context, userID, counterpartID int64, page domain.Page) ([]*domain.Message, error)
	MarkThreadRead(ctx context.Context, userID, counterpartID int64) error
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс чтения пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
