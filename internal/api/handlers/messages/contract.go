package messages

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages/models"
)

type MessageService interface {
	Send(ctx context.Context, actor domain.Actor, req *models.SendMessageRequest) (*models.MessageResponse, error)
	Conversations(ctx context.Context, actor domain.Actor) ([]models.ConversationResponse, error)
	Thread(ctx context.Context, actor domain.Actor, counterpartID int64, page domain.Page) (*models.ThreadResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id int64) (*models.MessageResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
