package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	messageRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/message"
	userRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/user"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages/models"
)

// Service сервис личных сообщений
type Service struct {
	messageRepo MessageRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сообщений
func NewService(messageRepo MessageRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Send отправляет сообщение существующему пользователю
func (s *Service) Send(ctx context.Context, actor domain.Actor, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	s.logger.Info("Send: from user=%d to user=%d", actor.UserID, req.RecipientID)

	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: content must be 1 to %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}
	if req.RecipientID == actor.UserID {
		s.logger.Warn("Send: user=%d tried to message themselves", actor.UserID)
		return nil, ErrSelfMessage
	}

	if _, err := s.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Send: recipient id=%d not found", req.RecipientID)
			return nil, ErrRecipientNotFound
		}
		s.logger.Error("Send: failed to get recipient id=%d: %v", req.RecipientID, err)
		return nil, fmt.Errorf("%w: Send - recipient: %w", ErrInternal, err)
	}

	message, err := s.messageRepo.Create(ctx, &domain.Message{
		SenderID:    actor.UserID,
		RecipientID: req.RecipientID,
		Content:     content,
	})
	if err != nil {
		s.logger.Error("Send: repository error: %v", err)
		return nil, fmt.Errorf("%w: Send - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainMessage(message), nil
}

// Conversations диалоги вызывающего, свежие первыми
func (s *Service) Conversations(ctx context.Context, actor domain.Actor) ([]models.ConversationResponse, error) {
	conversations, err := s.messageRepo.ListConversations(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("Conversations: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Conversations - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainConversations(conversations), nil
}

// Thread переписка с собеседником. Входящие сообщения помечаются прочитанными
func (s *Service) Thread(ctx context.Context, actor domain.Actor, counterpartID int64, page domain.Page) (*models.ThreadResponse, error) {
	page = page.Normalize()

	messages, err := s.messageRepo.ListThread(ctx, actor.UserID, counterpartID, page)
	if err != nil {
		s.logger.Error("Thread: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Thread - repository error: %w", ErrInternal, err)
	}

	if err := s.messageRepo.MarkThreadRead(ctx, actor.UserID, counterpartID); err != nil {
		s.logger.Warn("Thread: failed to mark thread with user=%d as read: %v", counterpartID, err)
	}

	return models.FromDomainThread(messages, page), nil
}

// MarkRead помечает сообщение прочитанным. Только получатель
func (s *Service) MarkRead(ctx context.Context, actor domain.Actor, id int64) (*models.MessageResponse, error) {
	message, err := s.getMessage(ctx, id, "MarkRead")
	if err != nil {
		return nil, err
	}

	if message.RecipientID != actor.UserID {
		s.logger.Warn("MarkRead: user=%d is not recipient of message id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if err := s.messageRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, messageRepo.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		s.logger.Error("MarkRead: repository error for message id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: MarkRead - repository error: %w", ErrInternal, err)
	}
	message.IsRead = true

	return models.FromDomainMessage(message), nil
}

// Delete удаляет сообщение. Отправитель или администратор
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	message, err := s.getMessage(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if message.SenderID != actor.UserID && !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%d cannot delete message id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, messageRepo.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		s.logger.Error("Delete: repository error for message id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	return nil
}

func (s *Service) getMessage(ctx context.Context, id int64, op string) (*domain.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, messageRepo.ErrMessageNotFound) {
			s.logger.Warn("%s: message id=%d not found", op, id)
			return nil, ErrMessageNotFound
		}
		s.logger.Error("%s: repository error for message id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return message, nil
}
