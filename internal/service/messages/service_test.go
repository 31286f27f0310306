package messages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	messageRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/message"
	userRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/user"
	"github.com/m04kA/SMC-SoundInkube/internal/service/messages/models"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type memMessages struct {
	items      map[int64]*domain.Message
	threadRead [][2]int64
}

func (m *memMessages) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	msg.ID = int64(len(m.items) + 1)
	cp := *msg
	m.items[msg.ID] = &cp
	return msg, nil
}

func (m *memMessages) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	msg, ok := m.items[id]
	if !ok {
		return nil, messageRepo.ErrMessageNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *memMessages) ListConversations(ctx context.Context, userID int64) ([]*domain.Conversation, error) {
	return nil, nil
}

func (m *memMessages) ListThread(ctx context.Context, userID, counterpartID int64, page domain.Page) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, msg := range m.items {
		if (msg.SenderID == userID && msg.RecipientID == counterpartID) ||
			(msg.SenderID == counterpartID && msg.RecipientID == userID) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memMessages) MarkThreadRead(ctx context.Context, userID, counterpartID int64) error {
	m.threadRead = append(m.threadRead, [2]int64{userID, counterpartID})
	return nil
}

func (m *memMessages) MarkRead(ctx context.Context, id int64) error {
	m.items[id].IsRead = true
	return nil
}

func (m *memMessages) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

type memUsers map[int64]bool

func (m memUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if !m[id] {
		return nil, userRepo.ErrUserNotFound
	}
	return &domain.User{ID: id}, nil
}

var (
	sender    = domain.Actor{UserID: 10, Role: domain.RoleClient}
	recipient = domain.Actor{UserID: 20, Role: domain.RoleStudioOwner}
)

func newService() (*Service, *memMessages) {
	repo := &memMessages{items: map[int64]*domain.Message{}}
	return NewService(repo, memUsers{10: true, 20: true}, logger.NewDiscard()), repo
}

func TestSend_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 10, Content: "hi"})
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 30, Content: "hi"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)

	_, err = svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: strings.Repeat("a", domain.MaxMessageLength+1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: " Is the studio free on Friday? "})
	require.NoError(t, err)
	assert.Equal(t, "Is the studio free on Friday?", resp.Content)
	assert.False(t, resp.IsRead)
}

func TestThread_MarksIncomingRead(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	_, err := svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: "hello"})
	require.NoError(t, err)

	resp, err := svc.Thread(ctx, recipient, 10, domain.Page{})
	require.NoError(t, err)
	assert.Len(t, resp.Messages, 1)
	assert.Equal(t, [][2]int64{{20, 10}}, repo.threadRead)
}

func TestMarkRead_RecipientOnly(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	sent, err := svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: "hello"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, sender, sent.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.MarkRead(ctx, recipient, sent.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsRead)
	assert.True(t, repo.items[sent.ID].IsRead)
}

func TestDelete_SenderOrAdmin(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()
	sent, err := svc.Send(ctx, sender, &models.SendMessageRequest{RecipientID: 20, Content: "hello"})
	require.NoError(t, err)

	err = svc.Delete(ctx, recipient, sent.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(ctx, sender, sent.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.items)

	err = svc.Delete(ctx, domain.Actor{UserID: 1, Role: domain.RoleAdmin}, sent.ID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
