package message

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

var messageColumns = []string{
	"id",
	"sender_id",
	"recipient_id",
	"content",
	"is_read",
	"created_at",
}

// Последнее сообщение с каждым собеседником и число непрочитанных входящих
const conversationsQuery = `
WITH thread AS (
	SELECT m.*,
		CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END AS counterpart_id
	FROM messages m
	WHERE m.sender_id = $1 OR m.recipient_id = $1
)
SELECT DISTINCT ON (counterpart_id)
	counterpart_id, id, sender_id, recipient_id, content, is_read, created_at,
	(SELECT COUNT(*) FROM messages u
		WHERE u.sender_id = thread.counterpart_id AND u.recipient_id = $1 AND NOT u.is_read)
FROM thread
ORDER BY counterpart_id, created_at DESC, id DESC`

// Repository репозиторий личных сообщений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сообщений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет сообщение
func (r *Repository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("messages").
		Columns("sender_id", "recipient_id", "content").
		Values(message.SenderID, message.RecipientID, message.Content).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return message, nil
}

// GetByID получает сообщение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(messageColumns...).
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	message, err := scanMessage(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan message: %w", ErrScanRow, err)
	}

	return message, nil
}

// ListConversations диалоги пользователя, самые свежие первыми
func (r *Repository) ListConversations(ctx context.Context, userID int64) ([]*domain.Conversation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, conversationsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConversations - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	conversations := make([]*domain.Conversation, 0)
	for rows.Next() {
		var c domain.Conversation
		err := rows.Scan(
			&c.CounterpartID,
			&c.LastMessage.ID,
			&c.LastMessage.SenderID,
			&c.LastMessage.RecipientID,
			&c.LastMessage.Content,
			&c.LastMessage.IsRead,
			&c.LastMessage.CreatedAt,
			&c.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListConversations - scan row: %w", ErrScanRow, err)
		}
		conversations = append(conversations, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListConversations - rows error: %w", ErrScanRow, err)
	}

	// DISTINCT ON требует сортировки по собеседнику, порядок по времени восстанавливаем здесь
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})

	return conversations, nil
}

// ListThread переписка двух пользователей, новые первыми
func (r *Repository) ListThread(ctx context.Context, userID, counterpartID int64, page domain.Page) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page = page.Normalize()

	query, args, err := psqlbuilder.Select(messageColumns...).
		From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"sender_id": userID, "recipient_id": counterpartID},
			squirrel.Eq{"sender_id": counterpartID, "recipient_id": userID},
		}).
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListThread - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListThread - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListThread - scan row: %w", ErrScanRow, err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListThread - rows error: %w", ErrScanRow, err)
	}

	return messages, nil
}

// MarkThreadRead отмечает прочитанными все входящие от собеседника
func (r *Repository) MarkThreadRead(ctx context.Context, userID, counterpartID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("messages").
		Set("is_read", true).
		Where(squirrel.Eq{"sender_id": counterpartID, "recipient_id": userID, "is_read": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkThreadRead - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkThreadRead - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// MarkRead отмечает сообщение прочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("messages").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

// Delete удаляет сообщение
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var message domain.Message
	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.RecipientID,
		&message.Content,
		&message.IsRead,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}
