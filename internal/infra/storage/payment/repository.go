package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

// Колонка внешнего ключа для каждого типа платежа
var targetColumns = map[domain.PaymentType]string{
	domain.PaymentStudioBooking:    "studio_booking_id",
	domain.PaymentJamPadBooking:    "jampad_booking_id",
	domain.PaymentEnrollment:       "enrollment_id",
	domain.PaymentMarketplaceOrder: "marketplace_order_id",
}

var paymentColumns = []string{
	"p.id",
	"p.user_id",
	"p.type",
	"p.method",
	"p.amount",
	"p.status",
	"p.transaction_id",
	"p.processed_at",
	"p.studio_booking_id",
	"p.jampad_booking_id",
	"p.enrollment_id",
	"p.marketplace_order_id",
	"COALESCE(sv.owner_id, jv.owner_id, ms.owner_id, ml.owner_id, 0)",
	"p.created_at",
	"p.updated_at",
}

// Получатель платежа вычисляется по цели
const recipientJoins = `payments p
	LEFT JOIN bookings sb ON sb.id = p.studio_booking_id
	LEFT JOIN venues sv ON sv.id = sb.venue_id
	LEFT JOIN bookings jb ON jb.id = p.jampad_booking_id
	LEFT JOIN venues jv ON jv.id = jb.venue_id
	LEFT JOIN enrollments e ON e.id = p.enrollment_id
	LEFT JOIN music_schools ms ON ms.id = e.school_id
	LEFT JOIN marketplace_orders o ON o.id = p.marketplace_order_id
	LEFT JOIN marketplace_listings ml ON ml.id = o.listing_id`

// Repository репозиторий платежей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж. Заполняется ровно одна колонка цели
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, ok := targetColumns[payment.Target.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, payment.Target.Type)
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("user_id", "type", "method", "amount", "status", "transaction_id", "processed_at", column).
		Values(
			payment.UserID,
			payment.Type,
			payment.Method,
			payment.Amount,
			payment.Status,
			payment.TransactionID,
			payment.ProcessedAt,
			payment.Target.ID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return payment, nil
}

// GetByID получает платеж вместе с получателем
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From(recipientJoins).
		Where(squirrel.Eq{"p.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %w", ErrScanRow, err)
	}

	return payment, nil
}

// List список платежей по фильтру
func (r *Repository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page := filter.Page.Normalize()

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From(recipientJoins).
		OrderBy("p.created_at DESC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take))

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}

// MarkCompleted проводит платеж: PENDING -> COMPLETED.
// Возвращает false, если платеж уже не в PENDING (обработан ранее)
func (r *Repository) MarkCompleted(ctx context.Context, id int64, transactionID string, processedAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentCompleted).
		Set("transaction_id", transactionID).
		Set("processed_at", processedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkCompleted - build update query: %w", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, "MarkCompleted", query, args)
}

// MarkFailed отклоняет платеж: PENDING -> FAILED
func (r *Repository) MarkFailed(ctx context.Context, id int64, processedAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentFailed).
		Set("processed_at", processedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkFailed - build update query: %w", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, "MarkFailed", query, args)
}

// MarkRefunded возвращает проведенный платеж: COMPLETED -> REFUNDED
func (r *Repository) MarkRefunded(ctx context.Context, id int64, processedAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentRefunded).
		Set("processed_at", processedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentCompleted}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkRefunded - build update query: %w", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, "MarkRefunded", query, args)
}

// Update записывает статус и данные проведения (ручное изменение администратором)
func (r *Repository) Update(ctx context.Context, payment *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", payment.Status).
		Set("transaction_id", payment.TransactionID).
		Set("processed_at", payment.ProcessedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": payment.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrPaymentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) execGuarded(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) (bool, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	var transactionID sql.NullString
	var processedAt sql.NullTime
	var studioBookingID, jamPadBookingID, enrollmentID, orderID sql.NullInt64

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Type,
		&payment.Method,
		&payment.Amount,
		&payment.Status,
		&transactionID,
		&processedAt,
		&studioBookingID,
		&jamPadBookingID,
		&enrollmentID,
		&orderID,
		&payment.RecipientID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if transactionID.Valid {
		payment.TransactionID = &transactionID.String
	}
	if processedAt.Valid {
		payment.ProcessedAt = &processedAt.Time
	}

	switch {
	case studioBookingID.Valid:
		payment.Target = domain.PaymentTarget{Type: domain.PaymentStudioBooking, ID: studioBookingID.Int64}
	case jamPadBookingID.Valid:
		payment.Target = domain.PaymentTarget{Type: domain.PaymentJamPadBooking, ID: jamPadBookingID.Int64}
	case enrollmentID.Valid:
		payment.Target = domain.PaymentTarget{Type: domain.PaymentEnrollment, ID: enrollmentID.Int64}
	case orderID.Valid:
		payment.Target = domain.PaymentTarget{Type: domain.PaymentMarketplaceOrder, ID: orderID.Int64}
	}

	return &payment, nil
}
