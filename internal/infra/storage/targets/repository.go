// Package targets операции над сущностями, на которые ссылаются платежи и отзывы:
// бронирования, записи в школы, заказы, площадки, школы и объявления
package targets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

// Repository репозиторий целей платежей и отзывов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// PaymentTargetState читает плательщика, получателя, статус и сумму цели платежа
func (r *Repository) PaymentTargetState(ctx context.Context, target domain.PaymentTarget) (*domain.PaymentTargetState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var selectBuilder squirrel.SelectBuilder
	switch target.Type {
	case domain.PaymentStudioBooking, domain.PaymentJamPadBooking:
		kind, _ := target.Type.VenueKind()
		selectBuilder = psqlbuilder.Select("b.user_id", "v.owner_id", "b.status", "b.total_price").
			From("bookings b").
			Join("venues v ON v.id = b.venue_id").
			Where(squirrel.Eq{"b.id": target.ID, "b.venue_kind": kind})
	case domain.PaymentEnrollment:
		selectBuilder = psqlbuilder.Select("e.user_id", "s.owner_id", "e.status", "e.price").
			From("enrollments e").
			Join("music_schools s ON s.id = e.school_id").
			Where(squirrel.Eq{"e.id": target.ID})
	case domain.PaymentMarketplaceOrder:
		selectBuilder = psqlbuilder.Select("o.buyer_id", "l.owner_id", "o.status", "o.amount").
			From("marketplace_orders o").
			Join("marketplace_listings l ON l.id = o.listing_id").
			Where(squirrel.Eq{"o.id": target.ID})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target.Type)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PaymentTargetState - build select query: %w", ErrBuildQuery, err)
	}

	state := domain.PaymentTargetState{Target: target}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&state.PayerID,
		&state.RecipientID,
		&state.Status,
		&state.Amount,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: PaymentTargetState - scan target: %w", ErrScanRow, err)
	}

	return &state, nil
}

// ConfirmPaymentTarget переводит цель оплаченного платежа из PENDING в подтвержденный статус:
// бронирование и запись - CONFIRMED, заказ - PAID.
// Обновление защищено условием status = 'PENDING', поэтому повторный вызов ничего не меняет.
// Возвращает true, если статус изменился
func (r *Repository) ConfirmPaymentTarget(ctx context.Context, target domain.PaymentTarget) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var updateBuilder squirrel.UpdateBuilder
	switch target.Type {
	case domain.PaymentStudioBooking, domain.PaymentJamPadBooking:
		kind, _ := target.Type.VenueKind()
		updateBuilder = psqlbuilder.Update("bookings").
			Set("status", domain.BookingConfirmed).
			Where(squirrel.Eq{"id": target.ID, "venue_kind": kind, "status": domain.BookingPending})
	case domain.PaymentEnrollment:
		updateBuilder = psqlbuilder.Update("enrollments").
			Set("status", domain.EnrollmentConfirmed).
			Where(squirrel.Eq{"id": target.ID, "status": domain.EnrollmentPending})
	case domain.PaymentMarketplaceOrder:
		updateBuilder = psqlbuilder.Update("marketplace_orders").
			Set("status", domain.OrderPaid).
			Where(squirrel.Eq{"id": target.ID, "status": domain.OrderPending})
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownTarget, target.Type)
	}

	query, args, err := updateBuilder.Set("updated_at", squirrel.Expr("NOW()")).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmPaymentTarget - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmPaymentTarget - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ConfirmPaymentTarget - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// LockReviewTarget блокирует строку сущности, о которой пишут отзыв, до конца транзакции.
// Пересчеты рейтинга одной сущности выполняются строго по очереди.
// Возвращает false, если сущности нет
func (r *Repository) LockReviewTarget(ctx context.Context, target domain.ReviewTarget) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, where, err := reviewTargetTable(target)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Select("id").From(table).Where(where).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: LockReviewTarget - build select query: %w", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: LockReviewTarget - scan id: %w", ErrScanRow, err)
	}

	return true, nil
}

// CountCompletedInteractions считает завершенные взаимодействия автора с сущностью:
// COMPLETED бронирования площадки, COMPLETED записи в школу, оплаченные заказы по объявлению
func (r *Repository) CountCompletedInteractions(ctx context.Context, authorID int64, target domain.ReviewTarget) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var selectBuilder squirrel.SelectBuilder
	switch target.Kind {
	case domain.ReviewStudio, domain.ReviewJamPad:
		kind, _ := target.Kind.VenueKind()
		selectBuilder = psqlbuilder.Select("COUNT(*)").
			From("bookings").
			Where(squirrel.Eq{
				"user_id":    authorID,
				"venue_id":   target.ID,
				"venue_kind": kind,
				"status":     domain.BookingCompleted,
			})
	case domain.ReviewMusicSchool:
		selectBuilder = psqlbuilder.Select("COUNT(*)").
			From("enrollments").
			Where(squirrel.Eq{
				"user_id":   authorID,
				"school_id": target.ID,
				"status":    domain.EnrollmentCompleted,
			})
	case domain.ReviewListing:
		selectBuilder = psqlbuilder.Select("COUNT(*)").
			From("marketplace_orders").
			Where(squirrel.Eq{
				"buyer_id":   authorID,
				"listing_id": target.ID,
				"status":     domain.PurchasedStatuses,
			})
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownTarget, target.Kind)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCompletedInteractions - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompletedInteractions - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateRating записывает пересчитанный агрегат рейтинга в сущность
func (r *Repository) UpdateRating(ctx context.Context, target domain.ReviewTarget, summary domain.RatingSummary) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, where, err := reviewTargetTable(target)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(table).
		Set("average_rating", summary.Average).
		Set("total_reviews", summary.Count).
		Where(where).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTargetNotFound
	}

	return nil
}

func reviewTargetTable(target domain.ReviewTarget) (string, squirrel.Eq, error) {
	switch target.Kind {
	case domain.ReviewStudio, domain.ReviewJamPad:
		kind, _ := target.Kind.VenueKind()
		return "venues", squirrel.Eq{"id": target.ID, "kind": kind}, nil
	case domain.ReviewMusicSchool:
		return "music_schools", squirrel.Eq{"id": target.ID}, nil
	case domain.ReviewListing:
		return "marketplace_listings", squirrel.Eq{"id": target.ID}, nil
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target.Kind)
}
