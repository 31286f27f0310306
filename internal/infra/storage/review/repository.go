package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL unique_violation
const uniqueViolationCode = "23505"

// Колонка внешнего ключа для каждого типа цели
var targetColumns = map[domain.ReviewTargetKind]string{
	domain.ReviewStudio:      "studio_id",
	domain.ReviewJamPad:      "jampad_id",
	domain.ReviewMusicSchool: "music_school_id",
	domain.ReviewListing:     "listing_id",
}

var reviewColumns = []string{
	"id",
	"author_id",
	"studio_id",
	"jampad_id",
	"music_school_id",
	"listing_id",
	"rating",
	"comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(review.Target)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("author_id", column, "rating", "comment").
		Values(review.AuthorID, review.Target.ID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	return review, nil
}

// ListByTarget отзывы о сущности, новые первыми
func (r *Repository) ListByTarget(ctx context.Context, target domain.ReviewTarget, page domain.Page) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page = page.Normalize()

	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{column: target.ID}).
		OrderBy("created_at DESC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTarget - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTarget - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTarget - scan row: %w", ErrScanRow, err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTarget - rows error: %w", ErrScanRow, err)
	}

	return reviews, nil
}

// ExistsByAuthorAndTarget проверяет, оставлял ли автор отзыв о сущности
func (r *Repository) ExistsByAuthorAndTarget(ctx context.Context, authorID int64, target domain.ReviewTarget) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(target)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"author_id": authorID, column: target.ID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByAuthorAndTarget - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsByAuthorAndTarget - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// Update сохраняет оценку и текст отзыва
func (r *Repository) Update(ctx context.Context, review *domain.Review) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("rating", review.Rating).
		Set("comment", review.Comment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": review.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrReviewNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
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
		return ErrReviewNotFound
	}

	return nil
}

// Summary полный пересчет агрегата по всем отзывам сущности.
// Для сущности без отзывов возвращает {0, 0}
func (r *Repository) Summary(ctx context.Context, target domain.ReviewTarget) (domain.RatingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(target)
	if err != nil {
		return domain.RatingSummary{}, err
	}

	query, args, err := psqlbuilder.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{column: target.ID}).
		ToSql()

	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("%w: Summary - build select query: %w", ErrBuildQuery, err)
	}

	var summary domain.RatingSummary
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.Average, &summary.Count); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("%w: Summary - scan aggregate: %w", ErrScanRow, err)
	}

	return summary, nil
}

func targetColumn(target domain.ReviewTarget) (string, error) {
	column, ok := targetColumns[target.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTarget, target.Kind)
	}
	return column, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var studioID, jamPadID, schoolID, listingID sql.NullInt64

	err := row.Scan(
		&review.ID,
		&review.AuthorID,
		&studioID,
		&jamPadID,
		&schoolID,
		&listingID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case studioID.Valid:
		review.Target = domain.ReviewTarget{Kind: domain.ReviewStudio, ID: studioID.Int64}
	case jamPadID.Valid:
		review.Target = domain.ReviewTarget{Kind: domain.ReviewJamPad, ID: jamPadID.Int64}
	case schoolID.Valid:
		review.Target = domain.ReviewTarget{Kind: domain.ReviewMusicSchool, ID: schoolID.Int64}
	case listingID.Valid:
		review.Target = domain.ReviewTarget{Kind: domain.ReviewListing, ID: listingID.Int64}
	}

	return &review, nil
}
