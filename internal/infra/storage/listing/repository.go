package listing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

var listingColumns = []string{
	"id",
	"owner_id",
	"title",
	"slug",
	"description",
	"price",
	"category",
	"images",
	"average_rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// Repository репозиторий объявлений маркетплейса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория объявлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает объявление
func (r *Repository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	images := listing.Images
	if images == nil {
		images = []string{}
	}

	query, args, err := psqlbuilder.Insert("marketplace_listings").
		Columns("owner_id", "title", "slug", "description", "price", "category", "images").
		Values(
			listing.OwnerID,
			listing.Title,
			listing.Slug,
			listing.Description,
			listing.Price,
			listing.Category,
			pq.Array(images),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	listing.Images = images
	return listing, nil
}

// GetByID получает объявление по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(listingColumns...).
		From("marketplace_listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	listing, err := scanListing(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan listing: %w", ErrScanRow, err)
	}

	return listing, nil
}

// SlugExists проверяет, занят ли slug
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("marketplace_listings").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: SlugExists - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// List каталог и поиск объявлений.
// Query ищется по заголовку и описанию без учета регистра
func (r *Repository) List(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page := filter.Page.Normalize()

	selectBuilder := psqlbuilder.Select(listingColumns...).
		From("marketplace_listings").
		OrderBy("created_at DESC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take))

	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if filter.Category != nil && *filter.Category != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price": *filter.MaxPrice})
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

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return listings, nil
}

// Update сохраняет редактируемые поля объявления. Slug не меняется
func (r *Repository) Update(ctx context.Context, listing *domain.Listing) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	images := listing.Images
	if images == nil {
		images = []string{}
	}

	query, args, err := psqlbuilder.Update("marketplace_listings").
		Set("title", listing.Title).
		Set("description", listing.Description).
		Set("price", listing.Price).
		Set("category", listing.Category).
		Set("images", pq.Array(images)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listing.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&listing.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrListingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет объявление
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("marketplace_listings").
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
		return ErrListingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var images pq.StringArray

	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Slug,
		&listing.Description,
		&listing.Price,
		&listing.Category,
		&images,
		&listing.AverageRating,
		&listing.TotalReviews,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.Images = []string(images)
	return &listing, nil
}
