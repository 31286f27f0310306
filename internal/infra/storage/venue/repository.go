package venue

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

var venueColumns = []string{
	"id",
	"kind",
	"owner_id",
	"name",
	"description",
	"location",
	"hourly_rate",
	"equipment",
	"amenities",
	"average_rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// Repository репозиторий студий и джем-падов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает площадку
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns("kind", "owner_id", "name", "description", "location", "hourly_rate", "equipment", "amenities").
		Values(
			venue.Kind,
			venue.OwnerID,
			venue.Name,
			venue.Description,
			venue.Location,
			venue.HourlyRate,
			textArray(venue.Equipment),
			textArray(venue.Amenities),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return venue, nil
}

// GetByID получает площадку заданного типа по ID.
// Студия, запрошенная как джем-пад, считается ненайденной
func (r *Repository) GetByID(ctx context.Context, kind domain.VenueKind, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id, "kind": kind}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %w", ErrScanRow, err)
	}

	return venue, nil
}

// List каталог площадок с фильтрацией и пагинацией
func (r *Repository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page := filter.Page.Normalize()

	selectBuilder := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"kind": filter.Kind}).
		OrderBy("id ASC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take))

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Location != nil && *filter.Location != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"location": "%" + *filter.Location + "%"})
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

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return venues, nil
}

// Update сохраняет редактируемые поля площадки. Рейтинг здесь не меняется
func (r *Repository) Update(ctx context.Context, venue *domain.Venue) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("name", venue.Name).
		Set("description", venue.Description).
		Set("location", venue.Location).
		Set("hourly_rate", venue.HourlyRate).
		Set("equipment", textArray(venue.Equipment)).
		Set("amenities", textArray(venue.Amenities)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venue.ID, "kind": venue.Kind}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&venue.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет площадку
func (r *Repository) Delete(ctx context.Context, kind domain.VenueKind, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venues").
		Where(squirrel.Eq{"id": id, "kind": kind}).
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
		return ErrVenueNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	var equipment, amenities pq.StringArray

	err := row.Scan(
		&venue.ID,
		&venue.Kind,
		&venue.OwnerID,
		&venue.Name,
		&venue.Description,
		&venue.Location,
		&venue.HourlyRate,
		&equipment,
		&amenities,
		&venue.AverageRating,
		&venue.TotalReviews,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.Equipment = []string(equipment)
	venue.Amenities = []string(amenities)

	return &venue, nil
}

// textArray колонки TEXT[] объявлены NOT NULL, nil пишем как пустой массив
func textArray(values []string) interface{} {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}
