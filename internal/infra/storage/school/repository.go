package school

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

var schoolColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"location",
	"course_fee",
	"average_rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// Repository репозиторий музыкальных школ
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория школ
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает школу
func (r *Repository) Create(ctx context.Context, school *domain.MusicSchool) (*domain.MusicSchool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("music_schools").
		Columns("owner_id", "name", "description", "location", "course_fee").
		Values(school.OwnerID, school.Name, school.Description, school.Location, school.CourseFee).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return school, nil
}

// GetByID получает школу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MusicSchool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(schoolColumns...).
		From("music_schools").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	school, err := scanSchool(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSchoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan school: %w", ErrScanRow, err)
	}

	return school, nil
}

// List каталог школ
func (r *Repository) List(ctx context.Context, filter domain.SchoolFilter) ([]*domain.MusicSchool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page := filter.Page.Normalize()

	selectBuilder := psqlbuilder.Select(schoolColumns...).
		From("music_schools").
		OrderBy("id ASC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take))

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

	schools := make([]*domain.MusicSchool, 0)
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		schools = append(schools, school)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return schools, nil
}

// Update сохраняет редактируемые поля школы
func (r *Repository) Update(ctx context.Context, school *domain.MusicSchool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("music_schools").
		Set("name", school.Name).
		Set("description", school.Description).
		Set("location", school.Location).
		Set("course_fee", school.CourseFee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": school.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&school.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrSchoolNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchool(row rowScanner) (*domain.MusicSchool, error) {
	var school domain.MusicSchool
	err := row.Scan(
		&school.ID,
		&school.OwnerID,
		&school.Name,
		&school.Description,
		&school.Location,
		&school.CourseFee,
		&school.AverageRating,
		&school.TotalReviews,
		&school.CreatedAt,
		&school.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &school, nil
}
