package enrollment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

var enrollmentColumns = []string{
	"e.id",
	"e.school_id",
	"e.user_id",
	"e.price",
	"e.status",
	"s.owner_id",
	"e.created_at",
	"e.updated_at",
}

// Repository репозиторий записей в музыкальные школы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись ученика в школу
func (r *Repository) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("enrollments").
		Columns("school_id", "user_id", "price", "status").
		Values(enrollment.SchoolID, enrollment.UserID, enrollment.Price, enrollment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return enrollment, nil
}

// GetByID получает запись вместе с владельцем школы
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(enrollmentColumns...).
		From("enrollments e").
		Join("music_schools s ON s.id = e.school_id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	enrollment, err := scanEnrollment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan enrollment: %w", ErrScanRow, err)
	}

	return enrollment, nil
}

// ListByUser записи пользователя
func (r *Repository) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page = page.Normalize()

	query, args, err := psqlbuilder.Select(enrollmentColumns...).
		From("enrollments e").
		Join("music_schools s ON s.id = e.school_id").
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("e.created_at DESC").
		Offset(uint64(page.Skip)).
		Limit(uint64(page.Take)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	enrollments := make([]*domain.Enrollment, 0)
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %w", ErrScanRow, err)
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %w", ErrScanRow, err)
	}

	return enrollments, nil
}

// UpdateStatus меняет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("enrollments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEnrollment(row rowScanner) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.SchoolID,
		&enrollment.UserID,
		&enrollment.Price,
		&enrollment.Status,
		&enrollment.SchoolOwnerID,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
