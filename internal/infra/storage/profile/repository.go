package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/psqlbuilder"
)

// Repository репозиторий профилей (1:1 с пользователем)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает профиль пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"user_id",
		"bio",
		"specialties",
		"hourly_rate",
		"social_links",
		"created_at",
		"updated_at",
	).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	var profile domain.Profile
	var specialties pq.StringArray
	var hourlyRate sql.NullFloat64
	var links []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		&profile.Bio,
		&specialties,
		&hourlyRate,
		&links,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan profile: %w", ErrScanRow, err)
	}

	profile.Specialties = []string(specialties)
	if hourlyRate.Valid {
		profile.HourlyRate = &hourlyRate.Float64
	}
	profile.SocialLinks = map[string]string{}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &profile.SocialLinks); err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - decode social links: %w", ErrScanRow, err)
		}
	}

	return &profile, nil
}

// Upsert создает или полностью перезаписывает профиль
func (r *Repository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	links := profile.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	encoded, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	specialties := profile.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("user_id", "bio", "specialties", "hourly_rate", "social_links").
		Values(profile.UserID, profile.Bio, pq.Array(specialties), profile.HourlyRate, string(encoded)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			specialties = EXCLUDED.specialties,
			hourly_rate = EXCLUDED.hourly_rate,
			social_links = EXCLUDED.social_links,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	profile.Specialties = specialties
	profile.SocialLinks = links

	return profile, nil
}
