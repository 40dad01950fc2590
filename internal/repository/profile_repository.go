package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"

	"github.com/lib/pq"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, email, display_name, password_hash, provider, xp, streak,
		quizzes_created, quizzes_completed, last_active, created_at`

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`

	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PasswordHash,
		&profile.Provider,
		&profile.XP,
		&profile.Streak,
		&profile.QuizzesCreated,
		&profile.QuizzesCompleted,
		&profile.LastActive,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE email = $1
	`

	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PasswordHash,
		&profile.Provider,
		&profile.XP,
		&profile.Streak,
		&profile.QuizzesCreated,
		&profile.QuizzesCompleted,
		&profile.LastActive,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	profile.LastActive = time.Now()
	profile.CreatedAt = time.Now()

	query := `
		INSERT INTO profiles (id, email, display_name, password_hash, provider, xp, streak,
			quizzes_created, quizzes_completed, last_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.DisplayName,
		profile.PasswordHash,
		profile.Provider,
		profile.XP,
		profile.Streak,
		profile.QuizzesCreated,
		profile.QuizzesCompleted,
		profile.LastActive,
		profile.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return apperrors.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) TouchLastActive(ctx context.Context, id string) error {
	query := `UPDATE profiles SET last_active = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update last_active: %w", err)
	}

	return nil
}

// AddXP applies the award as a server-side increment so concurrent
// attempts for the same profile cannot lose an update. Returns the new
// total.
func (r *ProfileRepository) AddXP(ctx context.Context, id string, amount int) (int, error) {
	query := `UPDATE profiles SET xp = xp + $1 WHERE id = $2 RETURNING xp`

	var newXP int
	err := r.db.QueryRowContext(ctx, query, amount, id).Scan(&newXP)
	if err == sql.ErrNoRows {
		return 0, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add xp: %w", err)
	}

	return newXP, nil
}
