// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/insighthub/internal/core"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	UpdatePreferences(
		ctx context.Context,
		userID, theme string,
		notifications bool,
	) (*Profile, error)
	DebitForResearch(ctx context.Context, userID string, cost int) (*Profile, error)
	AdjustSavedReports(ctx context.Context, userID string, delta int) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const profileColumns = `
	user_id, credits, is_premium, theme, notifications,
	total_researches, saved_reports, active_projects,
	created_at, updated_at`

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `SELECT` + profileColumns + `
		FROM profiles
		WHERE user_id = $1`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Create inserts the profile row, tolerating a concurrent insert for
// the same user. On conflict the existing row wins unchanged.
func (r *repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, credits, is_premium, theme, notifications)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.Credits,
		p.IsPremium,
		p.Theme,
		p.Notifications,
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *repository) UpdatePreferences(
	ctx context.Context,
	userID, theme string,
	notifications bool,
) (*Profile, error) {
	query := `
		UPDATE profiles
		SET theme = $2, notifications = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING` + profileColumns

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID, theme, notifications)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update preferences: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	return &p, nil
}

// DebitForResearch atomically charges cost credits and bumps the usage
// counter. The WHERE guard makes the check-and-debit a single statement,
// so concurrent runs can never take the balance below zero; sql.ErrNoRows
// means the balance was insufficient (or the row is missing).
func (r *repository) DebitForResearch(
	ctx context.Context,
	userID string,
	cost int,
) (*Profile, error) {
	query := `
		UPDATE profiles
		SET credits = GREATEST(credits - $2, 0),
		    total_researches = total_researches + 1,
		    updated_at = NOW()
		WHERE user_id = $1 AND credits >= $2
		RETURNING` + profileColumns

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID, cost)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("debit credits: %w", core.ErrInsufficientCredits)
		}
		return nil, fmt.Errorf("debit credits: %w", err)
	}

	return &p, nil
}

// AdjustSavedReports moves the saved_reports counter by delta, clamped
// at zero so unsave after a reset never goes negative.
func (r *repository) AdjustSavedReports(
	ctx context.Context,
	userID string,
	delta int,
) error {
	query := `
		UPDATE profiles
		SET saved_reports = GREATEST(saved_reports + $2, 0),
		    updated_at = NOW()
		WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, delta)
	if err != nil {
		return fmt.Errorf("adjust saved reports: %w", err)
	}

	return nil
}
