// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/insighthub/internal/core"
)

type Service struct {
	repo           Repository
	defaultCredits int
}

func NewService(repo Repository, defaultCredits int) *Service {
	return &Service{
		repo:           repo,
		defaultCredits: defaultCredits,
	}
}

// defaultProfile is what a user without a stored row looks like. Reads
// serve it directly; writes materialize it first via ensure.
func (s *Service) defaultProfile(userID string) *Profile {
	return &Profile{
		UserID:        userID,
		Credits:       s.defaultCredits,
		Theme:         ThemeDark,
		Notifications: true,
	}
}

// GetProfile returns the stored profile, or the defaulted one when no
// row exists yet. Missing rows are not an error for reads.
func (s *Service) GetProfile(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return s.defaultProfile(userID), nil
		}
		return nil, err
	}

	return p, nil
}

// Seed creates the default profile row for a new user. Safe to call
// more than once; an existing row is left untouched.
func (s *Service) Seed(ctx context.Context, userID string) error {
	return s.repo.Create(ctx, s.defaultProfile(userID))
}

// ensure materializes the default row so a following UPDATE has
// something to hit.
func (s *Service) ensure(ctx context.Context, userID string) error {
	if err := s.Seed(ctx, userID); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}

func (s *Service) UpdatePreferences(
	ctx context.Context,
	userID string,
	req UpdatePreferencesRequest,
) (*Profile, error) {
	if err := s.ensure(ctx, userID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	theme := current.Theme
	if req.Theme != nil {
		theme = *req.Theme
	}

	notifications := current.Notifications
	if req.Notifications != nil {
		notifications = *req.Notifications
	}

	return s.repo.UpdatePreferences(ctx, userID, theme, notifications)
}

// CheckBalance reports whether the user can afford a run of the given
// cost. Users without a row are checked against the default balance.
func (s *Service) CheckBalance(
	ctx context.Context,
	userID string,
	cost int,
) error {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if p.Credits < cost {
		return core.ErrInsufficientCredits
	}

	return nil
}

// DebitForResearch charges cost credits for a completed run. If the
// user has no row yet, the default one is materialized first so the
// conditional debit has a balance to charge against.
func (s *Service) DebitForResearch(
	ctx context.Context,
	userID string,
	cost int,
) (*Profile, error) {
	if err := s.ensure(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.DebitForResearch(ctx, userID, cost)
}

// RecordSaved keeps the saved_reports counter in step with report
// save/unsave. Counter drift is tolerable, so failures only log.
func (s *Service) RecordSaved(ctx context.Context, userID string, saved bool) {
	delta := 1
	if !saved {
		delta = -1
	}

	if err := s.repo.AdjustSavedReports(ctx, userID, delta); err != nil {
		slog.Warn("failed to adjust saved reports counter",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
