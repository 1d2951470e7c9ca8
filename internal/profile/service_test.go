// AngelaMos | 2026
// service_test.go

package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insighthub/internal/core"
)

type fakeRepository struct {
	profiles map[string]*Profile
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{profiles: map[string]*Profile{}}
}

func (f *fakeRepository) GetByUserID(
	_ context.Context,
	userID string,
) (*Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, p *Profile) error {
	if _, ok := f.profiles[p.UserID]; ok {
		return nil
	}
	copied := *p
	f.profiles[p.UserID] = &copied
	return nil
}

func (f *fakeRepository) UpdatePreferences(
	_ context.Context,
	userID, theme string,
	notifications bool,
) (*Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	p.Theme = theme
	p.Notifications = notifications
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) DebitForResearch(
	_ context.Context,
	userID string,
	cost int,
) (*Profile, error) {
	p, ok := f.profiles[userID]
	if !ok || p.Credits < cost {
		return nil, core.ErrInsufficientCredits
	}
	p.Credits -= cost
	p.TotalResearches++
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) AdjustSavedReports(
	_ context.Context,
	userID string,
	delta int,
) error {
	if p, ok := f.profiles[userID]; ok {
		p.SavedReports += delta
		if p.SavedReports < 0 {
			p.SavedReports = 0
		}
	}
	return nil
}

func TestGetProfileServesDefaultsForNewUsers(t *testing.T) {
	svc := NewService(newFakeRepository(), 100)

	p, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 100, p.Credits)
	assert.Equal(t, ThemeDark, p.Theme)
	assert.True(t, p.Notifications)
	assert.False(t, p.IsPremium)
	assert.Equal(t, 0, p.TotalResearches)
}

func TestCheckBalanceAgainstDefaults(t *testing.T) {
	svc := NewService(newFakeRepository(), 100)

	// No stored row: the default balance covers the run.
	require.NoError(t, svc.CheckBalance(context.Background(), "user-1", 5))
}

func TestCheckBalanceInsufficient(t *testing.T) {
	repo := newFakeRepository()
	repo.profiles["user-1"] = &Profile{UserID: "user-1", Credits: 3}

	svc := NewService(repo, 100)

	err := svc.CheckBalance(context.Background(), "user-1", 5)
	require.ErrorIs(t, err, core.ErrInsufficientCredits)
}

func TestDebitMaterializesDefaultRow(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 100)

	p, err := svc.DebitForResearch(context.Background(), "user-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 95, p.Credits)
	assert.Equal(t, 1, p.TotalResearches)
}

func TestUpdatePreferencesPartial(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 100)

	theme := ThemeLight
	p, err := svc.UpdatePreferences(context.Background(), "user-1",
		UpdatePreferencesRequest{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, p.Theme)
	assert.True(t, p.Notifications)

	off := false
	p, err = svc.UpdatePreferences(context.Background(), "user-1",
		UpdatePreferencesRequest{Notifications: &off})
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, p.Theme)
	assert.False(t, p.Notifications)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, 100)

	require.NoError(t, svc.Seed(context.Background(), "user-1"))

	_, err := svc.DebitForResearch(context.Background(), "user-1", 5)
	require.NoError(t, err)

	require.NoError(t, svc.Seed(context.Background(), "user-1"))

	p, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 95, p.Credits)
}
