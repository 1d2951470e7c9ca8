// AngelaMos | 2026
// repository_test.go

package profile

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insighthub/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func profileRows(credits, researches int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"user_id", "credits", "is_premium", "theme", "notifications",
		"total_researches", "saved_reports", "active_projects",
		"created_at", "updated_at",
	}).AddRow("user-1", credits, false, "dark", true, researches, 0, 0, now, now)
}

func TestDebitForResearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs("user-1", 5).
		WillReturnRows(profileRows(95, 1))

	p, err := repo.DebitForResearch(context.Background(), "user-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 95, p.Credits)
	assert.Equal(t, 1, p.TotalResearches)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitForResearchInsufficientBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	// The conditional UPDATE matches no row when credits < cost.
	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs("user-1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.DebitForResearch(context.Background(), "user-1", 5)
	require.ErrorIs(t, err, core.ErrInsufficientCredits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.GetByUserID(context.Background(), "user-1")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIgnoresExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs("user-1", 100, false, "dark", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &Profile{
		UserID:        "user-1",
		Credits:       100,
		Theme:         ThemeDark,
		Notifications: true,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
