// AngelaMos | 2026
// repository_test.go

package research

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

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "query", "category",
		"content", "is_saved", "created_at",
	}).AddRow(
		"r1", "user-1", "compare CRM tools", "compare CRM tools",
		"product_research", "# Insight", false, time.Now(),
	)
}

func TestInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO researches`).
		WithArgs(
			"r1", "user-1", "compare CRM tools", "compare CRM tools",
			CategoryProduct, "# Insight", false,
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()),
		)

	record := &Record{
		ID:       "r1",
		UserID:   "user-1",
		Title:    "compare CRM tools",
		Query:    "compare CRM tools",
		Category: CategoryProduct,
		Content:  "# Insight",
	}

	require.NoError(t, repo.Insert(context.Background(), record))
	assert.False(t, record.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT`).
		WithArgs("r1", "other-user").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "other-user", "r1")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserWithFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM researches`).
		WithArgs("user-1", "product_research").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT(.|\n)*FROM researches`).
		WithArgs("user-1", "product_research", 20, 0).
		WillReturnRows(recordRows())

	params := ListParams{Page: 1, PageSize: 20, Category: "product_research"}
	records, total, err := repo.ListByUser(context.Background(), "user-1", params)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM researches`).
		WithArgs("r1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "r1")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
