// AngelaMos | 2026
// repository.go

package research

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/insighthub/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, userID, id string) (*Record, error)
	ListByUser(ctx context.Context, userID string, params ListParams) ([]Record, int, error)
	SetSaved(ctx context.Context, userID, id string, saved bool) (*Record, error)
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const recordColumns = `
	id, user_id, title, query, category, content, is_saved, created_at`

func (r *repository) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO researches (id, user_id, title, query, category, content, is_saved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.GetContext(ctx, record, query,
		record.ID,
		record.UserID,
		record.Title,
		record.Query,
		record.Category,
		record.Content,
		record.IsSaved,
	)
	if err != nil {
		return fmt.Errorf("insert research: %w", err)
	}

	return nil
}

// GetByID is owner-scoped: another user's record behaves as missing.
func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Record, error) {
	query := `SELECT` + recordColumns + `
		FROM researches
		WHERE id = $1 AND user_id = $2`

	var record Record
	err := r.db.GetContext(ctx, &record, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get research: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get research: %w", err)
	}

	return &record, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Record, int, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions,
			fmt.Sprintf("category = $%d", len(args)))
	}

	if params.SavedOnly {
		conditions = append(conditions, "is_saved = TRUE")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM researches WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count researches: %w", err)
	}

	args = append(args, params.PageSize, params.Offset())
	listQuery := fmt.Sprintf(`SELECT`+recordColumns+`
		FROM researches
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list researches: %w", err)
	}

	return records, total, nil
}

func (r *repository) SetSaved(
	ctx context.Context,
	userID, id string,
	saved bool,
) (*Record, error) {
	query := `
		UPDATE researches
		SET is_saved = $3
		WHERE id = $1 AND user_id = $2
		RETURNING` + recordColumns

	var record Record
	err := r.db.GetContext(ctx, &record, query, id, userID, saved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("set saved: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("set saved: %w", err)
	}

	return &record, nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM researches WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete research: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete research: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete research: %w", core.ErrNotFound)
	}

	return nil
}
