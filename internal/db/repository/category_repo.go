package repository

import (
	"context"
	"fmt"

	"github.com/quizzical/quizzical-api/internal/db"
)

const (
	listCategoriesSQL = `
		SELECT title, active
		FROM categories
		ORDER BY title`

	insertCategorySQL = `
		INSERT INTO categories (title, active)
		VALUES ($1, $2)
		ON CONFLICT (title) DO NOTHING`

	upsertCategorySQL = `
		INSERT INTO categories (title, active)
		VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET active = EXCLUDED.active
		RETURNING (xmax = 0)`

	setCategoryActiveSQL = `
		UPDATE categories
		SET active = $2
		WHERE title = $1 AND active IS DISTINCT FROM $2`
)

// CategoryRepository reads and writes category rows.
type CategoryRepository struct {
	db Querier
}

// NewCategoryRepository constructs a category repository over a pool.
func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Categories lists every category, active or not.
func (r *CategoryRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, listCategoriesSQL)
	if err != nil {
		return nil, db.Classify(fmt.Errorf("query categories: %w", err))
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Title, &c.Active); err != nil {
			return nil, db.Classify(fmt.Errorf("scan category: %w", err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(fmt.Errorf("read categories: %w", err))
	}
	return categories, nil
}

// SaveCategory upserts a category by title. When active is nil a conflicting
// insert is a no-op; when set, a conflict updates the flag instead. The
// returned status tells whether a row was actually inserted.
func (r *CategoryRepository) SaveCategory(ctx context.Context, title string, active *bool) (SaveStatus, error) {
	if active == nil {
		tag, err := r.db.Exec(ctx, insertCategorySQL, title, true)
		if err != nil {
			return SaveStatusExists, db.Classify(fmt.Errorf("insert category: %w", err))
		}
		if tag.RowsAffected() == 0 {
			return SaveStatusExists, nil
		}
		return SaveStatusCreated, nil
	}

	// xmax = 0 distinguishes a fresh insert from a conflict update on the
	// row the statement returned.
	var inserted bool
	if err := r.db.QueryRow(ctx, upsertCategorySQL, title, *active).Scan(&inserted); err != nil {
		return SaveStatusExists, db.Classify(fmt.Errorf("upsert category: %w", err))
	}
	if inserted {
		return SaveStatusCreated, nil
	}
	return SaveStatusExists, nil
}

// SetActive flips a category's visibility flag. It reports whether the flag
// actually changed; toggling to the current value is a no-op.
func (r *CategoryRepository) SetActive(ctx context.Context, title string, active bool) (bool, error) {
	tag, err := r.db.Exec(ctx, setCategoryActiveSQL, title, active)
	if err != nil {
		return false, db.Classify(fmt.Errorf("set category active: %w", err))
	}
	return tag.RowsAffected() > 0, nil
}
