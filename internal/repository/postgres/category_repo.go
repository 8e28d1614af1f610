package postgres

import (
	"context"
	"errors"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CategoryRepo implements CategoryRepository using PostgreSQL.
type CategoryRepo struct{ db *DB }

// NewCategoryRepo constructs a category repository.
func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, user_id, name, type, color, icon, is_default`

// Create inserts a private category row.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = `
INSERT INTO categories (id, user_id, name, type, color, icon, is_default)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.UserID, c.Name, c.Type, c.Color, c.Icon, c.IsDefault)
	return err
}

func (r *CategoryRepo) scanOne(ctx context.Context, q string, args ...any) (*model.Category, error) {
	row := r.db.Pool.QueryRow(ctx, q, args...)
	var c model.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.IsDefault); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

// GetVisible selects a category that is a default or owned by the user.
func (r *CategoryRepo) GetVisible(ctx context.Context, userID, id uuid.UUID) (*model.Category, error) {
	const q = `
SELECT ` + categoryCols + `
FROM categories WHERE id=$1 AND (user_id IS NULL OR user_id=$2)`
	return r.scanOne(ctx, q, id, userID)
}

// GetOwned selects a category owned by the user.
func (r *CategoryRepo) GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Category, error) {
	const q = `
SELECT ` + categoryCols + `
FROM categories WHERE id=$1 AND user_id=$2`
	return r.scanOne(ctx, q, id, userID)
}

// ListVisible returns defaults plus the user's own categories, defaults first.
func (r *CategoryRepo) ListVisible(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	const q = `
SELECT ` + categoryCols + `
FROM categories
WHERE user_id IS NULL OR user_id=$1
ORDER BY is_default DESC, name ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.Icon, &c.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a category row.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	const q = `
UPDATE categories SET name=$2, type=$3, color=$4, icon=$5 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.Name, c.Type, c.Color, c.Icon)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a category row.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return err
}

// InUse reports whether the user has transactions referencing the category.
func (r *CategoryRepo) InUse(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM transactions WHERE category_id=$1 AND user_id=$2
)`
	var used bool
	if err := r.db.Pool.QueryRow(ctx, q, id, userID).Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}
