package postgres

import (
	"context"
	"errors"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// BudgetRepo implements BudgetRepository using PostgreSQL.
type BudgetRepo struct{ db *DB }

// NewBudgetRepo constructs a budget repository.
func NewBudgetRepo(db *DB) *BudgetRepo { return &BudgetRepo{db: db} }

const budgetCols = `id, user_id, category_id, month, amount, created_at, updated_at`

// Create inserts a budget row. The (user, category, month) unique index
// enforces at most one budget per category per month.
func (r *BudgetRepo) Create(ctx context.Context, b *model.Budget) error {
	const q = `
INSERT INTO budgets (id, user_id, category_id, month, amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, b.ID, b.UserID, b.CategoryID, b.Month, b.Amount, b.CreatedAt, b.UpdatedAt)
	if isUniqueViolation(err) {
		return errs.ErrBudgetExists
	}
	return err
}

// Get selects one of the user's budgets by ID.
func (r *BudgetRepo) Get(ctx context.Context, userID, id uuid.UUID) (*model.Budget, error) {
	const q = `
SELECT ` + budgetCols + `
FROM budgets WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var b model.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &b, nil
}

// ListByMonth selects the user's budgets for a month, ordered by category name.
func (r *BudgetRepo) ListByMonth(ctx context.Context, userID uuid.UUID, month string) ([]model.Budget, error) {
	const q = `
SELECT b.id, b.user_id, b.category_id, b.month, b.amount, b.created_at, b.updated_at
FROM budgets b
JOIN categories c ON c.id = b.category_id
WHERE b.user_id=$1 AND b.month=$2
ORDER BY c.name ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SpentInMonth sums the user's expense transactions for a category in a month.
func (r *BudgetRepo) SpentInMonth(ctx context.Context, userID, categoryID uuid.UUID, month string) (float64, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE user_id=$1 AND category_id=$2 AND type='expense' AND to_char(date, 'YYYY-MM')=$3`
	var spent float64
	if err := r.db.Pool.QueryRow(ctx, q, userID, categoryID, month).Scan(&spent); err != nil {
		return 0, err
	}
	return spent, nil
}

// Update rewrites the mutable fields of a budget row.
func (r *BudgetRepo) Update(ctx context.Context, b *model.Budget) error {
	const q = `
UPDATE budgets SET category_id=$2, month=$3, amount=$4, updated_at=$5 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, b.ID, b.CategoryID, b.Month, b.Amount, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrBudgetExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a budget row.
func (r *BudgetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM budgets WHERE id=$1`, id)
	return err
}
