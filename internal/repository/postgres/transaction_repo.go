package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TransactionRepo implements TransactionRepository using PostgreSQL.
type TransactionRepo struct{ db *DB }

// NewTransactionRepo constructs a transaction repository.
func NewTransactionRepo(db *DB) *TransactionRepo { return &TransactionRepo{db: db} }

const txCols = `id, user_id, category_id, type, amount, description, date, recurring_id, created_at, updated_at`

// Create inserts a transaction row.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	const q = `
INSERT INTO transactions (id, user_id, category_id, type, amount, description, date, recurring_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Pool.Exec(ctx, q,
		t.ID, t.UserID, t.CategoryID, t.Type, t.Amount, t.Description, t.Date, t.RecurringID, t.CreatedAt, t.UpdatedAt)
	return err
}

// Get selects one of the user's transactions by ID.
func (r *TransactionRepo) Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	const q = `
SELECT ` + txCols + `
FROM transactions WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var t model.Transaction
	if err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount,
		&t.Description, &t.Date, &t.RecurringID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &t, nil
}

// List returns one page of the user's transactions matching the filter.
func (r *TransactionRepo) List(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error) {
	conds := []string{"user_id=$1"}
	args := []any{userID}

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != nil {
		add("type=$%d", *f.Type)
	}
	if f.CategoryID != nil {
		add("category_id=$%d", *f.CategoryID)
	}
	if f.StartDate != nil {
		add("date>=$%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date<=$%d", *f.EndDate)
	}
	where := strings.Join(conds, " AND ")

	var total int
	countQ := `SELECT count(*) FROM transactions WHERE ` + where
	if err := r.db.Pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQ := `SELECT ` + txCols + ` FROM transactions WHERE ` + where +
		fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.Pool.Query(ctx, listQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Transaction, 0, f.Limit)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount,
			&t.Description, &t.Date, &t.RecurringID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	return &model.TransactionPage{
		Data:       out,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update rewrites the mutable fields of a transaction row.
func (r *TransactionRepo) Update(ctx context.Context, t *model.Transaction) error {
	const q = `
UPDATE transactions
SET category_id=$2, type=$3, amount=$4, description=$5, date=$6, updated_at=$7
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, t.ID, t.CategoryID, t.Type, t.Amount, t.Description, t.Date, t.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a transaction row.
func (r *TransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	return err
}
