package postgres

import (
	"context"
	"errors"
	"time"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// RuleRepo implements RecurringRuleRepository using PostgreSQL.
type RuleRepo struct{ db *DB }

// NewRuleRepo constructs a recurring-rule repository.
func NewRuleRepo(db *DB) *RuleRepo { return &RuleRepo{db: db} }

const ruleCols = `id, user_id, category_id, type, amount, description, frequency,
       start_date, end_date, last_run_date, is_active, created_at, updated_at`

func scanRule(row pgx.Row) (*model.RecurringRule, error) {
	var r model.RecurringRule
	err := row.Scan(&r.ID, &r.UserID, &r.CategoryID, &r.Type, &r.Amount, &r.Description,
		&r.Frequency, &r.StartDate, &r.EndDate, &r.LastRunDate, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a rule row.
func (rr *RuleRepo) Create(ctx context.Context, r *model.RecurringRule) error {
	const q = `
INSERT INTO recurring_rules (id, user_id, category_id, type, amount, description, frequency,
       start_date, end_date, last_run_date, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := rr.db.Pool.Exec(ctx, q, r.ID, r.UserID, r.CategoryID, r.Type, r.Amount, r.Description,
		r.Frequency, r.StartDate, r.EndDate, r.LastRunDate, r.IsActive, r.CreatedAt, r.UpdatedAt)
	return err
}

// Get selects one of the user's rules by ID.
func (rr *RuleRepo) Get(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error) {
	const q = `
SELECT ` + ruleCols + `
FROM recurring_rules WHERE id=$1 AND user_id=$2`
	r, err := scanRule(rr.db.Pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return r, nil
}

// ListByUser selects all of the user's rules, newest first.
func (rr *RuleRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	const q = `
SELECT ` + ruleCols + `
FROM recurring_rules WHERE user_id=$1
ORDER BY created_at DESC`
	return rr.queryRules(ctx, q, userID)
}

// Update rewrites the mutable fields of a rule row.
func (rr *RuleRepo) Update(ctx context.Context, r *model.RecurringRule) error {
	const q = `
UPDATE recurring_rules
SET category_id=$2, type=$3, amount=$4, description=$5, frequency=$6,
    start_date=$7, end_date=$8, is_active=$9, updated_at=$10
WHERE id=$1`
	tag, err := rr.db.Pool.Exec(ctx, q, r.ID, r.CategoryID, r.Type, r.Amount, r.Description,
		r.Frequency, r.StartDate, r.EndDate, r.IsActive, r.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a rule row. Materialized transactions keep their provenance
// link nulled by the FK, never deleted.
func (rr *RuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := rr.db.Pool.Exec(ctx, `DELETE FROM recurring_rules WHERE id=$1`, id)
	return err
}

// ListDue selects candidate rules for an evaluation pass.
func (rr *RuleRepo) ListDue(ctx context.Context, today time.Time) ([]model.RecurringRule, error) {
	const q = `
SELECT ` + ruleCols + `
FROM recurring_rules
WHERE is_active
  AND start_date <= $1
  AND (end_date IS NULL OR end_date >= $1)
  AND (last_run_date IS NULL OR last_run_date < $1)`
	return rr.queryRules(ctx, q, today)
}

// Materialize advances last_run_date and inserts the produced transaction in
// one storage transaction. The guarded UPDATE re-checks last_run_date < today,
// so a pass racing with another evaluation commits nothing and reports false.
func (rr *RuleRepo) Materialize(ctx context.Context, r *model.RecurringRule, today time.Time) (bool, error) {
	tx, err := rr.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const advance = `
UPDATE recurring_rules
SET last_run_date=$2, updated_at=$3
WHERE id=$1 AND (last_run_date IS NULL OR last_run_date < $2)`
	tag, err := tx.Exec(ctx, advance, r.ID, today, today)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// Another pass already ran this rule for today.
		return false, nil
	}

	txID, err := uuid.NewV4()
	if err != nil {
		return false, err
	}
	const ins = `
INSERT INTO transactions (id, user_id, category_id, type, amount, description, date, recurring_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.Exec(ctx, ins, txID, r.UserID, r.CategoryID, r.Type, r.Amount,
		r.Description, today, r.ID, today, today); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (rr *RuleRepo) queryRules(ctx context.Context, q string, args ...any) ([]model.RecurringRule, error) {
	rows, err := rr.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RecurringRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
