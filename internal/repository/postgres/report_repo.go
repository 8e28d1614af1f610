package postgres

import (
	"context"
	"time"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ReportRepo implements ReportRepository using PostgreSQL.
type ReportRepo struct{ db *DB }

// NewReportRepo constructs a report repository.
func NewReportRepo(db *DB) *ReportRepo { return &ReportRepo{db: db} }

// SpendingByCategory totals expense transactions per visible expense category
// for one month, largest total first. Categories without spend are omitted.
func (r *ReportRepo) SpendingByCategory(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error) {
	const q = `
SELECT c.id, c.name, c.color, c.icon, COALESCE(SUM(t.amount), 0) AS total
FROM categories c
JOIN transactions t ON t.category_id = c.id
  AND t.user_id = $1 AND t.type = 'expense'
  AND to_char(t.date, 'YYYY-MM') = $2
WHERE (c.user_id IS NULL OR c.user_id = $1) AND c.type = 'expense'
GROUP BY c.id, c.name, c.color, c.icon
HAVING SUM(t.amount) > 0
ORDER BY total DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategorySpend
	for rows.Next() {
		var s model.CategorySpend
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.CategoryColor, &s.CategoryIcon, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MonthlyTrend groups income and expense totals per month from since onward.
func (r *ReportRepo) MonthlyTrend(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.MonthlyTrendPoint, error) {
	const q = `
SELECT to_char(date, 'YYYY-MM') AS month,
       SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END) AS income,
       SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expense
FROM transactions
WHERE user_id = $1 AND date >= $2
GROUP BY month
ORDER BY month ASC`
	rows, err := r.db.Pool.Query(ctx, q, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MonthlyTrendPoint
	for rows.Next() {
		var p model.MonthlyTrendPoint
		if err := rows.Scan(&p.Month, &p.Income, &p.Expense); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MonthlySummary totals one month of the user's activity.
func (r *ReportRepo) MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error) {
	const q = `
SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0),
       COUNT(*)
FROM transactions
WHERE user_id = $1 AND to_char(date, 'YYYY-MM') = $2`
	var s model.MonthlySummary
	s.Month = month
	if err := r.db.Pool.QueryRow(ctx, q, userID, month).Scan(&s.TotalIncome, &s.TotalExpense, &s.TransactionCount); err != nil {
		return nil, err
	}
	return &s, nil
}
