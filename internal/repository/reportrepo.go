package repository

import (
	"context"
	"time"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ReportRepository runs the aggregate queries behind the report endpoints.
// Percentage shares are derived by the service, not the store.
type ReportRepository interface {
	// SpendingByCategory totals the user's expense transactions per category
	// for a "YYYY-MM" month, largest first. Percentage is left zero.
	SpendingByCategory(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error)
	// MonthlyTrend groups income and expense totals per month from since onward.
	// Balance is left zero.
	MonthlyTrend(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.MonthlyTrendPoint, error)
	// MonthlySummary totals one month of the user's activity. Balance is left zero.
	MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error)
}
