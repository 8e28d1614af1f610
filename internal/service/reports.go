package service

import (
	"context"
	"math"
	"time"

	"budgetd/internal/clock"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// defaultTrendMonths is the report window when the caller gives none.
const defaultTrendMonths = 6

// ReportService produces the aggregate views over a user's transactions.
type ReportService interface {
	// SpendingByCategory breaks down a month's expenses per category with
	// percentage shares of the month's total.
	SpendingByCategory(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error)
	// MonthlyTrend returns per-month income/expense/balance over the last months.
	MonthlyTrend(ctx context.Context, userID uuid.UUID, months int) ([]model.MonthlyTrendPoint, error)
	// MonthlySummary totals one month of activity.
	MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error)
}

type ReportServiceImpl struct {
	reports repository.ReportRepository
	clock   clock.Clock
}

var _ ReportService = (*ReportServiceImpl)(nil)

// NewReportService constructs ReportService.
func NewReportService(reports repository.ReportRepository, clk clock.Clock) *ReportServiceImpl {
	return &ReportServiceImpl{reports: reports, clock: clk}
}

func (s *ReportServiceImpl) SpendingByCategory(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error) {
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	}
	rows, err := s.reports.SpendingByCategory(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	var grand float64
	for _, r := range rows {
		grand += r.Total
	}
	for i := range rows {
		if grand > 0 {
			rows[i].Percentage = int(math.Round(rows[i].Total / grand * 100))
		}
	}
	return rows, nil
}

func (s *ReportServiceImpl) MonthlyTrend(ctx context.Context, userID uuid.UUID, months int) ([]model.MonthlyTrendPoint, error) {
	if months <= 0 {
		months = defaultTrendMonths
	}
	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := monthStart.AddDate(0, -months, 0)

	points, err := s.reports.MonthlyTrend(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Balance = points[i].Income - points[i].Expense
	}
	return points, nil
}

func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error) {
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	}
	sum, err := s.reports.MonthlySummary(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense
	return sum, nil
}
