package repository

import (
	"context"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// BudgetRepository provides owner-scoped access to monthly budgets.
type BudgetRepository interface {
	// Create inserts a budget. Returns errs.ErrBudgetExists when a budget for
	// the same (user, category, month) is already present.
	Create(ctx context.Context, b *model.Budget) error
	// Get loads one of the user's budgets by ID.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Budget, error)
	// ListByMonth returns the user's budgets for a "YYYY-MM" month, category-name order.
	ListByMonth(ctx context.Context, userID uuid.UUID, month string) ([]model.Budget, error)
	// SpentInMonth sums the user's expense transactions for a category in a month.
	SpentInMonth(ctx context.Context, userID, categoryID uuid.UUID, month string) (float64, error)
	// Update rewrites a budget's mutable fields.
	Update(ctx context.Context, b *model.Budget) error
	// Delete removes a budget row.
	Delete(ctx context.Context, id uuid.UUID) error
}
