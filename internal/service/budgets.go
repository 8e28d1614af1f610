package service

import (
	"context"
	"fmt"
	"math"

	"budgetd/internal/clock"
	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// BudgetInput carries the user-settable budget fields. Month is "YYYY-MM".
type BudgetInput struct {
	CategoryID uuid.UUID `json:"category_id"`
	Month      string    `json:"month"`
	Amount     float64   `json:"amount"`
}

// BudgetUpdate carries partial edits; nil fields are left unchanged.
type BudgetUpdate struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Month      *string    `json:"month"`
	Amount     *float64   `json:"amount"`
}

// BudgetService manages monthly spending limits and their spend-to-date view.
type BudgetService interface {
	// List returns the user's budgets for a month with spent/remaining computed.
	List(ctx context.Context, userID uuid.UUID, month string) ([]model.BudgetStatus, error)
	// Create adds a budget; at most one per (category, month).
	Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*model.BudgetStatus, error)
	// Update applies partial edits to one of the user's budgets.
	Update(ctx context.Context, userID, id uuid.UUID, in BudgetUpdate) (*model.BudgetStatus, error)
	// Delete removes one of the user's budgets.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetServiceImpl struct {
	budgets    repository.BudgetRepository
	categories repository.CategoryRepository
	clock      clock.Clock
}

var _ BudgetService = (*BudgetServiceImpl)(nil)

// NewBudgetService constructs BudgetService.
func NewBudgetService(budgets repository.BudgetRepository,
	categories repository.CategoryRepository, clk clock.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{budgets: budgets, categories: categories, clock: clk}
}

func (s *BudgetServiceImpl) List(ctx context.Context, userID uuid.UUID, month string) ([]model.BudgetStatus, error) {
	if month == "" {
		month = s.clock.Now().Format("2006-01")
	}
	budgets, err := s.budgets.ListByMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	out := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		st, err := s.status(ctx, &b)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, nil
}

func (s *BudgetServiceImpl) Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*model.BudgetStatus, error) {
	if in.Amount <= 0 || len(in.Month) != 7 {
		return nil, fmt.Errorf("%w: month/amount", errs.ErrValidation)
	}
	if _, err := s.categories.GetVisible(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	b := &model.Budget{
		ID:         id,
		UserID:     userID,
		CategoryID: in.CategoryID,
		Month:      in.Month,
		Amount:     in.Amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.status(ctx, b)
}

func (s *BudgetServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, in BudgetUpdate) (*model.BudgetStatus, error) {
	b, err := s.budgets.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetVisible(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		b.CategoryID = *in.CategoryID
	}
	if in.Month != nil {
		if len(*in.Month) != 7 {
			return nil, fmt.Errorf("%w: month", errs.ErrValidation)
		}
		b.Month = *in.Month
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount", errs.ErrValidation)
		}
		b.Amount = *in.Amount
	}
	b.UpdatedAt = s.clock.Now()
	if err := s.budgets.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.status(ctx, b)
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.budgets.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.budgets.Delete(ctx, id)
}

// status derives the spend-to-date fields for one budget.
func (s *BudgetServiceImpl) status(ctx context.Context, b *model.Budget) (*model.BudgetStatus, error) {
	spent, err := s.budgets.SpentInMonth(ctx, b.UserID, b.CategoryID, b.Month)
	if err != nil {
		return nil, err
	}
	st := &model.BudgetStatus{
		Budget:    *b,
		Spent:     spent,
		Remaining: b.Amount - spent,
	}
	if b.Amount > 0 {
		st.PercentUsed = int(math.Round(spent / b.Amount * 100))
	}
	return st, nil
}
