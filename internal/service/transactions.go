package service

import (
	"context"
	"fmt"
	"time"

	"budgetd/internal/clock"
	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// Listing page bounds, matching the API's defaults.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionInput carries the user-settable transaction fields.
type TransactionInput struct {
	CategoryID  uuid.UUID    `json:"category_id"`
	Type        model.TxType `json:"type"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
}

// TransactionUpdate carries partial edits; nil fields are left unchanged.
type TransactionUpdate struct {
	CategoryID  *uuid.UUID    `json:"category_id"`
	Type        *model.TxType `json:"type"`
	Amount      *float64      `json:"amount"`
	Description *string       `json:"description"`
	Date        *time.Time    `json:"date"`
}

// TransactionService manages a user's income/expense entries.
type TransactionService interface {
	// List returns a filtered page of the user's transactions.
	List(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error)
	// Get loads one transaction.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	// Create records a transaction against a category visible to the user.
	Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*model.Transaction, error)
	// Update applies partial edits to one of the user's transactions.
	Update(ctx context.Context, userID, id uuid.UUID, in TransactionUpdate) (*model.Transaction, error)
	// Delete removes one of the user's transactions.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TransactionServiceImpl struct {
	transactions repository.TransactionRepository
	categories   repository.CategoryRepository
	clock        clock.Clock
}

var _ TransactionService = (*TransactionServiceImpl)(nil)

// NewTransactionService constructs TransactionService.
func NewTransactionService(transactions repository.TransactionRepository,
	categories repository.CategoryRepository, clk clock.Clock) *TransactionServiceImpl {
	return &TransactionServiceImpl{transactions: transactions, categories: categories, clock: clk}
}

func (s *TransactionServiceImpl) List(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
	return s.transactions.List(ctx, userID, f)
}

func (s *TransactionServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	return s.transactions.Get(ctx, userID, id)
}

func (s *TransactionServiceImpl) Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*model.Transaction, error) {
	if !in.Type.Valid() || in.Amount <= 0 || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: type/amount/date", errs.ErrValidation)
	}
	// A referenced category must be a default or owned by the acting user.
	if _, err := s.categories.GetVisible(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	t := &model.Transaction{
		ID:          id,
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, in TransactionUpdate) (*model.Transaction, error) {
	t, err := s.transactions.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetVisible(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		t.CategoryID = *in.CategoryID
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, fmt.Errorf("%w: type", errs.ErrValidation)
		}
		t.Type = *in.Type
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount", errs.ErrValidation)
		}
		t.Amount = *in.Amount
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	t.UpdatedAt = s.clock.Now()
	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.transactions.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.transactions.Delete(ctx, id)
}
