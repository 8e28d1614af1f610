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

// RecurringInput carries the user-settable rule fields.
type RecurringInput struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Type        model.TxType    `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Frequency   model.Frequency `json:"frequency"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
}

// RecurringUpdate carries partial edits; nil fields are left unchanged.
// LastRunDate is scheduler-owned and cannot be edited here.
type RecurringUpdate struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Type        *model.TxType    `json:"type"`
	Amount      *float64         `json:"amount"`
	Description *string          `json:"description"`
	Frequency   *model.Frequency `json:"frequency"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
}

// RecurringService manages a user's recurring-rule templates.
type RecurringService interface {
	// List returns all of the user's rules, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	// Get loads one rule.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error)
	// Create adds an active rule referencing a category visible to the user.
	Create(ctx context.Context, userID uuid.UUID, in RecurringInput) (*model.RecurringRule, error)
	// Update applies partial edits, including deactivation via IsActive.
	Update(ctx context.Context, userID, id uuid.UUID, in RecurringUpdate) (*model.RecurringRule, error)
	// Delete removes a rule. Its materialized transactions survive.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type RecurringServiceImpl struct {
	rules      repository.RecurringRuleRepository
	categories repository.CategoryRepository
	clock      clock.Clock
}

var _ RecurringService = (*RecurringServiceImpl)(nil)

// NewRecurringService constructs RecurringService.
func NewRecurringService(rules repository.RecurringRuleRepository,
	categories repository.CategoryRepository, clk clock.Clock) *RecurringServiceImpl {
	return &RecurringServiceImpl{rules: rules, categories: categories, clock: clk}
}

func (s *RecurringServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	return s.rules.ListByUser(ctx, userID)
}

func (s *RecurringServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error) {
	return s.rules.Get(ctx, userID, id)
}

func (s *RecurringServiceImpl) Create(ctx context.Context, userID uuid.UUID, in RecurringInput) (*model.RecurringRule, error) {
	if !in.Type.Valid() || !in.Frequency.Valid() || in.Amount <= 0 || in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: type/frequency/amount/start_date", errs.ErrValidation)
	}
	if _, err := s.categories.GetVisible(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	r := &model.RecurringRule{
		ID:          id,
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Frequency:   in.Frequency,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecurringServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, in RecurringUpdate) (*model.RecurringRule, error) {
	r, err := s.rules.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetVisible(ctx, userID, *in.CategoryID); err != nil {
			return nil, err
		}
		r.CategoryID = *in.CategoryID
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, fmt.Errorf("%w: type", errs.ErrValidation)
		}
		r.Type = *in.Type
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount", errs.ErrValidation)
		}
		r.Amount = *in.Amount
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Frequency != nil {
		if !in.Frequency.Valid() {
			return nil, fmt.Errorf("%w: frequency", errs.ErrValidation)
		}
		r.Frequency = *in.Frequency
	}
	if in.StartDate != nil {
		r.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		r.EndDate = in.EndDate
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	r.UpdatedAt = s.clock.Now()
	if err := s.rules.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecurringServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.rules.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.rules.Delete(ctx, id)
}
