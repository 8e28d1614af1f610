package repository

import (
	"context"
	"time"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// RecurringRuleRepository provides rule CRUD plus the scheduler's two primitives.
type RecurringRuleRepository interface {
	// Create inserts a rule.
	Create(ctx context.Context, r *model.RecurringRule) error
	// Get loads one of the user's rules by ID.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error)
	// ListByUser returns all of the user's rules, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	// Update rewrites a rule's mutable fields.
	Update(ctx context.Context, r *model.RecurringRule) error
	// Delete removes a rule row.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListDue returns candidate rules for a scheduling pass: active, started on
	// or before today, not ended, and not already run today. A necessary
	// pre-filter only; the per-frequency due check decides sufficiency.
	ListDue(ctx context.Context, today time.Time) ([]model.RecurringRule, error)

	// Materialize atomically advances the rule's last_run_date to today and
	// inserts the resulting transaction, in one storage transaction. The
	// advance re-checks last_run_date < today, so a concurrent pass that
	// already ran the rule makes this a no-op; the return reports whether a
	// transaction was created.
	Materialize(ctx context.Context, r *model.RecurringRule, today time.Time) (bool, error)
}
