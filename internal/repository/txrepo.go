package repository

import (
	"context"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TransactionRepository provides owner-scoped access to transaction rows.
type TransactionRepository interface {
	// Create inserts a transaction.
	Create(ctx context.Context, t *model.Transaction) error
	// Get loads one of the user's transactions by ID.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	// List returns a page of the user's transactions, newest date first.
	List(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error)
	// Update rewrites a transaction's mutable fields.
	Update(ctx context.Context, t *model.Transaction) error
	// Delete removes a transaction row.
	Delete(ctx context.Context, id uuid.UUID) error
}
