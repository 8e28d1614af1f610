package repository

import (
	"context"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CategoryRepository provides access to the shared category pool:
// default rows (user_id NULL) plus the user's private rows.
type CategoryRepository interface {
	// Create inserts a private category.
	Create(ctx context.Context, c *model.Category) error
	// GetVisible loads a category that is either a default or owned by userID.
	GetVisible(ctx context.Context, userID, id uuid.UUID) (*model.Category, error)
	// GetOwned loads a category owned by userID. Defaults are not owned by anyone.
	GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Category, error)
	// ListVisible returns defaults first, then the user's own, name-sorted within each.
	ListVisible(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	// Update rewrites a category's mutable fields.
	Update(ctx context.Context, c *model.Category) error
	// Delete removes a category row.
	Delete(ctx context.Context, id uuid.UUID) error
	// InUse reports whether any of the user's transactions reference the category.
	InUse(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
