// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides access to account rows.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrEmailExists on a duplicate email.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email, byte-exact.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
