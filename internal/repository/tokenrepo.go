package repository

import (
	"context"

	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
)

// RefreshTokenRepository stores hashed refresh secrets, one row per session.
type RefreshTokenRepository interface {
	// Create inserts a new session row.
	Create(ctx context.Context, t *model.RefreshToken) error
	// GetByHash loads the session matching a secret's digest.
	GetByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	// Delete removes a session row by ID.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByHash removes the session matching a digest. Idempotent.
	DeleteByHash(ctx context.Context, tokenHash string) error
	// Rotate deletes the consumed session and inserts its replacement as one
	// atomic unit, so a crash can never leave both secrets valid. Returns
	// ErrNotFound without inserting when the consumed row no longer exists,
	// which is how a rotation that lost a race with another consumer of the
	// same secret fails.
	Rotate(ctx context.Context, consumedID uuid.UUID, next *model.RefreshToken) error
}
