package postgres

import (
	"context"
	"errors"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// TokenRepo implements RefreshTokenRepository using PostgreSQL.
type TokenRepo struct{ db *DB }

// NewTokenRepo constructs a refresh-token repository.
func NewTokenRepo(db *DB) *TokenRepo { return &TokenRepo{db: db} }

// Create inserts a new session row.
func (r *TokenRepo) Create(ctx context.Context, t *model.RefreshToken) error {
	const q = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, t.ID, t.UserID, t.TokenHash, t.ExpiresAt)
	return err
}

// GetByHash selects the session matching a secret digest.
func (r *TokenRepo) GetByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const q = `
SELECT id, user_id, token_hash, expires_at
FROM refresh_tokens WHERE token_hash=$1`
	row := r.db.Pool.QueryRow(ctx, q, tokenHash)
	var t model.RefreshToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &t, nil
}

// Delete removes a session row by ID.
func (r *TokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE id=$1`, id)
	return err
}

// DeleteByHash removes the session matching a digest. Deleting nothing is not an error.
func (r *TokenRepo) DeleteByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash=$1`, tokenHash)
	return err
}

// Rotate deletes the consumed session and inserts its replacement in one
// transaction. The delete is guarded: if the consumed row is already gone, a
// concurrent rotation won the race, so nothing is inserted and ErrNotFound is
// returned. A failure anywhere rolls back both, so at most one of the two
// secrets is ever valid.
func (r *TokenRepo) Rotate(ctx context.Context, consumedID uuid.UUID, next *model.RefreshToken) error {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE id=$1`, consumedID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	const ins = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, ins, next.ID, next.UserID, next.TokenHash, next.ExpiresAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
