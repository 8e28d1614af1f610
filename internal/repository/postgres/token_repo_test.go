package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestTokenRepo_CreateAndGetByHash(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTokenRepo(db)
	ctx := context.Background()
	tok := &model.RefreshToken{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    uuid.Must(uuid.NewV4()),
		TokenHash: "digest",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens \(id, user_id, token_hash, expires_at\)`).
		WithArgs(tok.ID, tok.UserID, tok.TokenHash, tok.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, tok))

	mock.ExpectQuery(`SELECT id, user_id, token_hash, expires_at\s+FROM refresh_tokens WHERE token_hash=\$1`).
		WithArgs("digest").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at"}).
			AddRow(tok.ID, tok.UserID, tok.TokenHash, tok.ExpiresAt))
	got, err := r.GetByHash(ctx, "digest")
	require.NoError(t, err)
	require.Equal(t, tok.ID, got.ID)

	mock.ExpectQuery(`SELECT id, user_id, token_hash, expires_at\s+FROM refresh_tokens WHERE token_hash=\$1`).
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByHash(ctx, "unknown")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTokenRepo_DeleteByHash_NoRowsIsFine(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTokenRepo(db)

	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE token_hash=\$1`).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, r.DeleteByHash(context.Background(), "gone"))
}

func TestTokenRepo_Rotate_Commits(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTokenRepo(db)
	consumed := uuid.Must(uuid.NewV4())
	next := &model.RefreshToken{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    uuid.Must(uuid.NewV4()),
		TokenHash: "next-digest",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE id=\$1`).
		WithArgs(consumed).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens \(id, user_id, token_hash, expires_at\)`).
		WithArgs(next.ID, next.UserID, next.TokenHash, next.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, r.Rotate(context.Background(), consumed, next))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Rotate_ConsumedRowGone(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTokenRepo(db)
	consumed := uuid.Must(uuid.NewV4())
	next := &model.RefreshToken{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    uuid.Must(uuid.NewV4()),
		TokenHash: "next-digest",
		ExpiresAt: time.Now(),
	}

	// A concurrent rotation already consumed the row: the delete affects zero
	// rows, nothing may be inserted, and the tx must roll back.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE id=\$1`).
		WithArgs(consumed).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	require.ErrorIs(t, r.Rotate(context.Background(), consumed, next), errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_Rotate_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTokenRepo(db)
	consumed := uuid.Must(uuid.NewV4())
	next := &model.RefreshToken{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    uuid.Must(uuid.NewV4()),
		TokenHash: "next-digest",
		ExpiresAt: time.Now(),
	}
	boom := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM refresh_tokens WHERE id=\$1`).
		WithArgs(consumed).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens \(id, user_id, token_hash, expires_at\)`).
		WithArgs(next.ID, next.UserID, next.TokenHash, next.ExpiresAt).
		WillReturnError(boom)
	mock.ExpectRollback()

	require.ErrorIs(t, r.Rotate(context.Background(), consumed, next), boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
