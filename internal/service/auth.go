// Package service contains application services for authentication, scheduling,
// and the surrounding ledger operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetd/internal/clock"
	pkgcrypto "budgetd/internal/crypto"
	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService turns credentials into token pairs, verifies access tokens,
// and rotates refresh tokens.
type AuthService interface {
	// Register creates a new account and issues its first token pair.
	Register(ctx context.Context, email, password, name string) (model.UserDTO, model.TokenPair, error)
	// Login authenticates by email and password and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (model.UserDTO, model.TokenPair, error)
	// Refresh exchanges a raw refresh secret for a new token pair, consuming it.
	Refresh(ctx context.Context, rawRefreshToken string) (model.UserDTO, model.TokenPair, error)
	// Logout deletes the session matching the secret. Idempotent.
	Logout(ctx context.Context, rawRefreshToken string) error
	// VerifyAccessToken validates signature and expiry and resolves the subject.
	VerifyAccessToken(ctx context.Context, token string) (model.UserDTO, error)
}

// accessClaims binds the user's identity into the signed access token.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthServiceImpl struct {
	users      repository.UserRepository
	tokens     repository.RefreshTokenRepository
	signKey    []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository,
	signKey []byte, accessTTL, refreshTTL time.Duration, clk clock.Clock) *AuthServiceImpl {
	return &AuthServiceImpl{
		users:      users,
		tokens:     tokens,
		signKey:    signKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clk,
	}
}

// Register creates a new user with a bcrypt-hashed password and issues a token pair.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (model.UserDTO, model.TokenPair, error) {
	if email == "" || password == "" {
		return model.UserDTO{}, model.TokenPair{}, fmt.Errorf("%w: email/password", errs.ErrValidation)
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}

	now := s.clock.Now()
	u := &model.User{
		ID:           uid,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique index on email decides conflicts, so concurrent registrations
	// of the same address cannot both succeed.
	if err := s.users.Create(ctx, u); err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}

	pair, err := s.issueTokenPair(ctx, u)
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}
	return u.DTO(), pair, nil
}

// Login authenticates by email and password. The failure is the same sentinel
// whether the email is unknown or the password is wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (model.UserDTO, model.TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.UserDTO{}, model.TokenPair{}, errs.ErrInvalidCredentials
		}
		return model.UserDTO{}, model.TokenPair{}, err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return model.UserDTO{}, model.TokenPair{}, errs.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, u)
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}
	return u.DTO(), pair, nil
}

// Refresh consumes a raw refresh secret and rotates the session: the old row
// is deleted and a replacement inserted as one atomic unit. A consumed secret
// can never be used again.
func (s *AuthServiceImpl) Refresh(ctx context.Context, rawRefreshToken string) (model.UserDTO, model.TokenPair, error) {
	stored, err := s.tokens.GetByHash(ctx, pkgcrypto.HashToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.UserDTO{}, model.TokenPair{}, errs.ErrInvalidRefreshToken
		}
		return model.UserDTO{}, model.TokenPair{}, err
	}

	now := s.clock.Now()
	if now.After(stored.ExpiresAt) {
		// Garbage-collect the stale row on use. Best effort: the row is
		// expired either way, and the caller's error is ErrTokenExpired
		// regardless of whether the cleanup stuck.
		_ = s.tokens.Delete(ctx, stored.ID)
		return model.UserDTO{}, model.TokenPair{}, errs.ErrTokenExpired
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.UserDTO{}, model.TokenPair{}, errs.ErrInvalidRefreshToken
		}
		return model.UserDTO{}, model.TokenPair{}, err
	}

	rawNext, next, err := s.newRefreshToken(u.ID, now)
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}
	if err := s.tokens.Rotate(ctx, stored.ID, next); err != nil {
		// The consumed row vanished between GetByHash and Rotate: a concurrent
		// refresh with the same secret won the race. Only the winner's pair is
		// valid.
		if errors.Is(err, errs.ErrNotFound) {
			return model.UserDTO{}, model.TokenPair{}, errs.ErrInvalidRefreshToken
		}
		return model.UserDTO{}, model.TokenPair{}, err
	}

	access, exp, err := s.issueAccessToken(u, now)
	if err != nil {
		return model.UserDTO{}, model.TokenPair{}, err
	}
	return u.DTO(), model.TokenPair{AccessToken: access, RefreshToken: rawNext, AccessExpiresAt: exp}, nil
}

// Logout deletes the session matching the secret. Unknown secrets are not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, rawRefreshToken string) error {
	return s.tokens.DeleteByHash(ctx, pkgcrypto.HashToken(rawRefreshToken))
}

// VerifyAccessToken validates the token's signature and expiry, then resolves
// its subject. Deleting an account invalidates all outstanding access tokens
// on next verification.
func (s *AuthServiceImpl) VerifyAccessToken(ctx context.Context, token string) (model.UserDTO, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.UserDTO{}, errs.ErrTokenExpired
		}
		return model.UserDTO{}, errs.ErrUnauthorized
	}

	sub, err := uuid.FromString(claims.Subject)
	if err != nil {
		return model.UserDTO{}, errs.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.UserDTO{}, errs.ErrUnauthorized
		}
		return model.UserDTO{}, err
	}
	return u.DTO(), nil
}

// issueTokenPair mints an access token and persists a new refresh session.
func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, u *model.User) (model.TokenPair, error) {
	now := s.clock.Now()

	access, exp, err := s.issueAccessToken(u, now)
	if err != nil {
		return model.TokenPair{}, err
	}
	raw, t, err := s.newRefreshToken(u.ID, now)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{AccessToken: access, RefreshToken: raw, AccessExpiresAt: exp}, nil
}

// issueAccessToken creates a signed HS256 JWT for the given user.
func (s *AuthServiceImpl) issueAccessToken(u *model.User, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.accessTTL)
	claims := accessClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// newRefreshToken mints an opaque secret and the row storing its digest.
// The raw secret is returned to the caller exactly once.
func (s *AuthServiceImpl) newRefreshToken(userID uuid.UUID, now time.Time) (string, *model.RefreshToken, error) {
	raw, err := pkgcrypto.NewRefreshSecret()
	if err != nil {
		return "", nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", nil, err
	}
	return raw, &model.RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: pkgcrypto.HashToken(raw),
		ExpiresAt: now.Add(s.refreshTTL),
	}, nil
}
