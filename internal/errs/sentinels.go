// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists indicates a registration attempt with an already-taken email.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. Returned both for an unknown
	// email and for a wrong password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRefreshToken indicates the supplied refresh secret matches no stored session.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenExpired indicates an access or refresh token past its expiry.
	// Kept distinct from ErrUnauthorized so clients know a refresh may help.
	ErrTokenExpired = errors.New("token expired")

	// ErrUnauthorized indicates any other authentication failure (malformed token,
	// bad signature, deleted account).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBudgetExists indicates a budget already exists for the (category, month) pair.
	ErrBudgetExists = errors.New("budget for this category and month already exists")

	// ErrCategoryInUse indicates a category delete blocked by existing transactions.
	ErrCategoryInUse = errors.New("cannot delete category with existing transactions")

	// ErrValidation indicates input the services reject before touching storage.
	// Services wrap it with the offending field, e.g. fmt.Errorf("%w: amount", ErrValidation).
	ErrValidation = errors.New("validation failed")
)

// Code returns the stable machine-readable code for a sentinel, or INTERNAL_ERROR
// for anything outside the taxonomy.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrEmailExists):
		return "EMAIL_EXISTS"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrInvalidRefreshToken):
		return "INVALID_REFRESH_TOKEN"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrBudgetExists):
		return "BUDGET_EXISTS"
	case errors.Is(err, ErrCategoryInUse):
		return "CATEGORY_IN_USE"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
