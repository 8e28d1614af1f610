// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// TxType discriminates money flowing in from money flowing out.
type TxType string

const (
	TypeIncome  TxType = "income"
	TypeExpense TxType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool { return t == TypeIncome || t == TypeExpense }

// Frequency is the cadence of a recurring rule.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// Valid reports whether f is a supported cadence.
func (f Frequency) Valid() bool {
	return f == FreqDaily || f == FreqWeekly || f == FreqMonthly
}

// User is an account row. PasswordHash never leaves the auth service.
type User struct {
	ID           uuid.UUID
	Email        string // unique, compared byte-exact as stored
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DTO strips credential material for callers outside the auth service.
func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserDTO is the outward-facing user record.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefreshToken is one active session. Only the SHA-256 digest of the opaque
// secret is stored; the raw secret is handed to the client exactly once.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
}

// TokenPair is the result of issuing or rotating credentials.
type TokenPair struct {
	AccessToken     string    `json:"accessToken"`
	RefreshToken    string    `json:"refreshToken"`
	AccessExpiresAt time.Time `json:"-"`
}

// Category is either a system default (UserID nil, visible to everyone)
// or a private category owned by one user.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Name      string     `json:"name"`
	Type      TxType     `json:"type"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	IsDefault bool       `json:"is_default"`
}

// VisibleTo reports whether the category may be referenced by the given user.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.UserID == nil || *c.UserID == userID
}

// Transaction is a single dated income/expense entry. RecurringID is a
// provenance link back to the rule that materialized it, not an ownership edge.
type Transaction struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Type        TxType     `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	RecurringID *uuid.UUID `json:"recurring_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransactionFilter narrows and pages a transaction listing.
type TransactionFilter struct {
	Type       *TxType
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// TransactionPage is one page of a filtered listing.
type TransactionPage struct {
	Data       []Transaction `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// RecurringRule is a user-defined template that periodically generates a
// transaction. Never auto-deleted; deactivated via IsActive.
type RecurringRule struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Type        TxType     `json:"type"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Frequency   Frequency  `json:"frequency"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	LastRunDate *time.Time `json:"last_run_date"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Budget is a monthly spending limit for one category. Month is "YYYY-MM".
type Budget struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Month      string    `json:"month"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BudgetStatus is a budget with its spend-to-date derived fields.
type BudgetStatus struct {
	Budget
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed int     `json:"percentUsed"`
}

// CategorySpend is one slice of the per-category spending report.
type CategorySpend struct {
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color"`
	CategoryIcon  string    `json:"category_icon"`
	Total         float64   `json:"total"`
	Percentage    int       `json:"percentage"`
}

// MonthlyTrendPoint is one month of the income/expense trend report.
type MonthlyTrendPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthlySummary aggregates one month of activity.
type MonthlySummary struct {
	Month            string  `json:"month"`
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpense     float64 `json:"totalExpense"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}
