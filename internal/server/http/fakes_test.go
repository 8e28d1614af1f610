package http

import (
	"context"

	"budgetd/internal/model"
	"budgetd/internal/service"

	"github.com/gofrs/uuid/v5"
)

// Function-field stubs: tests set only the hooks a route exercises,
// everything else panics loudly via the nil call.

type stubAuth struct {
	registerFn func(ctx context.Context, email, password, name string) (model.UserDTO, model.TokenPair, error)
	loginFn    func(ctx context.Context, email, password string) (model.UserDTO, model.TokenPair, error)
	refreshFn  func(ctx context.Context, raw string) (model.UserDTO, model.TokenPair, error)
	logoutFn   func(ctx context.Context, raw string) error
	verifyFn   func(ctx context.Context, token string) (model.UserDTO, error)
}

var _ service.AuthService = (*stubAuth)(nil)

func (s *stubAuth) Register(ctx context.Context, email, password, name string) (model.UserDTO, model.TokenPair, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (model.UserDTO, model.TokenPair, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuth) Refresh(ctx context.Context, raw string) (model.UserDTO, model.TokenPair, error) {
	return s.refreshFn(ctx, raw)
}

func (s *stubAuth) Logout(ctx context.Context, raw string) error {
	return s.logoutFn(ctx, raw)
}

func (s *stubAuth) VerifyAccessToken(ctx context.Context, token string) (model.UserDTO, error) {
	return s.verifyFn(ctx, token)
}

type stubCategories struct {
	listFn   func(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	createFn func(ctx context.Context, userID uuid.UUID, in service.CategoryInput) (*model.Category, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, in service.CategoryInput) (*model.Category, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

var _ service.CategoryService = (*stubCategories)(nil)

func (s *stubCategories) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	return s.listFn(ctx, userID)
}

func (s *stubCategories) Create(ctx context.Context, userID uuid.UUID, in service.CategoryInput) (*model.Category, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubCategories) Update(ctx context.Context, userID, id uuid.UUID, in service.CategoryInput) (*model.Category, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubCategories) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteFn(ctx, userID, id)
}

type stubTransactions struct {
	listFn   func(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error)
	getFn    func(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
	createFn func(ctx context.Context, userID uuid.UUID, in service.TransactionInput) (*model.Transaction, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, in service.TransactionUpdate) (*model.Transaction, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

var _ service.TransactionService = (*stubTransactions)(nil)

func (s *stubTransactions) List(ctx context.Context, userID uuid.UUID, f model.TransactionFilter) (*model.TransactionPage, error) {
	return s.listFn(ctx, userID, f)
}

func (s *stubTransactions) Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubTransactions) Create(ctx context.Context, userID uuid.UUID, in service.TransactionInput) (*model.Transaction, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubTransactions) Update(ctx context.Context, userID, id uuid.UUID, in service.TransactionUpdate) (*model.Transaction, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubTransactions) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteFn(ctx, userID, id)
}

type stubBudgets struct {
	listFn   func(ctx context.Context, userID uuid.UUID, month string) ([]model.BudgetStatus, error)
	createFn func(ctx context.Context, userID uuid.UUID, in service.BudgetInput) (*model.BudgetStatus, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, in service.BudgetUpdate) (*model.BudgetStatus, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

var _ service.BudgetService = (*stubBudgets)(nil)

func (s *stubBudgets) List(ctx context.Context, userID uuid.UUID, month string) ([]model.BudgetStatus, error) {
	return s.listFn(ctx, userID, month)
}

func (s *stubBudgets) Create(ctx context.Context, userID uuid.UUID, in service.BudgetInput) (*model.BudgetStatus, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubBudgets) Update(ctx context.Context, userID, id uuid.UUID, in service.BudgetUpdate) (*model.BudgetStatus, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubBudgets) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteFn(ctx, userID, id)
}

type stubRecurring struct {
	listFn   func(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	getFn    func(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error)
	createFn func(ctx context.Context, userID uuid.UUID, in service.RecurringInput) (*model.RecurringRule, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, in service.RecurringUpdate) (*model.RecurringRule, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

var _ service.RecurringService = (*stubRecurring)(nil)

func (s *stubRecurring) List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	return s.listFn(ctx, userID)
}

func (s *stubRecurring) Get(ctx context.Context, userID, id uuid.UUID) (*model.RecurringRule, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubRecurring) Create(ctx context.Context, userID uuid.UUID, in service.RecurringInput) (*model.RecurringRule, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubRecurring) Update(ctx context.Context, userID, id uuid.UUID, in service.RecurringUpdate) (*model.RecurringRule, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubRecurring) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteFn(ctx, userID, id)
}

type stubReports struct {
	spendingFn func(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error)
	trendFn    func(ctx context.Context, userID uuid.UUID, months int) ([]model.MonthlyTrendPoint, error)
	summaryFn  func(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error)
}

var _ service.ReportService = (*stubReports)(nil)

func (s *stubReports) SpendingByCategory(ctx context.Context, userID uuid.UUID, month string) ([]model.CategorySpend, error) {
	return s.spendingFn(ctx, userID, month)
}

func (s *stubReports) MonthlyTrend(ctx context.Context, userID uuid.UUID, months int) ([]model.MonthlyTrendPoint, error) {
	return s.trendFn(ctx, userID, months)
}

func (s *stubReports) MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*model.MonthlySummary, error) {
	return s.summaryFn(ctx, userID, month)
}
