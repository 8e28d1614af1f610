package service

// Hand-rolled in-memory repositories shared by the service tests.

import (
	"context"
	"sort"
	"time"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]*model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrEmailExists
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeTokens struct {
	byHash map[string]*model.RefreshToken

	// serveStale makes GetByHash keep answering from a snapshot after the row
	// is deleted, simulating a reader that raced ahead of a rotation.
	serveStale bool
	stale      map[string]*model.RefreshToken

	createErr error
	rotateErr error

	rotateCalls int
}

var _ repository.RefreshTokenRepository = (*fakeTokens)(nil)

func newFakeTokens() *fakeTokens { return &fakeTokens{byHash: map[string]*model.RefreshToken{}} }

func (f *fakeTokens) Create(_ context.Context, t *model.RefreshToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *t
	f.byHash[t.TokenHash] = &cpy
	return nil
}

func (f *fakeTokens) GetByHash(_ context.Context, hash string) (*model.RefreshToken, error) {
	t, ok := f.byHash[hash]
	if !ok && f.serveStale {
		t, ok = f.stale[hash]
	}
	if !ok {
		return nil, errs.ErrNotFound
	}
	if f.serveStale {
		if f.stale == nil {
			f.stale = map[string]*model.RefreshToken{}
		}
		c := *t
		f.stale[hash] = &c
	}
	c := *t
	return &c, nil
}

func (f *fakeTokens) Delete(_ context.Context, id uuid.UUID) error {
	for h, t := range f.byHash {
		if t.ID == id {
			delete(f.byHash, h)
		}
	}
	return nil
}

func (f *fakeTokens) DeleteByHash(_ context.Context, hash string) error {
	delete(f.byHash, hash)
	return nil
}

func (f *fakeTokens) Rotate(ctx context.Context, consumedID uuid.UUID, next *model.RefreshToken) error {
	f.rotateCalls++
	if f.rotateErr != nil {
		return f.rotateErr
	}
	found := false
	for _, t := range f.byHash {
		if t.ID == consumedID {
			found = true
		}
	}
	if !found {
		// Guarded delete: the consumed row is already gone.
		return errs.ErrNotFound
	}
	if err := f.Delete(ctx, consumedID); err != nil {
		return err
	}
	return f.Create(ctx, next)
}

type fakeCategories struct {
	byID map[uuid.UUID]*model.Category

	inUse map[uuid.UUID]bool
}

var _ repository.CategoryRepository = (*fakeCategories)(nil)

func newFakeCategories() *fakeCategories {
	return &fakeCategories{byID: map[uuid.UUID]*model.Category{}, inUse: map[uuid.UUID]bool{}}
}

func (f *fakeCategories) add(c model.Category) *model.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	f.byID[c.ID] = &c
	return &c
}

func (f *fakeCategories) Create(_ context.Context, c *model.Category) error {
	cpy := *c
	f.byID[c.ID] = &cpy
	return nil
}

func (f *fakeCategories) GetVisible(_ context.Context, userID, id uuid.UUID) (*model.Category, error) {
	c, ok := f.byID[id]
	if !ok || !c.VisibleTo(userID) {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCategories) GetOwned(_ context.Context, userID, id uuid.UUID) (*model.Category, error) {
	c, ok := f.byID[id]
	if !ok || c.UserID == nil || *c.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCategories) ListVisible(_ context.Context, userID uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.byID {
		if c.VisibleTo(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, c *model.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *c
	f.byID[c.ID] = &cpy
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeCategories) InUse(_ context.Context, _, id uuid.UUID) (bool, error) {
	return f.inUse[id], nil
}

type fakeTransactions struct {
	byID map[uuid.UUID]*model.Transaction

	createErr error
}

var _ repository.TransactionRepository = (*fakeTransactions)(nil)

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{byID: map[uuid.UUID]*model.Transaction{}}
}

func (f *fakeTransactions) Create(_ context.Context, t *model.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *t
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTransactions) Get(_ context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cpy := *t
	return &cpy, nil
}

func (f *fakeTransactions) List(_ context.Context, userID uuid.UUID, filter model.TransactionFilter) (*model.TransactionPage, error) {
	var all []model.Transaction
	for _, t := range f.byID {
		if t.UserID != userID {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.CategoryID != nil && t.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })

	total := len(all)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return &model.TransactionPage{
		Data:       all[start:end],
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

func (f *fakeTransactions) Update(_ context.Context, t *model.Transaction) error {
	if _, ok := f.byID[t.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *t
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTransactions) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

// fakeRules honors the same last_run_date guard as the real Materialize, so
// idempotence tests exercise the actual discipline.
type fakeRules struct {
	byID map[uuid.UUID]*model.RecurringRule
	txs  *fakeTransactions

	materializeErr map[uuid.UUID]error
	listDueErr     error
}

var _ repository.RecurringRuleRepository = (*fakeRules)(nil)

func newFakeRules(txs *fakeTransactions) *fakeRules {
	return &fakeRules{
		byID:           map[uuid.UUID]*model.RecurringRule{},
		txs:            txs,
		materializeErr: map[uuid.UUID]error{},
	}
}

func (f *fakeRules) add(r model.RecurringRule) *model.RecurringRule {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV4())
	}
	f.byID[r.ID] = &r
	return &r
}

func (f *fakeRules) Create(_ context.Context, r *model.RecurringRule) error {
	cpy := *r
	f.byID[r.ID] = &cpy
	return nil
}

func (f *fakeRules) Get(_ context.Context, userID, id uuid.UUID) (*model.RecurringRule, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cpy := *r
	return &cpy, nil
}

func (f *fakeRules) ListByUser(_ context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	var out []model.RecurringRule
	for _, r := range f.byID {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRules) Update(_ context.Context, r *model.RecurringRule) error {
	if _, ok := f.byID[r.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *r
	f.byID[r.ID] = &cpy
	return nil
}

func (f *fakeRules) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRules) ListDue(_ context.Context, today time.Time) ([]model.RecurringRule, error) {
	if f.listDueErr != nil {
		return nil, f.listDueErr
	}
	var out []model.RecurringRule
	for _, r := range f.byID {
		if !r.IsActive || r.StartDate.After(today) {
			continue
		}
		if r.EndDate != nil && r.EndDate.Before(today) {
			continue
		}
		if r.LastRunDate != nil && !r.LastRunDate.Before(today) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRules) Materialize(ctx context.Context, r *model.RecurringRule, today time.Time) (bool, error) {
	if err := f.materializeErr[r.ID]; err != nil {
		return false, err
	}
	stored, ok := f.byID[r.ID]
	if !ok {
		return false, errs.ErrNotFound
	}
	if stored.LastRunDate != nil && !stored.LastRunDate.Before(today) {
		return false, nil
	}
	d := today
	stored.LastRunDate = &d

	id := uuid.Must(uuid.NewV4())
	ruleID := r.ID
	return true, f.txs.Create(ctx, &model.Transaction{
		ID:          id,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Type:        r.Type,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        today,
		RecurringID: &ruleID,
	})
}

type fakeBudgets struct {
	byID  map[uuid.UUID]*model.Budget
	spent map[uuid.UUID]float64 // keyed by category
}

var _ repository.BudgetRepository = (*fakeBudgets)(nil)

func newFakeBudgets() *fakeBudgets {
	return &fakeBudgets{byID: map[uuid.UUID]*model.Budget{}, spent: map[uuid.UUID]float64{}}
}

func (f *fakeBudgets) Create(_ context.Context, b *model.Budget) error {
	for _, prev := range f.byID {
		if prev.UserID == b.UserID && prev.CategoryID == b.CategoryID && prev.Month == b.Month {
			return errs.ErrBudgetExists
		}
	}
	cpy := *b
	f.byID[b.ID] = &cpy
	return nil
}

func (f *fakeBudgets) Get(_ context.Context, userID, id uuid.UUID) (*model.Budget, error) {
	b, ok := f.byID[id]
	if !ok || b.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cpy := *b
	return &cpy, nil
}

func (f *fakeBudgets) ListByMonth(_ context.Context, userID uuid.UUID, month string) ([]model.Budget, error) {
	var out []model.Budget
	for _, b := range f.byID {
		if b.UserID == userID && b.Month == month {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBudgets) SpentInMonth(_ context.Context, _, categoryID uuid.UUID, _ string) (float64, error) {
	return f.spent[categoryID], nil
}

func (f *fakeBudgets) Update(_ context.Context, b *model.Budget) error {
	if _, ok := f.byID[b.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *b
	f.byID[b.ID] = &cpy
	return nil
}

func (f *fakeBudgets) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeReports struct {
	spending []model.CategorySpend
	trend    []model.MonthlyTrendPoint
	summary  *model.MonthlySummary

	lastSince time.Time
}

var _ repository.ReportRepository = (*fakeReports)(nil)

func (f *fakeReports) SpendingByCategory(_ context.Context, _ uuid.UUID, _ string) ([]model.CategorySpend, error) {
	return append([]model.CategorySpend(nil), f.spending...), nil
}

func (f *fakeReports) MonthlyTrend(_ context.Context, _ uuid.UUID, since time.Time) ([]model.MonthlyTrendPoint, error) {
	f.lastSince = since
	return append([]model.MonthlyTrendPoint(nil), f.trend...), nil
}

func (f *fakeReports) MonthlySummary(_ context.Context, _ uuid.UUID, month string) (*model.MonthlySummary, error) {
	s := *f.summary
	s.Month = month
	return &s, nil
}
