// Package http exposes the application services as a JSON API.
package http

import (
	"budgetd/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server wires the application services into a chi router.
type Server struct {
	auth         service.AuthService
	categories   service.CategoryService
	transactions service.TransactionService
	budgets      service.BudgetService
	recurring    service.RecurringService
	reports      service.ReportService
	log          *zap.Logger
}

// New constructs the HTTP server around the given services.
func New(auth service.AuthService, categories service.CategoryService,
	transactions service.TransactionService, budgets service.BudgetService,
	recurring service.RecurringService, reports service.ReportService,
	log *zap.Logger) *Server {
	return &Server{
		auth:         auth,
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
		recurring:    recurring,
		reports:      reports,
		log:          log,
	}
}

// Routes builds the full route tree.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.recoverPanics, s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/refresh", s.handleRefresh)
		r.Post("/auth/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.handleMe)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.handleListCategories)
				r.Post("/", s.handleCreateCategory)
				r.Put("/{id}", s.handleUpdateCategory)
				r.Delete("/{id}", s.handleDeleteCategory)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", s.handleListTransactions)
				r.Post("/", s.handleCreateTransaction)
				r.Get("/{id}", s.handleGetTransaction)
				r.Put("/{id}", s.handleUpdateTransaction)
				r.Delete("/{id}", s.handleDeleteTransaction)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", s.handleListBudgets)
				r.Post("/", s.handleCreateBudget)
				r.Put("/{id}", s.handleUpdateBudget)
				r.Delete("/{id}", s.handleDeleteBudget)
			})

			r.Route("/recurring", func(r chi.Router) {
				r.Get("/", s.handleListRecurring)
				r.Post("/", s.handleCreateRecurring)
				r.Get("/{id}", s.handleGetRecurring)
				r.Put("/{id}", s.handleUpdateRecurring)
				r.Delete("/{id}", s.handleDeleteRecurring)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/spending-by-category", s.handleSpendingByCategory)
				r.Get("/monthly-trend", s.handleMonthlyTrend)
				r.Get("/summary", s.handleMonthlySummary)
			})
		})
	})

	return r
}
