package http

import (
	"net/http"

	"budgetd/internal/errs"
	"budgetd/internal/model"
)

func (s *Server) handleSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	spend, err := s.reports.SpendingByCategory(r.Context(), user.ID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.CategorySpend{"data": spend})
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	trend, err := s.reports.MonthlyTrend(r.Context(), user.ID, queryInt(r, "months", 0))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.MonthlyTrendPoint{"data": trend})
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	summary, err := s.reports.MonthlySummary(r.Context(), user.ID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}
