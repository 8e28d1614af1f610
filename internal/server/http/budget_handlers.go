package http

import (
	"net/http"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/service"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	statuses, err := s.budgets.List(r.Context(), user.ID, r.URL.Query().Get("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.BudgetStatus{"data": statuses})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	var in service.BudgetInput
	if err := decodeBody(r, &in); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	status, err := s.budgets.Create(r.Context(), user.ID, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, status)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid budget id")
		return
	}
	var in service.BudgetUpdate
	if err := decodeBody(r, &in); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	status, err := s.budgets.Update(r.Context(), user.ID, id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid budget id")
		return
	}
	if err := s.budgets.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
