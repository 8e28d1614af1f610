package http

import (
	"net/http"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/service"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	cats, err := s.categories.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.Category{"data": cats})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	var in service.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	cat, err := s.categories.Create(r.Context(), user.ID, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid category id")
		return
	}
	var in service.CategoryInput
	if err := decodeBody(r, &in); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	cat, err := s.categories.Update(r.Context(), user.ID, id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid category id")
		return
	}
	if err := s.categories.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
