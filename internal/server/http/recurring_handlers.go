package http

import (
	"net/http"
	"time"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/service"

	"github.com/gofrs/uuid/v5"
)

type recurringRequest struct {
	CategoryID  uuid.UUID       `json:"category_id"`
	Type        model.TxType    `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Frequency   model.Frequency `json:"frequency"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date"`
}

type recurringUpdateRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Type        *model.TxType    `json:"type"`
	Amount      *float64         `json:"amount"`
	Description *string          `json:"description"`
	Frequency   *model.Frequency `json:"frequency"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	rules, err := s.recurring.List(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]model.RecurringRule{"data": rules})
}

func (s *Server) handleGetRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid rule id")
		return
	}
	rule, err := s.recurring.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	var req recurringRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		s.badRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		s.badRequest(w, "end_date must be YYYY-MM-DD")
		return
	}
	rule, err := s.recurring.Create(r.Context(), user.ID, service.RecurringInput{
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleUpdateRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid rule id")
		return
	}
	var req recurringUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		s.badRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		s.badRequest(w, "end_date must be YYYY-MM-DD")
		return
	}
	rule, err := s.recurring.Update(r.Context(), user.ID, id, service.RecurringUpdate{
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Frequency:   req.Frequency,
		StartDate:   start,
		EndDate:     end,
		IsActive:    req.IsActive,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid rule id")
		return
	}
	if err := s.recurring.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
