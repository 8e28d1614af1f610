package http

import (
	"net/http"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/service"

	"github.com/gofrs/uuid/v5"
)

type transactionRequest struct {
	CategoryID  uuid.UUID    `json:"category_id"`
	Type        model.TxType `json:"type"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Date        string       `json:"date"`
}

type transactionUpdateRequest struct {
	CategoryID  *uuid.UUID    `json:"category_id"`
	Type        *model.TxType `json:"type"`
	Amount      *float64      `json:"amount"`
	Description *string       `json:"description"`
	Date        *string       `json:"date"`
}

func (s *Server) transactionFilter(r *http.Request) (model.TransactionFilter, error) {
	q := r.URL.Query()
	f := model.TransactionFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 0),
	}
	if raw := q.Get("type"); raw != "" {
		t := model.TxType(raw)
		f.Type = &t
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			return f, err
		}
		f.CategoryID = &id
	}
	if raw := q.Get("start_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if raw := q.Get("end_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	return f, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	filter, err := s.transactionFilter(r)
	if err != nil {
		s.badRequest(w, "invalid filter parameter")
		return
	}
	page, err := s.transactions.List(r.Context(), user.ID, filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid transaction id")
		return
	}
	tx, err := s.transactions.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		s.badRequest(w, "date must be YYYY-MM-DD")
		return
	}
	tx, err := s.transactions.Create(r.Context(), user.ID, service.TransactionInput{
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid transaction id")
		return
	}
	var req transactionUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	upd := service.TransactionUpdate{
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			s.badRequest(w, "date must be YYYY-MM-DD")
			return
		}
		upd.Date = &d
	}
	tx, err := s.transactions.Update(r.Context(), user.ID, id, upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		s.writeError(w, errs.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.badRequest(w, "invalid transaction id")
		return
	}
	if err := s.transactions.Delete(r.Context(), user.ID, id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
