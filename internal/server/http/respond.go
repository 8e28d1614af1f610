package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"budgetd/internal/errs"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrEmailExists),
		errors.Is(err, errs.ErrBudgetExists),
		errors.Is(err, errs.ErrCategoryInUse):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidCredentials),
		errors.Is(err, errs.ErrInvalidRefreshToken),
		errors.Is(err, errs.ErrTokenExpired),
		errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		s.writeJSON(w, status, errorBody{Error: "internal server error", Code: errs.Code(err)})
		return
	}
	s.writeJSON(w, status, errorBody{Error: err.Error(), Code: errs.Code(err)})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Code: "BAD_REQUEST"})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
