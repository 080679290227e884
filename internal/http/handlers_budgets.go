package http

import (
	"net/http"
	"strings"

	"financeflow/internal/core"
)

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.tracker.Budgets())
	case http.MethodPost:
		var draft core.Budget
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.CreateBudget(r.Context(), draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		writeJSON(w, http.StatusCreated, rec)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleBudgetByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var draft core.Budget
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.UpdateBudget(r.Context(), id, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := s.tracker.DeleteBudget(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}
