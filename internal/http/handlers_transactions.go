package http

import (
	"net/http"
	"strings"

	"financeflow/internal/core"
	"financeflow/internal/report"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		tt := core.TransactionType(q.Get("type"))
		if tt != "" && tt != core.Income && tt != core.Expense {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "type must be income or expense"})
			return
		}
		txs := report.FilterTransactions(s.tracker.Transactions(), q.Get("q"), q.Get("category"), tt)
		writeJSON(w, http.StatusOK, txs)
	case http.MethodPost:
		var draft core.Transaction
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.CreateTransaction(r.Context(), draft)
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

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var draft core.Transaction
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.UpdateTransaction(r.Context(), id, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := s.tracker.DeleteTransaction(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}
