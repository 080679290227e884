package http

import (
	"net/http"
	"strings"

	"financeflow/internal/core"
)

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.tracker.Goals())
	case http.MethodPost:
		var draft core.Goal
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.CreateGoal(r.Context(), draft)
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

func (s *Server) handleGoalByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/goals/")

	// PUT /api/goals/{id}/progress moves only the saved amount.
	if id, ok := strings.CutSuffix(rest, "/progress"); ok {
		s.handleGoalProgress(w, r, id)
		return
	}

	id := rest
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var draft core.Goal
		if !decodeJSON(w, r, &draft) {
			return
		}
		rec, err := s.tracker.UpdateGoal(r.Context(), id, draft)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := s.tracker.DeleteGoal(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		s.invalidateDashboard()
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, http.MethodPut)
		return
	}
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	var body struct {
		Current core.Money `json:"current"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	rec, err := s.tracker.UpdateGoalCurrent(r.Context(), id, body.Current)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, rec)
}
