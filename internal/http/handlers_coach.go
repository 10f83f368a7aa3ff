package http

import (
	"log/slog"
	"net/http"

	"boxpay/internal/core"
	applog "boxpay/internal/log"
)

type registerCoachRequest struct {
	Name       string `json:"name"`
	ResidentID string `json:"residentId"`
	Year       string `json:"year"`
}

type updateCoachRequest struct {
	ResidentID string `json:"residentId"`
}

func (s *Server) handleListCoaches(w http.ResponseWriter, r *http.Request) {
	book := s.ledger.Snapshot()
	coaches := book.Coaches
	if coaches == nil {
		coaches = []core.Coach{}
	}
	writeJSON(w, http.StatusOK, coaches)
}

func (s *Server) handleRegisterCoach(w http.ResponseWriter, r *http.Request) {
	var req registerCoachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coach, err := s.ledger.RegisterCoach(r.Context(),
		sanitizeInput(req.Year), sanitizeInput(req.Name), sanitizeInput(req.ResidentID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateYear(req.Year)
	slog.InfoContext(r.Context(), "Coach registered",
		applog.FieldCoachID, coach.ID,
		applog.FieldCoachName, coach.Name,
		applog.FieldYear, req.Year)
	writeJSON(w, http.StatusCreated, coach)
}

func (s *Server) handleUpdateCoach(w http.ResponseWriter, r *http.Request) {
	var req updateCoachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coach, err := s.ledger.UpdateCoachIdentity(r.Context(),
		r.PathValue("id"), sanitizeInput(req.ResidentID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateYear("")
	writeJSON(w, http.StatusOK, coach)
}

func (s *Server) handleDeleteCoach(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.ledger.DeleteCoach(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	// Delete cascades across all years, so every cached view is stale.
	s.invalidateYear("")
	slog.InfoContext(r.Context(), "Coach deleted", applog.FieldCoachID, id)
	w.WriteHeader(http.StatusNoContent)
}
