package http

import (
	"log/slog"
	"net/http"

	applog "boxpay/internal/log"
)

type generateRequest struct {
	Type string `json:"type"`
	Info string `json:"info"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// handleGenerate proxies contract drafting to the Gemini API. The ledger
// is never touched: a generation failure cannot corrupt payroll state.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text, err := s.generator.Generate(r.Context(), req.Type, sanitizeInput(req.Info))
	if err != nil {
		slog.ErrorContext(r.Context(), "Contract generation failed",
			applog.FieldContract, req.Type, applog.FieldError, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Text: text})
}
