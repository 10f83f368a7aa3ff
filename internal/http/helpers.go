package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"boxpay/internal/core"
	"boxpay/internal/generate"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain sentinels to HTTP statuses: not-found to
// 404, range to 400, validation and capacity to 422, everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrCoachNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrMonthOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrYearRequired),
		errors.Is(err, core.ErrCoachLimit):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, generate.ErrUnknownContractType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, generate.ErrAPIKeyMissing):
		writeError(w, http.StatusInternalServerError, "Server API Key not configured")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// monthPathValue parses the {month} path segment as the zero-based month
// index used throughout the ledger document.
func monthPathValue(r *http.Request) (int, error) {
	raw := r.PathValue("month")
	month, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q", raw)
	}
	return month, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
