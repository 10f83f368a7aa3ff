package http

import (
	"log/slog"
	"net/http"

	"boxpay/internal/core"
	applog "boxpay/internal/log"
)

// yearView is the full payload the app needs to render one year: the
// twelve monthly summaries, the annual totals, the coach list, and the
// selectable years.
type yearView struct {
	Year    string                `json:"year"`
	Years   []string              `json:"years"`
	Coaches []core.Coach          `json:"coaches"`
	Months  []core.MonthlySummary `json:"months"`
	Annual  core.AnnualSummary    `json:"annual"`
}

type setAmountRequest struct {
	Amount string `json:"amount"`
}

type setAmountResponse struct {
	Amount int64 `json:"amount"`
}

type rosterRequest struct {
	CoachID string `json:"coachId"`
}

func (s *Server) handleYearView(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")

	if view, ok := s.yearCache.Get(year); ok {
		writeJSON(w, http.StatusOK, view)
		return
	}

	view, err := s.buildYearView(year)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.yearCache.Set(year, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) buildYearView(year string) (yearView, error) {
	book := s.ledger.Snapshot()

	view := yearView{
		Year:    year,
		Years:   book.KnownYears(year),
		Coaches: book.Coaches,
		Months:  make([]core.MonthlySummary, 0, core.MonthsPerYear),
	}
	if view.Coaches == nil {
		view.Coaches = []core.Coach{}
	}

	for m := 0; m < core.MonthsPerYear; m++ {
		ms, err := core.Summarize(book, year, m)
		if err != nil {
			return yearView{}, err
		}
		if ms.Rows == nil {
			ms.Rows = []core.CoachPay{}
		}
		view.Months = append(view.Months, ms)
	}

	annual, err := core.SummarizeYear(book, year)
	if err != nil {
		return yearView{}, err
	}
	view.Annual = annual

	return view, nil
}

func (s *Server) handleSetAmount(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")
	month, err := monthPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req setAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := s.ledger.SetMonthlyAmount(r.Context(), year, month, r.PathValue("coachId"), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateYear(year)
	slog.InfoContext(r.Context(), "Amount recorded",
		applog.FieldYear, year,
		applog.FieldMonth, month,
		applog.FieldCoachID, r.PathValue("coachId"),
		applog.FieldAmount, amount)
	writeJSON(w, http.StatusOK, setAmountResponse{Amount: amount})
}

func (s *Server) handleAddToRoster(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")
	month, err := monthPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req rosterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.AddToRoster(r.Context(), year, month, req.CoachID); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateYear(year)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFromRoster(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")
	month, err := monthPathValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.RemoveFromRoster(r.Context(), year, month, r.PathValue("coachId")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateYear(year)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	year := r.PathValue("year")

	report, ok := s.reportCache.Get(year)
	if !ok {
		report = s.ledger.Report(year)
		s.reportCache.Set(year, report)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report))
}
