package core

type (
	// CoachPay is one rostered coach's line in a monthly summary.
	CoachPay struct {
		CoachID     string `json:"coachId"`
		Name        string `json:"name"`
		Amount      int64  `json:"amount"`
		Withholding int64  `json:"withholding"`
		Net         int64  `json:"net"`
	}

	// MonthlySummary is the derived view for one (year, month): the
	// rostered coaches with their pay lines plus additive totals.
	MonthlySummary struct {
		Year        string     `json:"year"`
		Month       int        `json:"month"`
		Rows        []CoachPay `json:"rows"`
		Gross       int64      `json:"gross"`
		Withholding int64      `json:"withholding"`
		Net         int64      `json:"net"`
	}

	// AnnualSummary is the sum of the twelve monthly summaries; Net is
	// the headline "accumulated net pay" figure.
	AnnualSummary struct {
		Year        string `json:"year"`
		Gross       int64  `json:"gross"`
		Withholding int64  `json:"withholding"`
		Net         int64  `json:"net"`
	}
)

// Summarize computes the monthly view for (year, month). Inclusion is
// gated by roster membership, not amount presence: a rostered coach with
// zero pay is listed; an unrostered coach with a historical amount is not.
func Summarize(b *PayrollBook, year string, month int) (MonthlySummary, error) {
	if _, err := NewMonthKey(year, month); err != nil {
		return MonthlySummary{}, err
	}
	s := MonthlySummary{Year: year, Month: month}
	for _, id := range b.Roster(year, month) {
		coach, ok := b.FindCoach(id)
		if !ok {
			// Rosters never outlive their coach (delete cascades), but a
			// hand-edited document should not break the view.
			continue
		}
		amount := b.Amount(year, id, month)
		tax := Withholding(amount)
		s.Rows = append(s.Rows, CoachPay{
			CoachID:     id,
			Name:        coach.Name,
			Amount:      amount,
			Withholding: tax,
			Net:         amount - tax,
		})
		s.Gross += amount
		s.Withholding += tax
		s.Net += amount - tax
	}
	return s, nil
}

// SummarizeYear folds the twelve monthly summaries into annual totals.
// A year with no rosters yields all-zero aggregates.
func SummarizeYear(b *PayrollBook, year string) (AnnualSummary, error) {
	if year == "" {
		return AnnualSummary{}, ErrYearRequired
	}
	a := AnnualSummary{Year: year}
	for m := 0; m < MonthsPerYear; m++ {
		ms, err := Summarize(b, year, m)
		if err != nil {
			return AnnualSummary{}, err
		}
		a.Gross += ms.Gross
		a.Withholding += ms.Withholding
		a.Net += ms.Net
	}
	return a, nil
}
