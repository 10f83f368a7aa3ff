package core

import (
	"errors"
	"testing"
)

func TestSummarizeRosterGatesInclusion(t *testing.T) {
	b := NewPayrollBook("2025")
	a, _ := b.RegisterCoach("2025", "Kim", "")
	c, _ := b.RegisterCoach("2025", "Lee", "")

	if _, err := b.SetMonthlyAmount("2025", 0, a.ID, "120,000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := b.SetMonthlyAmount("2025", 0, c.ID, "300000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Unroster Lee for January: the historical amount must not count.
	if err := b.RemoveFromRoster("2025", 0, c.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	s, err := Summarize(b, "2025", 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(s.Rows))
	}
	row := s.Rows[0]
	if row.CoachID != a.ID || row.Amount != 120000 || row.Withholding != 3960 || row.Net != 116040 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if s.Gross != 120000 || s.Withholding != 3960 || s.Net != 116040 {
		t.Fatalf("unexpected totals: %+v", s)
	}
}

func TestSummarizeZeroPayCoachListed(t *testing.T) {
	b := NewPayrollBook("2025")
	a, _ := b.RegisterCoach("2025", "Kim", "")

	s, err := Summarize(b, "2025", 0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(s.Rows) != 1 || s.Rows[0].CoachID != a.ID || s.Rows[0].Amount != 0 {
		t.Fatalf("rostered zero-pay coach must be listed: %+v", s.Rows)
	}
	if s.Gross != 0 || s.Net != 0 {
		t.Fatalf("expected zero totals, got %+v", s)
	}
}

func TestSummarizeMonthRange(t *testing.T) {
	b := NewPayrollBook("2025")
	if _, err := Summarize(b, "2025", 12); !errors.Is(err, ErrMonthOutOfRange) {
		t.Fatalf("expected ErrMonthOutOfRange, got %v", err)
	}
	if _, err := Summarize(b, "", 0); !errors.Is(err, ErrYearRequired) {
		t.Fatalf("expected ErrYearRequired, got %v", err)
	}
}

func TestSummarizeYearIsSumOfMonths(t *testing.T) {
	b := NewPayrollBook("2025")
	a, _ := b.RegisterCoach("2025", "Kim", "")
	c, _ := b.RegisterCoach("2025", "Lee", "")

	amounts := map[int]map[string]string{
		0: {a.ID: "120000", c.ID: "90000"},
		5: {a.ID: "1500000"},
		11: {c.ID: "777777"},
	}
	for m, perCoach := range amounts {
		for id, raw := range perCoach {
			if _, err := b.SetMonthlyAmount("2025", m, id, raw); err != nil {
				t.Fatalf("set %d/%s: %v", m, id, err)
			}
		}
	}

	annual, err := SummarizeYear(b, "2025")
	if err != nil {
		t.Fatalf("annual: %v", err)
	}

	var gross, tax, net int64
	for m := 0; m < MonthsPerYear; m++ {
		ms, err := Summarize(b, "2025", m)
		if err != nil {
			t.Fatalf("month %d: %v", m, err)
		}
		gross += ms.Gross
		tax += ms.Withholding
		net += ms.Net
	}
	if annual.Gross != gross || annual.Withholding != tax || annual.Net != net {
		t.Fatalf("annual %+v != fold {%d %d %d}", annual, gross, tax, net)
	}
	if annual.Gross-annual.Withholding != annual.Net {
		t.Fatalf("gross - withholding != net: %+v", annual)
	}
}

func TestSummarizeYearEmpty(t *testing.T) {
	b := NewPayrollBook("2025")
	annual, err := SummarizeYear(b, "2030")
	if err != nil {
		t.Fatalf("annual: %v", err)
	}
	if annual.Gross != 0 || annual.Withholding != 0 || annual.Net != 0 {
		t.Fatalf("expected all-zero aggregates, got %+v", annual)
	}
}
