package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxCoaches caps the master roster size, matching the product decision
// that a single gym never tracks more than 20 payees.
const MaxCoaches = 20

// MonthsPerYear is the fixed length of every amount row.
const MonthsPerYear = 12

var (
	ErrNameRequired    = errors.New("coach name required")
	ErrYearRequired    = errors.New("year required")
	ErrCoachLimit      = errors.New("coach limit reached")
	ErrCoachNotFound   = errors.New("coach not found")
	ErrMonthOutOfRange = errors.New("month index out of range")
)

type (
	// Coach is a payee tracked for payroll purposes. ID is immutable and
	// unique within the book; ResidentID is freeform and optional.
	Coach struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		ResidentID string `json:"residentId"`
	}

	// MonthKey identifies a roster: a year plus a zero-based month index
	// (0 = January, 11 = December).
	MonthKey struct {
		Year  string
		Month int
	}

	// AmountRow holds one coach's payments for a year, one slot per month.
	// Rows are always dense: created whole, never sparse.
	AmountRow [MonthsPerYear]int64

	// YearAmounts maps coach ID to that coach's amount row for one year.
	YearAmounts map[string]AmountRow

	// PayrollBook is the root aggregate: the master coach list, the
	// per-year amount tables, and the per-month rosters. It is persisted
	// and loaded as a single document.
	PayrollBook struct {
		Coaches []Coach                `json:"coaches"`
		Years   map[string]YearAmounts `json:"years"`
		Rosters map[MonthKey][]string  `json:"rosters"`
	}
)

// NewMonthKey validates the month index and builds a roster key.
func NewMonthKey(year string, month int) (MonthKey, error) {
	if strings.TrimSpace(year) == "" {
		return MonthKey{}, ErrYearRequired
	}
	if month < 0 || month >= MonthsPerYear {
		return MonthKey{}, fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	return MonthKey{Year: year, Month: month}, nil
}

// MarshalText encodes the key as "<year>-<month>" so MonthKey can be used
// as a JSON map key in the persisted document.
func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.Year + "-" + strconv.Itoa(k.Month)), nil
}

// UnmarshalText parses the "<year>-<month>" form. The month is the part
// after the last dash, so year strings containing dashes stay round-trippable.
func (k *MonthKey) UnmarshalText(text []byte) error {
	s := string(text)
	i := strings.LastIndexByte(s, '-')
	if i < 0 {
		return fmt.Errorf("invalid month key %q", s)
	}
	m, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return fmt.Errorf("invalid month key %q: %w", s, err)
	}
	if m < 0 || m >= MonthsPerYear {
		return fmt.Errorf("invalid month key %q: %w", s, ErrMonthOutOfRange)
	}
	k.Year = s[:i]
	k.Month = m
	return nil
}

// NewPayrollBook returns an empty book with the given year's amount table
// initialized, mirroring first-run behavior when no document exists yet.
func NewPayrollBook(currentYear string) *PayrollBook {
	b := &PayrollBook{
		Years:   make(map[string]YearAmounts),
		Rosters: make(map[MonthKey][]string),
	}
	if currentYear != "" {
		b.Years[currentYear] = make(YearAmounts)
	}
	return b
}

// Clone deep-copies the book. Mutations operate on a clone so a failed
// persist never leaves the live aggregate half-changed.
func (b *PayrollBook) Clone() *PayrollBook {
	c := &PayrollBook{
		Coaches: append([]Coach(nil), b.Coaches...),
		Years:   make(map[string]YearAmounts, len(b.Years)),
		Rosters: make(map[MonthKey][]string, len(b.Rosters)),
	}
	for year, amounts := range b.Years {
		ya := make(YearAmounts, len(amounts))
		for id, row := range amounts {
			ya[id] = row
		}
		c.Years[year] = ya
	}
	for key, ids := range b.Rosters {
		c.Rosters[key] = append([]string(nil), ids...)
	}
	return c
}

// FindCoach returns the coach with the given ID, or false if unknown.
func (b *PayrollBook) FindCoach(id string) (Coach, bool) {
	for _, c := range b.Coaches {
		if c.ID == id {
			return c, true
		}
	}
	return Coach{}, false
}

// KnownYears returns the sorted set of years that have an amount table.
// Extra years (typically the currently selected one) are merged in so the
// UI can always offer them.
func (b *PayrollBook) KnownYears(extra ...string) []string {
	seen := make(map[string]struct{}, len(b.Years)+len(extra))
	out := make([]string, 0, len(b.Years)+len(extra))
	for y := range b.Years {
		seen[y] = struct{}{}
		out = append(out, y)
	}
	for _, y := range extra {
		if y == "" {
			continue
		}
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			out = append(out, y)
		}
	}
	sort.Strings(out)
	return out
}
