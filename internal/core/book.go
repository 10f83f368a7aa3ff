package core

import (
	"strings"

	"github.com/google/uuid"
)

// Mutation operations on the PayrollBook aggregate. Each operation either
// fully applies or returns an error with the book untouched; callers that
// need rollback-on-persist-failure mutate a Clone and swap afterwards.

// RegisterCoach creates a coach and, for convenience, enrolls it in every
// month of the selected year with a fresh 12-zero amount row. The name is
// trimmed and required; the master list is capped at MaxCoaches.
func (b *PayrollBook) RegisterCoach(year, name, residentID string) (Coach, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Coach{}, ErrNameRequired
	}
	if strings.TrimSpace(year) == "" {
		return Coach{}, ErrYearRequired
	}
	if len(b.Coaches) >= MaxCoaches {
		return Coach{}, ErrCoachLimit
	}

	coach := Coach{
		ID:         "c_" + uuid.NewString(),
		Name:       name,
		ResidentID: strings.TrimSpace(residentID),
	}
	b.Coaches = append(b.Coaches, coach)
	b.ensureAmountRow(year, coach.ID)

	for m := 0; m < MonthsPerYear; m++ {
		key := MonthKey{Year: year, Month: m}
		b.Rosters[key] = appendUnique(b.Rosters[key], coach.ID)
	}
	return coach, nil
}

// DeleteCoach removes a coach from the master list, from every year's
// amount table, and from every roster. The three removals are one
// mutation; no dangling references survive.
func (b *PayrollBook) DeleteCoach(id string) error {
	idx := -1
	for i, c := range b.Coaches {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCoachNotFound
	}
	b.Coaches = append(b.Coaches[:idx], b.Coaches[idx+1:]...)

	for _, amounts := range b.Years {
		delete(amounts, id)
	}
	for key, ids := range b.Rosters {
		b.Rosters[key] = removeID(ids, id)
	}
	return nil
}

// UpdateCoachIdentity updates the only mutable identity field.
func (b *PayrollBook) UpdateCoachIdentity(id, residentID string) error {
	for i := range b.Coaches {
		if b.Coaches[i].ID == id {
			b.Coaches[i].ResidentID = strings.TrimSpace(residentID)
			return nil
		}
	}
	return ErrCoachNotFound
}

// SetMonthlyAmount writes one month's payment for a coach. The raw input
// is forgiving (formatting characters are stripped, garbage collapses to
// zero) but the coach and month index must be valid. Setting the same
// value twice yields the same state.
func (b *PayrollBook) SetMonthlyAmount(year string, month int, coachID, rawInput string) (int64, error) {
	if _, err := NewMonthKey(year, month); err != nil {
		return 0, err
	}
	if _, ok := b.FindCoach(coachID); !ok {
		return 0, ErrCoachNotFound
	}
	amount := ParseAmount(rawInput)
	row := b.ensureAmountRow(year, coachID)
	row[month] = amount
	b.Years[year][coachID] = row
	return amount, nil
}

// AddToRoster marks the coach active for (year, month). Adding an already
// rostered coach is a no-op. The amount row is created eagerly so a
// rostered coach always has a dense payment history, even at zero pay.
func (b *PayrollBook) AddToRoster(year string, month int, coachID string) error {
	key, err := NewMonthKey(year, month)
	if err != nil {
		return err
	}
	if _, ok := b.FindCoach(coachID); !ok {
		return ErrCoachNotFound
	}
	b.Rosters[key] = appendUnique(b.Rosters[key], coachID)
	b.ensureAmountRow(year, coachID)
	return nil
}

// RemoveFromRoster unmarks the coach for (year, month). Removing an
// absent id is a no-op. The amount row is kept: unrostering never erases
// payment history.
func (b *PayrollBook) RemoveFromRoster(year string, month int, coachID string) error {
	key, err := NewMonthKey(year, month)
	if err != nil {
		return err
	}
	if ids, ok := b.Rosters[key]; ok {
		b.Rosters[key] = removeID(ids, coachID)
	}
	return nil
}

// Roster returns the ordered coach ids active for (year, month).
func (b *PayrollBook) Roster(year string, month int) []string {
	return b.Rosters[MonthKey{Year: year, Month: month}]
}

// Amount returns the stored payment for (year, coach, month), zero when
// no row exists yet.
func (b *PayrollBook) Amount(year, coachID string, month int) int64 {
	if month < 0 || month >= MonthsPerYear {
		return 0
	}
	if amounts, ok := b.Years[year]; ok {
		if row, ok := amounts[coachID]; ok {
			return row[month]
		}
	}
	return 0
}

// ensureAmountRow is the documented get-or-create for the lazily built
// amount table: it guarantees Years[year][coachID] exists as a dense
// 12-slot row and returns the current row value.
func (b *PayrollBook) ensureAmountRow(year, coachID string) AmountRow {
	amounts, ok := b.Years[year]
	if !ok {
		amounts = make(YearAmounts)
		b.Years[year] = amounts
	}
	row, ok := amounts[coachID]
	if !ok {
		amounts[coachID] = row
	}
	return row
}

func appendUnique(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
