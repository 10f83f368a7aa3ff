// Package ledger orchestrates payroll book mutations across the snapshot
// store and the optional AMQP sync pipeline.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"boxpay/internal/core"
)

// SnapshotKey is the fixed document key the whole payroll book lives under.
const SnapshotKey = "boxing_payroll_v6_final"

// SnapshotStore persists the serialized payroll book.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, document []byte) error
	Close() error
}

// EventPublisher notifies downstream consumers that a year's ledger changed.
type EventPublisher interface {
	PublishLedgerSync(ctx context.Context, year string) error
}

// Service serializes all book mutations. Every operation works on a deep
// copy and swaps it in only after the snapshot store accepted the new
// state, so a failed persist leaves the served book untouched.
type Service struct {
	mu        sync.Mutex
	book      *core.PayrollBook
	store     SnapshotStore
	publisher EventPublisher
}

// NewService loads the persisted book or seeds a fresh one for the current
// year on first run.
func NewService(ctx context.Context, store SnapshotStore, publisher EventPublisher) (*Service, error) {
	doc, ok, err := store.Load(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load payroll snapshot: %w", err)
	}

	var book *core.PayrollBook
	if ok {
		book = &core.PayrollBook{}
		if err := json.Unmarshal(doc, book); err != nil {
			return nil, fmt.Errorf("decode payroll snapshot: %w", err)
		}
		slog.InfoContext(ctx, "Loaded payroll book",
			"coaches", len(book.Coaches),
			"years", len(book.Years))
	} else {
		book = core.NewPayrollBook(time.Now().Format("2006"))
		slog.InfoContext(ctx, "No snapshot found, starting empty payroll book")
	}

	return &Service{book: book, store: store, publisher: publisher}, nil
}

// RegisterCoach adds a coach and enrolls them in every month of year.
func (s *Service) RegisterCoach(ctx context.Context, year, name, residentID string) (core.Coach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	coach, err := next.RegisterCoach(year, name, residentID)
	if err != nil {
		return core.Coach{}, err
	}
	if err := s.commit(ctx, next, year); err != nil {
		return core.Coach{}, err
	}
	return coach, nil
}

// DeleteCoach removes a coach along with every amount and roster entry
// that references them, across all years.
func (s *Service) DeleteCoach(ctx context.Context, coachID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	if err := next.DeleteCoach(coachID); err != nil {
		return err
	}
	return s.commit(ctx, next, "")
}

// UpdateCoachIdentity changes a coach's resident registration number.
func (s *Service) UpdateCoachIdentity(ctx context.Context, coachID, residentID string) (core.Coach, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	if err := next.UpdateCoachIdentity(coachID, residentID); err != nil {
		return core.Coach{}, err
	}
	if err := s.commit(ctx, next, ""); err != nil {
		return core.Coach{}, err
	}
	coach, _ := next.FindCoach(coachID)
	return coach, nil
}

// SetMonthlyAmount records a payment for one coach in one month. The raw
// input is sanitized the same way the UI does, so "1,200,000원" and
// "1200000" store the same value. Returns the stored amount.
func (s *Service) SetMonthlyAmount(ctx context.Context, year string, month int, coachID, rawInput string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	amount, err := next.SetMonthlyAmount(year, month, coachID, rawInput)
	if err != nil {
		return 0, err
	}
	if err := s.commit(ctx, next, year); err != nil {
		return 0, err
	}
	return amount, nil
}

// AddToRoster enrolls a coach in a single month.
func (s *Service) AddToRoster(ctx context.Context, year string, month int, coachID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	if err := next.AddToRoster(year, month, coachID); err != nil {
		return err
	}
	return s.commit(ctx, next, year)
}

// RemoveFromRoster drops a coach from a single month's roster. Recorded
// amounts stay in place so re-enrolling restores the history.
func (s *Service) RemoveFromRoster(ctx context.Context, year string, month int, coachID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.book.Clone()
	if err := next.RemoveFromRoster(year, month, coachID); err != nil {
		return err
	}
	return s.commit(ctx, next, year)
}

// commit persists next and swaps it in as the served book. The AMQP
// publish happens after the swap and never fails the operation.
func (s *Service) commit(ctx context.Context, next *core.PayrollBook, year string) error {
	doc, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode payroll book: %w", err)
	}
	if err := s.store.Save(ctx, SnapshotKey, doc); err != nil {
		return fmt.Errorf("persist payroll book: %w", err)
	}
	s.book = next

	if s.publisher != nil && year != "" {
		if err := s.publisher.PublishLedgerSync(ctx, year); err != nil {
			slog.WarnContext(ctx, "Failed to publish ledger sync message",
				"year", year, "error", err)
			// Don't fail the request, the book is saved locally.
		}
	}
	return nil
}

// Snapshot returns a deep copy of the current book for read-side use.
func (s *Service) Snapshot() *core.PayrollBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Clone()
}

// MonthlySummary computes the roster-gated pay rows for one month.
func (s *Service) MonthlySummary(year string, month int) (core.MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.book, year, month)
}

// AnnualSummary folds all twelve months of one year.
func (s *Service) AnnualSummary(year string) (core.AnnualSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.SummarizeYear(s.book, year)
}

// Report renders the accountant hand-off text for one year.
func (s *Service) Report(year string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.BuildReport(s.book, year)
}

// KnownYears lists every year the book has data for, plus extras.
func (s *Service) KnownYears(extra ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.KnownYears(extra...)
}

// Close releases the snapshot store.
func (s *Service) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close ledger service: %w", err)
		}
	}
	return nil
}
