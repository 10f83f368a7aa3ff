package ledger

import (
	"context"
	"errors"
	"testing"

	"boxpay/internal/core"
	"boxpay/internal/storage"
)

type failingStore struct {
	*storage.MemoryRepository
	failSave bool
}

func (f *failingStore) Save(ctx context.Context, key string, document []byte) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.MemoryRepository.Save(ctx, key, document)
}

type recordingPublisher struct {
	years []string
	err   error
}

func (p *recordingPublisher) PublishLedgerSync(_ context.Context, year string) error {
	p.years = append(p.years, year)
	return p.err
}

func newTestService(t *testing.T) (*Service, *storage.MemoryRepository) {
	t.Helper()
	store := storage.NewMemoryRepository()
	svc, err := NewService(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, store
}

func TestServiceRegisterAndReload(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	coach, err := svc.RegisterCoach(ctx, "2025", "김코치", "900101-1******")
	if err != nil {
		t.Fatalf("RegisterCoach failed: %v", err)
	}
	if coach.ID == "" {
		t.Fatalf("expected generated coach ID")
	}

	// A second service over the same store sees the persisted book.
	again, err := NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	book := again.Snapshot()
	if len(book.Coaches) != 1 || book.Coaches[0].Name != "김코치" {
		t.Fatalf("reloaded book missing coach: %+v", book.Coaches)
	}
	if got := len(book.Roster("2025", 0)); got != 1 {
		t.Fatalf("expected auto-enrolled roster, got %d entries", got)
	}
}

func TestServiceFailedPersistLeavesBookUntouched(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryRepository: storage.NewMemoryRepository()}
	svc, err := NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	coach, err := svc.RegisterCoach(ctx, "2025", "김코치", "")
	if err != nil {
		t.Fatalf("RegisterCoach failed: %v", err)
	}

	store.failSave = true
	if _, err := svc.SetMonthlyAmount(ctx, "2025", 0, coach.ID, "500000"); err == nil {
		t.Fatalf("expected persist error")
	}

	// The served state must not contain the failed mutation.
	if got := svc.Snapshot().Amount("2025", coach.ID, 0); got != 0 {
		t.Fatalf("failed mutation leaked into served book: %d", got)
	}

	store.failSave = false
	if _, err := svc.SetMonthlyAmount(ctx, "2025", 0, coach.ID, "500000"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got := svc.Snapshot().Amount("2025", coach.ID, 0); got != 500000 {
		t.Fatalf("amount = %d, want 500000", got)
	}
}

func TestServicePublishFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryRepository()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, err := NewService(ctx, store, pub)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	if _, err := svc.RegisterCoach(ctx, "2025", "이코치", ""); err != nil {
		t.Fatalf("RegisterCoach failed despite broker outage: %v", err)
	}
	if len(pub.years) != 1 || pub.years[0] != "2025" {
		t.Fatalf("expected one publish for 2025, got %v", pub.years)
	}
}

func TestServiceDomainErrorSkipsPersistAndPublish(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryRepository()
	pub := &recordingPublisher{}
	svc, err := NewService(ctx, store, pub)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	if _, err := svc.SetMonthlyAmount(ctx, "2025", 0, "c_missing", "100"); !errors.Is(err, core.ErrCoachNotFound) {
		t.Fatalf("expected ErrCoachNotFound, got %v", err)
	}
	if len(pub.years) != 0 {
		t.Fatalf("rejected mutation published an event: %v", pub.years)
	}
}

func TestServiceRosterAndSummaryFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	coach, err := svc.RegisterCoach(ctx, "2025", "김코치", "")
	if err != nil {
		t.Fatalf("RegisterCoach failed: %v", err)
	}
	if _, err := svc.SetMonthlyAmount(ctx, "2025", 0, coach.ID, "120,000"); err != nil {
		t.Fatalf("SetMonthlyAmount failed: %v", err)
	}

	sum, err := svc.MonthlySummary("2025", 0)
	if err != nil {
		t.Fatalf("MonthlySummary failed: %v", err)
	}
	if sum.Withholding != 3960 || sum.Net != 116040 {
		t.Fatalf("withholding/net = %d/%d, want 3960/116040",
			sum.Withholding, sum.Net)
	}

	if err := svc.RemoveFromRoster(ctx, "2025", 0, coach.ID); err != nil {
		t.Fatalf("RemoveFromRoster failed: %v", err)
	}
	sum, err = svc.MonthlySummary("2025", 0)
	if err != nil {
		t.Fatalf("MonthlySummary failed: %v", err)
	}
	if len(sum.Rows) != 0 || sum.Gross != 0 {
		t.Fatalf("unrostered coach still summarized: %+v", sum)
	}

	// Re-enrolling restores the recorded amount.
	if err := svc.AddToRoster(ctx, "2025", 0, coach.ID); err != nil {
		t.Fatalf("AddToRoster failed: %v", err)
	}
	sum, _ = svc.MonthlySummary("2025", 0)
	if sum.Gross != 120000 {
		t.Fatalf("gross = %d after re-enroll, want 120000", sum.Gross)
	}
}

func TestServiceSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.RegisterCoach(ctx, "2025", "김코치", ""); err != nil {
		t.Fatalf("RegisterCoach failed: %v", err)
	}
	snap := svc.Snapshot()
	snap.Coaches[0].Name = "변조"

	if got := svc.Snapshot().Coaches[0].Name; got != "김코치" {
		t.Fatalf("snapshot mutation leaked into service: %q", got)
	}
}
