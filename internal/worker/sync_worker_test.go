package worker

import (
	"context"
	"testing"

	"boxpay/internal/amqp"
	"boxpay/internal/ledger"
	"boxpay/internal/sheets/memory"
	"boxpay/internal/storage"
)

func seedStore(t *testing.T) *storage.MemoryRepository {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryRepository()
	svc, err := ledger.NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("seed service: %v", err)
	}
	coach, err := svc.RegisterCoach(ctx, "2025", "김코치", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.SetMonthlyAmount(ctx, "2025", 0, coach.ID, "120,000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	return store
}

func TestHandleSyncMessage(t *testing.T) {
	store := seedStore(t)
	sink := memory.New()
	w := NewSyncWorker(store, sink)

	msg := amqp.NewLedgerSyncMessage("2025")
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage failed: %v", err)
	}

	rows := sink.Rows("2025")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + one payment + total: %v", len(rows), rows)
	}
	if rows[1][2] != int64(120000) || rows[1][3] != int64(3960) {
		t.Fatalf("unexpected payment row: %v", rows[1])
	}
}

func TestSyncYearWithoutSnapshot(t *testing.T) {
	sink := memory.New()
	w := NewSyncWorker(storage.NewMemoryRepository(), sink)

	if err := w.SyncYear(context.Background(), "2025"); err != nil {
		t.Fatalf("expected missing snapshot to be a no-op, got %v", err)
	}
	if sink.Rows("2025") != nil {
		t.Fatalf("wrote rows without a snapshot")
	}
}

func TestResyncAllCoversEveryKnownYear(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	// Add a second year to the same book.
	svc, err := ledger.NewService(ctx, store, nil)
	if err != nil {
		t.Fatalf("reload service: %v", err)
	}
	if _, err := svc.RegisterCoach(ctx, "2024", "이코치", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	sink := memory.New()
	w := NewSyncWorker(store, sink)
	if err := w.ResyncAll(ctx); err != nil {
		t.Fatalf("ResyncAll failed: %v", err)
	}
	if sink.Rows("2024") == nil || sink.Rows("2025") == nil {
		t.Fatalf("expected both years exported")
	}
}
