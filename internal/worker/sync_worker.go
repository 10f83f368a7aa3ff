// Package worker mirrors the payroll ledger into the accountant's
// spreadsheet, driven by AMQP change messages with a periodic resync as
// backup.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"boxpay/internal/amqp"
	"boxpay/internal/core"
	"boxpay/internal/ledger"
	"boxpay/internal/sheets"
)

// SnapshotLoader is the read side of the snapshot store.
type SnapshotLoader interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
}

type SyncWorker struct {
	store  SnapshotLoader
	writer sheets.ReportWriter
}

func NewSyncWorker(store SnapshotLoader, writer sheets.ReportWriter) *SyncWorker {
	return &SyncWorker{store: store, writer: writer}
}

// HandleSyncMessage exports the year named in one AMQP message. The full
// book is reloaded from the snapshot store, the message only says which
// year changed.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing ledger sync message",
		"year", msg.Year, "sent_at", msg.Timestamp)
	return w.SyncYear(ctx, msg.Year)
}

// SyncYear rebuilds and writes one year's sheet from the current snapshot.
func (w *SyncWorker) SyncYear(ctx context.Context, year string) error {
	book, ok, err := w.loadBook(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.WarnContext(ctx, "No payroll snapshot to export", "year", year)
		return nil
	}

	rows, err := sheets.BuildYearRows(book, year)
	if err != nil {
		return fmt.Errorf("build rows for %s: %w", year, err)
	}
	if err := w.writer.WriteYear(ctx, year, rows); err != nil {
		return fmt.Errorf("write sheet for %s: %w", year, err)
	}

	slog.InfoContext(ctx, "Exported payroll year", "year", year, "rows", len(rows))
	return nil
}

// ResyncAll exports every year the book knows about. This is the backup
// path for lost AMQP messages and worker downtime.
func (w *SyncWorker) ResyncAll(ctx context.Context) error {
	book, ok, err := w.loadBook(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.InfoContext(ctx, "No payroll snapshot found, nothing to resync")
		return nil
	}

	years := book.KnownYears()
	for _, year := range years {
		rows, err := sheets.BuildYearRows(book, year)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to build rows", "year", year, "error", err)
			continue
		}
		if err := w.writer.WriteYear(ctx, year, rows); err != nil {
			slog.ErrorContext(ctx, "Failed to write sheet", "year", year, "error", err)
			continue
		}
	}

	slog.InfoContext(ctx, "Resync completed", "years", len(years))
	return nil
}

// RunPeriodicResync resyncs every interval until ctx is canceled.
func (w *SyncWorker) RunPeriodicResync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ResyncAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
			}
		}
	}
}

func (w *SyncWorker) loadBook(ctx context.Context) (*core.PayrollBook, bool, error) {
	doc, ok, err := w.store.Load(ctx, ledger.SnapshotKey)
	if err != nil {
		return nil, false, fmt.Errorf("load payroll snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	book := &core.PayrollBook{}
	if err := json.Unmarshal(doc, book); err != nil {
		return nil, false, fmt.Errorf("decode payroll snapshot: %w", err)
	}
	return book, true, nil
}
