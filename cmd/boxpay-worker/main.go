package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"boxpay/internal/amqp"
	"boxpay/internal/cli"
	applog "boxpay/internal/log"
	gsheet "boxpay/internal/sheets/google"
	"boxpay/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting boxpay-worker")

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the export worker")
		os.Exit(1)
	}

	store := cli.OpenSnapshotStore(logger, cfg)
	defer store.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	syncWorker := worker.NewSyncWorker(store, sheetsClient)

	ctx, cancel := cli.ShutdownContext()
	defer cancel()

	// Catch up on anything missed while the worker was down.
	if err := syncWorker.ResyncAll(ctx); err != nil {
		logger.Error("Startup resync failed", applog.FieldError, err)
		// Don't exit - the consume loop can still make progress.
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			return amqpClient.ConsumeLedgerSync(ctx, func(msg *amqp.LedgerSyncMessage) error {
				return syncWorker.HandleSyncMessage(ctx, msg)
			})
		})
	} else {
		logger.Info("AMQP disabled, relying on periodic resync only")
	}

	g.Go(func() error {
		return syncWorker.RunPeriodicResync(ctx, cfg.SyncInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
