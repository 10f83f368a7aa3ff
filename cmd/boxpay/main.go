package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"boxpay/internal/amqp"
	"boxpay/internal/cli"
	"boxpay/internal/generate"
	apphttp "boxpay/internal/http"
	"boxpay/internal/ledger"
	applog "boxpay/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenSnapshotStore(logger, cfg)

	// The sync pipeline is optional: without a broker the server runs
	// standalone and mutations simply skip publishing.
	var publisher ledger.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, sheet sync disabled", applog.FieldError, err)
		} else {
			publisher = amqpClient
			defer amqpClient.Close()
			logger.Info("AMQP publisher initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	svc, err := ledger.NewService(context.Background(), store, publisher)
	if err != nil {
		logger.Error("Failed to initialize ledger service", applog.FieldError, err)
		os.Exit(1)
	}
	defer svc.Close()

	gen := generate.NewGeminiGenerator(cfg.GenAPIKey, cfg.GenModel)

	srv := apphttp.NewServer(":"+cfg.Port, svc, gen)
	srv.ReadTimeout = 10 * time.Second
	// Generation responses can take tens of seconds.
	srv.WriteTimeout = 60 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := cli.ShutdownContext()
	defer cancel()

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	}()

	logger.Info("Starting boxpay server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
