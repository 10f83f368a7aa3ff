// Package cli consolidates initialization patterns shared by cmd/boxpay
// and cmd/boxpay-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"boxpay/internal/config"
	"boxpay/internal/ledger"
	applog "boxpay/internal/log"
	"boxpay/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenSnapshotStore picks the snapshot store named by cfg.DataBackend.
// Exits the process when the SQLite store cannot be opened.
func OpenSnapshotStore(logger *applog.Logger, cfg *config.Config) ledger.SnapshotStore {
	if cfg.DataBackend == "memory" {
		logger.Info("Using in-memory snapshot store")
		return storage.NewMemoryRepository()
	}
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	logger.Info("Opened SQLite snapshot store", "path", cfg.SQLiteDBPath)
	return repo
}

// ShutdownContext returns a context canceled on SIGINT or SIGTERM.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
