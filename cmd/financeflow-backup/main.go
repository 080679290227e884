package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"financeflow/internal/config"
	"financeflow/internal/events"
	applog "financeflow/internal/log"
	"financeflow/internal/mirror/google"
	"financeflow/internal/persist"
	"financeflow/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting financeflow-backup")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required: the backup worker is driven by change events")
		os.Exit(1)
	}

	// The worker only reads the blobs the server writes; it never holds
	// state of its own.
	blobs, err := persist.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open blob store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer blobs.Close()

	var mirror worker.Mirror
	if cfg.MirrorBackend == "sheets" {
		client, err := google.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets mirror", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Mirror disabled")
	}

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	backupWorker := worker.NewBackupWorker(persist.NewGateway(blobs), cfg.BackupDir, cfg.BackupDebounce, mirror)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordChanges(gctx, backupWorker.HandleChange)
	})
	g.Go(func() error {
		return backupWorker.Run(gctx)
	})

	logger.Info("Backup worker running",
		"backup_dir", cfg.BackupDir,
		"debounce", cfg.BackupDebounce.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Backup worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Backup worker stopped gracefully")
}
