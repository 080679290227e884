// Package worker implements the automatic backup process: it listens
// for record change events, waits for the stream to quiet down and then
// writes a dated snapshot of the persisted state to disk.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"financeflow/internal/core"
	"financeflow/internal/events"
	"financeflow/internal/persist"
	"financeflow/internal/snapshot"
)

// Mirror pushes the transaction list to an external copy, such as a
// Google Sheets tab. Mirror failures never fail a backup.
type Mirror interface {
	MirrorTransactions(ctx context.Context, txs []core.Transaction) error
}

type BackupWorker struct {
	gateway  *persist.Gateway
	dir      string
	debounce time.Duration
	mirror   Mirror

	// Coalesces bursts of change events into one pending backup.
	pending chan struct{}
}

func NewBackupWorker(gateway *persist.Gateway, dir string, debounce time.Duration, mirror Mirror) *BackupWorker {
	return &BackupWorker{
		gateway:  gateway,
		dir:      dir,
		debounce: debounce,
		mirror:   mirror,
		pending:  make(chan struct{}, 1),
	}
}

// HandleChange is the AMQP consumer callback. It only marks a backup as
// due; the actual write happens in Run after the debounce window.
func (w *BackupWorker) HandleChange(msg *events.RecordChange) error {
	slog.Debug("Change event received",
		"entity", msg.Entity, "action", msg.Action, "id", msg.ID)
	select {
	case w.pending <- struct{}{}:
	default:
	}
	return nil
}

// Run drives the debounce loop until the context is cancelled. Each
// burst of change events resets the timer, so a backup lands one quiet
// debounce window after the last change.
func (w *BackupWorker) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.pending:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			path, err := w.WriteBackup(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "Backup failed", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Backup written", "path", path)
		}
	}
}

// WriteBackup loads the persisted state and writes it as a dated
// snapshot file, returning the file path. Blobs that fail to load are
// logged and backed up as empty, same as the server treats them.
func (w *BackupWorker) WriteBackup(ctx context.Context) (string, error) {
	txs, budgets, goals, warnings := w.gateway.Load(ctx)
	for _, warn := range warnings {
		slog.WarnContext(ctx, "Skipping unreadable blob in backup", "error", warn)
	}

	snap := snapshot.Export(txs, budgets, goals, time.Now())
	raw, err := snap.Encode()
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := "financeflow-" + snap.ExportDate.Format("20060102-150405") + ".json"
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	if w.mirror != nil {
		if err := w.mirror.MirrorTransactions(ctx, txs); err != nil {
			slog.ErrorContext(ctx, "Mirror update failed", "error", err)
		}
	}

	return path, nil
}
