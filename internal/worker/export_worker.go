// Package worker reconciles stored transactions with the external journal.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/storage"
)

// ExportWorker drives transaction rows from SQLite into the journal backend.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	journal   export.TransactionAppender
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, journal export.TransactionAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		journal:   journal,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		// Transaction was deleted between publish and consume. Nothing to export.
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Transaction gone before export, skipping", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.exportTransaction(ctx, t); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	return nil
}

// HandleDeleteMessage processes a transaction delete message from AMQP.
// The journal is append-only, so deletions are acknowledged but not
// propagated as row removals.
func (w *ExportWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TransactionDeleteMessage) error {
	slog.InfoContext(ctx, "Transaction deleted, journal rows retained",
		"id", msg.ID,
		"timestamp", msg.Timestamp)
	return nil
}

// ProcessPending exports any transactions still marked pending.
// This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction", "id", p.ID, "error", err)
			if err := w.storage.MarkExportError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark export error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupCheck exports pending transactions accumulated while the worker
// was down. It uses a larger batch than the periodic sweep.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.storage.PendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction for startup export",
				"id", p.ID, "error", err)
			if err := w.storage.MarkExportError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark export error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportTransaction(ctx context.Context, t core.Transaction) error {
	ref, err := w.journal.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to journal: %w", err)
	}

	if err := w.storage.MarkExported(ctx, t.ID); err != nil {
		// The append itself worked, so do not fail the message.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", t.ID, "error", err)
	}

	slog.InfoContext(ctx, "Successfully exported transaction",
		"id", t.ID,
		"version", t.Version,
		"journal_ref", ref,
		"amount_cents", t.Amount.Cents)

	return nil
}
