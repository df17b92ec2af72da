package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export/memory"
	"fintrack/internal/storage"
)

func testWorker(t *testing.T) (*ExportWorker, *storage.SQLiteRepository, *memory.Appender) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	journal := memory.New()
	return NewExportWorker(repo, journal, 10), repo, journal
}

func createTransaction(t *testing.T, repo *storage.SQLiteRepository) core.Transaction {
	t.Helper()
	created, err := repo.CreateTransaction(context.Background(), core.Transaction{
		Amount:      core.Money{Cents: 12050},
		Description: "Grocery run",
		Category:    "groceries",
		Type:        core.Debit,
		PaymentMode: "upi",
		Date:        core.NewDate(2025, 6, 10),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return created
}

func TestHandleSyncMessage(t *testing.T) {
	w, repo, journal := testWorker(t)
	ctx := context.Background()

	created := createTransaction(t, repo)

	msg := &amqp.TransactionSyncMessage{ID: created.ID, Version: created.Version, Timestamp: time.Now()}
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows := journal.Rows()
	if len(rows) != 1 {
		t.Fatalf("journal rows = %d, want 1", len(rows))
	}
	if rows[0].ID != created.ID || rows[0].Amount.Cents != 12050 {
		t.Errorf("journal row = %+v", rows[0])
	}

	// The row is no longer pending.
	pending, err := repo.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}
}

func TestHandleSyncMessageGoneTransaction(t *testing.T) {
	w, _, journal := testWorker(t)

	msg := &amqp.TransactionSyncMessage{ID: 42, Version: 1, Timestamp: time.Now()}
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("deleted transaction should be skipped, got %v", err)
	}
	if len(journal.Rows()) != 0 {
		t.Error("nothing should be journaled")
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	w, _, journal := testWorker(t)

	// The journal is append-only: delete messages are acknowledged without
	// touching existing rows.
	msg := &amqp.TransactionDeleteMessage{ID: 7, Timestamp: time.Now()}
	if err := w.HandleDeleteMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if len(journal.Rows()) != 0 {
		t.Error("journal should be untouched")
	}
}

func TestProcessPending(t *testing.T) {
	w, repo, journal := testWorker(t)
	ctx := context.Background()

	a := createTransaction(t, repo)
	b := createTransaction(t, repo)

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}

	rows := journal.Rows()
	if len(rows) != 2 {
		t.Fatalf("journal rows = %d, want 2", len(rows))
	}
	if rows[0].ID != a.ID || rows[1].ID != b.ID {
		t.Errorf("journal order = %d, %d", rows[0].ID, rows[1].ID)
	}

	// A second sweep finds nothing to do.
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(journal.Rows()) != 2 {
		t.Error("second sweep must not re-export")
	}
}

func TestProcessPendingMarksErrors(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	w := NewExportWorker(repo, failingJournal{}, 10)
	ctx := context.Background()

	created := createTransaction(t, repo)

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}

	// The failed row is parked in error state, not retried forever.
	pending, err := repo.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}

	// An update re-queues it.
	created.Description = "retry me"
	if _, err := repo.UpdateTransaction(ctx, created.ID, created); err != nil {
		t.Fatalf("update: %v", err)
	}
	pending, _ = repo.PendingExports(ctx, 10)
	if len(pending) != 1 {
		t.Errorf("pending after update = %+v, want 1 entry", pending)
	}
}

func TestStartupCheck(t *testing.T) {
	w, repo, journal := testWorker(t)
	ctx := context.Background()

	createTransaction(t, repo)
	createTransaction(t, repo)

	if err := w.StartupCheck(ctx); err != nil {
		t.Fatalf("startup check: %v", err)
	}
	if len(journal.Rows()) != 2 {
		t.Errorf("journal rows = %d, want 2", len(journal.Rows()))
	}
}

type failingJournal struct{}

func (failingJournal) Append(context.Context, core.Transaction) (string, error) {
	return "", errors.New("journal unavailable")
}
