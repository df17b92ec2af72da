package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleTransaction() core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: 12050},
		Description: "Grocery run",
		Category:    "groceries",
		Type:        core.Debit,
		PaymentMode: "upi",
		Remarks:     "weekly",
		Date:        core.NewDate(2025, 6, 10),
	}
}

func TestCreateAndGetTransaction(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.CreateTransaction(ctx, sampleTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if created.Version != 1 {
		t.Errorf("version = %d, want 1", created.Version)
	}

	got, err := repo.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 12050 || got.Description != "Grocery run" ||
		got.Category != "groceries" || got.Type != core.Debit ||
		got.PaymentMode != "upi" || got.Remarks != "weekly" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Date.String() != "2025-06-10" {
		t.Errorf("date = %q", got.Date.String())
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.GetTransaction(context.Background(), 42); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListTransactionsOrder(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	older := sampleTransaction()
	older.Date = core.NewDate(2025, 6, 1)
	newer := sampleTransaction()
	newer.Date = core.NewDate(2025, 6, 12)
	sameDay := sampleTransaction()
	sameDay.Date = core.NewDate(2025, 6, 12)

	first, _ := repo.CreateTransaction(ctx, older)
	second, _ := repo.CreateTransaction(ctx, newer)
	third, _ := repo.CreateTransaction(ctx, sameDay)

	list, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	// Newest date first, newest insert first within a date.
	if list[0].ID != third.ID || list[1].ID != second.ID || list[2].ID != first.ID {
		t.Errorf("order = %d, %d, %d", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.CreateTransaction(ctx, sampleTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkExported(ctx, created.ID); err != nil {
		t.Fatalf("mark exported: %v", err)
	}

	changed := sampleTransaction()
	changed.Amount = core.Money{Cents: 99900}
	changed.Description = "Monthly groceries"

	updated, err := repo.UpdateTransaction(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed: %d -> %d", created.ID, updated.ID)
	}
	if updated.Amount.Cents != 99900 || updated.Description != "Monthly groceries" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, want 2", updated.Version)
	}

	// The update re-queues the row for export.
	pending, err := repo.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != created.ID || pending[0].Version != 2 {
		t.Errorf("pending = %+v", pending)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.UpdateTransaction(context.Background(), 42, sampleTransaction()); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.CreateTransaction(ctx, sampleTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("record still present: %v", err)
	}
	if err := repo.DeleteTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestPendingExportLifecycle(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	a, _ := repo.CreateTransaction(ctx, sampleTransaction())
	b, _ := repo.CreateTransaction(ctx, sampleTransaction())

	pending, err := repo.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if err := repo.MarkExported(ctx, a.ID); err != nil {
		t.Fatalf("mark exported: %v", err)
	}
	if err := repo.MarkExportError(ctx, b.ID); err != nil {
		t.Fatalf("mark error: %v", err)
	}

	pending, err = repo.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want empty", pending)
	}
}

func TestPendingExportsHonorsLimit(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.CreateTransaction(ctx, sampleTransaction()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pending, err := repo.PendingExports(ctx, 3)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("pending = %d, want 3", len(pending))
	}
}

func TestGoalReplaceSemantics(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.LatestGoal(ctx); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("empty store err = %v, want ErrNotFound", err)
	}

	first, err := repo.ReplaceGoal(ctx, core.Goal{
		BankAmount: core.Money{Cents: 500000},
		StartDate:  core.NewDate(2025, 1, 1),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected store-assigned id")
	}

	second, err := repo.ReplaceGoal(ctx, core.Goal{
		BankAmount: core.Money{Cents: 750000},
		StartDate:  core.NewDate(2025, 2, 1),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.LatestGoal(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != second.ID || got.BankAmount.Cents != 750000 {
		t.Errorf("latest = %+v, want the replacement", got)
	}
	if got.StartDate.String() != "2025-02-01" {
		t.Errorf("start date = %q", got.StartDate.String())
	}
}
