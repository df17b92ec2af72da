package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func testServices(t *testing.T) (*TransactionService, *GoalService) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	// No AMQP in tests; the service degrades to store-only writes.
	return NewTransactionService(repo, nil), NewGoalService(repo)
}

func validTransaction() core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: 12050},
		Description: "Grocery run",
		Category:    "groceries",
		Type:        core.Debit,
		PaymentMode: "upi",
		Date:        core.NewDate(2025, 6, 10),
	}
}

func TestCreateTransactionWithoutAMQP(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Version != 1 {
		t.Errorf("created = %+v", created)
	}

	list, err := svc.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	svc, _ := testServices(t)

	bad := validTransaction()
	bad.Amount.Cents = 0
	bad.Description = ""

	_, err := svc.CreateTransaction(context.Background(), bad)
	var fieldErrs core.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, present := fieldErrs["amount"]; !present {
		t.Errorf("missing amount error: %v", fieldErrs)
	}
	if _, present := fieldErrs["description"]; !present {
		t.Errorf("missing description error: %v", fieldErrs)
	}
}

func TestUpdateTransaction(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	changed := validTransaction()
	changed.Description = "Monthly groceries"
	updated, err := svc.UpdateTransaction(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "Monthly groceries" || updated.Version != 2 {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.UpdateTransaction(ctx, 999, changed); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc, _ := testServices(t)
	ctx := context.Background()

	created, err := svc.CreateTransaction(ctx, validTransaction())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestGoalService(t *testing.T) {
	_, goals := testServices(t)
	ctx := context.Background()

	if _, err := goals.LatestGoal(ctx); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("empty goal err = %v, want ErrNotFound", err)
	}

	if _, err := goals.ReplaceGoal(ctx, core.Goal{}); err == nil {
		t.Error("expected validation error")
	}

	first, err := goals.ReplaceGoal(ctx, core.Goal{
		BankAmount: core.Money{Cents: 500000},
		StartDate:  core.NewDate(2025, 1, 1),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	second, err := goals.ReplaceGoal(ctx, core.Goal{
		BankAmount: core.Money{Cents: 900000},
		StartDate:  core.NewDate(2025, 3, 1),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if second.ID == first.ID {
		t.Error("replacement should get a fresh id")
	}

	latest, err := goals.LatestGoal(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.BankAmount.Cents != 900000 {
		t.Errorf("latest = %+v, want the replacement", latest)
	}
}
