// Package storage persists transactions and goals in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339

// SQLiteRepository is the single store for transaction and goal records.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, amount_cents, description, category, type, payment_mode, remarks, tx_date, version, created_at, updated_at`

// ListTransactions returns every transaction, newest date first. Records
// sharing a date come back newest insert first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY tx_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// GetTransaction fetches one record by id, or core.ErrNotFound.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// CreateTransaction inserts the record and returns it with store-assigned id
// and timestamps. The new row is marked pending for the export worker.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions
		 (amount_cents, description, category, type, payment_mode, remarks, tx_date, sync_status, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 'pending', 1, ?, ?)`,
		t.Amount.Cents, t.Description, t.Category, string(t.Type), t.PaymentMode, t.Remarks,
		t.Date.String(), now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}

	t.ID = id
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category,
		"date", t.Date.String())

	return t, nil
}

// UpdateTransaction overwrites every mutable field of the record. The id is
// immutable; an unknown id yields core.ErrNotFound and no write. The version
// bump re-queues the row for export.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id int64, t core.Transaction) (core.Transaction, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET
		 amount_cents = ?, description = ?, category = ?, type = ?, payment_mode = ?,
		 remarks = ?, tx_date = ?, sync_status = 'pending', version = version + 1, updated_at = ?
		 WHERE id = ?`,
		t.Amount.Cents, t.Description, t.Category, string(t.Type), t.PaymentMode, t.Remarks,
		t.Date.String(), now.Format(timeLayout), id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, core.ErrNotFound
	}

	return r.GetTransaction(ctx, id)
}

// DeleteTransaction removes the record, or core.ErrNotFound.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// LatestGoal returns the most recently created goal, or core.ErrNotFound when
// none exists.
func (r *SQLiteRepository) LatestGoal(ctx context.Context) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, bank_amount_cents, start_date, created_at, updated_at
		 FROM goals ORDER BY created_at DESC, id DESC LIMIT 1`)

	var (
		g                    core.Goal
		startDate            string
		createdAt, updatedAt string
	)
	err := row.Scan(&g.ID, &g.BankAmount.Cents, &startDate, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get latest goal: %w", err)
	}
	if g.StartDate, err = core.ParseDate(startDate); err != nil {
		return core.Goal{}, fmt.Errorf("parse goal start date: %w", err)
	}
	if g.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Goal{}, fmt.Errorf("parse goal created_at: %w", err)
	}
	if g.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return core.Goal{}, fmt.Errorf("parse goal updated_at: %w", err)
	}
	return g, nil
}

// ReplaceGoal deletes every existing goal and inserts the new one inside a
// single SQL transaction, enforcing the at-most-one-goal invariant.
func (r *SQLiteRepository) ReplaceGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Goal{}, fmt.Errorf("begin goal replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return core.Goal{}, fmt.Errorf("clear goals: %w", err)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO goals (bank_amount_cents, start_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		g.BankAmount.Cents, g.StartDate.String(), now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Goal{}, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Goal{}, fmt.Errorf("commit goal replace: %w", err)
	}

	g.ID = id
	g.CreatedAt = now
	g.UpdatedAt = now

	slog.InfoContext(ctx, "Goal replaced",
		"id", g.ID,
		"bank_amount_cents", g.BankAmount.Cents,
		"start_date", g.StartDate.String())

	return g, nil
}

// PendingExport identifies a transaction the export worker still has to
// journal.
type PendingExport struct {
	ID      int64
	Version int64
}

// PendingExports lists transactions awaiting export, oldest first.
func (r *SQLiteRepository) PendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version FROM transactions WHERE sync_status = 'pending' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		if err := rows.Scan(&p.ID, &p.Version); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkExported flags a transaction as journaled.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as exported", "id", id)
	return nil
}

// MarkExportError flags a transaction whose export attempt failed; the
// periodic sweep will not retry it until it is updated again.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                    core.Transaction
		txType               string
		txDate               string
		createdAt, updatedAt string
	)
	err := row.Scan(&t.ID, &t.Amount.Cents, &t.Description, &t.Category, &txType,
		&t.PaymentMode, &t.Remarks, &txDate, &t.Version, &createdAt, &updatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(txType)
	if t.Date, err = core.ParseDate(txDate); err != nil {
		return core.Transaction{}, fmt.Errorf("parse tx_date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return t, nil
}
