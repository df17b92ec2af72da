// Package services orchestrates store writes with export-queue publication.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransactionService persists transactions and queues them for export. AMQP
// failures never fail the request; the record is already safe in SQLite and
// the worker's periodic sweep picks it up later.
type TransactionService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewTransactionService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx)
}

// CreateTransaction validates, saves and publishes a sync message.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSync(ctx, created.ID, created.Version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", created.ID, "error", err)
	}

	return created, nil
}

// UpdateTransaction validates and overwrites the record, then re-queues it
// for export under its bumped version.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int64, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	updated, err := s.storage.UpdateTransaction(ctx, id, t)
	if err != nil {
		return core.Transaction{}, err
	}

	if err := s.publishSync(ctx, updated.ID, updated.Version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", updated.ID, "error", err)
	}

	return updated, nil
}

// DeleteTransaction removes the record and publishes a delete notice.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.PublishTransactionDelete(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message",
				"id", id, "error", err)
		}
	}

	return nil
}

func (s *TransactionService) publishSync(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id, version)
}

// Close closes both storage and AMQP connections.
func (s *TransactionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
