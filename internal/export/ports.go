// Package export defines the outbound journal port used by the export worker.
package export

import (
	"context"

	"fintrack/internal/core"
)

// TransactionAppender appends a transaction row to an external journal.
// Implementations must be safe for concurrent use.
type TransactionAppender interface {
	// Append writes one journal row and returns an opaque reference
	// to the appended row (sheet range, memory index, etc).
	Append(ctx context.Context, t core.Transaction) (string, error)
}
