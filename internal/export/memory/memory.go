// Package memory provides an in-memory journal backend, useful for
// local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
)

type Appender struct {
	mu   sync.Mutex
	rows []core.Transaction
}

func New() *Appender {
	return &Appender{}
}

func (a *Appender) Append(_ context.Context, t core.Transaction) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rows = append(a.rows, t)
	return fmt.Sprintf("mem:%d", len(a.rows)), nil
}

// Rows returns a copy of the appended rows in append order.
func (a *Appender) Rows() []core.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.Transaction, len(a.rows))
	copy(out, a.rows)
	return out
}
