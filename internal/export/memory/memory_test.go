package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestAppend(t *testing.T) {
	a := New()
	ctx := context.Background()

	ref1, err := a.Append(ctx, core.Transaction{ID: 1})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	ref2, err := a.Append(ctx, core.Transaction{ID: 2})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if ref1 != "mem:1" || ref2 != "mem:2" {
		t.Errorf("refs = %q, %q", ref1, ref2)
	}

	rows := a.Rows()
	if len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 2 {
		t.Errorf("rows = %+v", rows)
	}

	// Rows returns a copy.
	rows[0].ID = 99
	if a.Rows()[0].ID != 1 {
		t.Error("internal state was mutated through the returned slice")
	}
}
