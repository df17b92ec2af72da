package core

// Snapshot reconciliation: pure state transitions a client applies to its
// in-memory transaction list after a store round trip, instead of refetching.
// The input slice is never mutated; each function returns a new slice.

// ApplyCreated prepends the record the store returned, keeping the newest
// entry first as in the store's date-descending listing.
func ApplyCreated(list []Transaction, created Transaction) []Transaction {
	out := make([]Transaction, 0, len(list)+1)
	out = append(out, created)
	out = append(out, list...)
	return out
}

// ApplyUpdated replaces the entry with a matching ID. A miss leaves the list
// unchanged apart from being copied.
func ApplyUpdated(list []Transaction, updated Transaction) []Transaction {
	out := make([]Transaction, len(list))
	for i, t := range list {
		if t.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = t
		}
	}
	return out
}

// ApplyDeleted removes the entry with a matching ID.
func ApplyDeleted(list []Transaction, id int64) []Transaction {
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
