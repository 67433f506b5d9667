package diag

import "github.com/google/uuid"

// Bag accumulates diagnostics across one compilation run. Its RunID
// identifies the run the accumulated diagnostics came from, so a caller
// that logs or persists them can tell concurrent runs apart; the
// diagnostics themselves carry no run ID.
type Bag struct {
	RunID uuid.UUID
	items []Error
}

// NewBag creates an empty diagnostic bag with a fresh run ID.
func NewBag() *Bag {
	return &Bag{RunID: uuid.New()}
}

// Add appends a diagnostic, skipping nils so callers can unconditionally
// pass the (possibly-nil) result of a fallible operation.
func (b *Bag) Add(err Error) {
	if err == nil {
		return
	}
	b.items = append(b.items, err)
}

// Errors returns every accumulated diagnostic, in insertion order.
func (b *Bag) Errors() []Error {
	return b.items
}

// Empty reports whether no diagnostics were accumulated.
func (b *Bag) Empty() bool {
	return len(b.items) == 0
}
