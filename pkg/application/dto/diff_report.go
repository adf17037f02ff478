package dto

import (
	"github.com/shopspring/decimal"
)

// FieldChange records one field-level difference between two snapshots.
// Field is a display label ("stato evento", "unitPrice @Cassa 500W", ...);
// Before and After are string-normalized values with "—" for absent.
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// LineDelta records a quantity change for one aggregated line item.
// Delta is positive for additions and negative for removals.
type LineDelta struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Delta     decimal.Decimal `json:"delta"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DiffReport is the diff engine's sole output for a snapshot pair. Every
// item id appearing in either snapshot is classified into exactly one of:
// unchanged (absent from all three lists), Added, Removed, or contributing
// qualitative entries to Modified. The list orderings are presentation
// determinism only and carry no semantic weight.
type DiffReport struct {
	Modified []FieldChange `json:"modified"`
	Added    []LineDelta   `json:"added"`
	Removed  []LineDelta   `json:"removed"`
}

// Empty reports whether the diff found no differences at all.
func (d *DiffReport) Empty() bool {
	return len(d.Modified) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// DeltaSum returns the sum of all added and removed quantities. For any
// snapshot pair this equals totalQty(after) - totalQty(before).
func (d *DiffReport) DeltaSum() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range d.Added {
		sum = sum.Add(a.Delta)
	}
	for _, r := range d.Removed {
		sum = sum.Add(r.Delta)
	}
	return sum
}
