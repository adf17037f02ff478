package diff

import (
	"github.com/shopspring/decimal"

	"github.com/rentalops/rentcore/pkg/domain/entities"
)

// IdentityMode selects the line-identity key used when aggregating raw
// lines. Historically call sites diverged silently between the two
// conventions; the mode is an explicit configuration here so the choice is
// auditable.
type IdentityMode int

const (
	// IdentityByItem keys lines on the catalog item alone. Two raw lines
	// for the same item at different recorded prices are summed into one
	// aggregated line, and a price difference between snapshots surfaces
	// as a qualitative change.
	IdentityByItem IdentityMode = iota
	// IdentityByItemAndPrice keys lines on item plus unit price. Under
	// this legacy convention a repriced line is reported as a removal and
	// an addition rather than a qualitative change.
	IdentityByItemAndPrice
)

// String method for IdentityMode enum
func (m IdentityMode) String() string {
	switch m {
	case IdentityByItem:
		return "item"
	case IdentityByItemAndPrice:
		return "item@price"
	default:
		return "unknown"
	}
}

// lineKey identifies one aggregated entry. Price participates only under
// IdentityByItemAndPrice and is the decimal's canonical string so that
// 10 and 10.00 collide as they should.
type lineKey struct {
	itemID int64
	price  string
}

// AggregatedLine is one entry per distinct rentable item within a snapshot:
// the summed quantity plus the first-seen line's metadata. Within one
// snapshot the same item should carry consistent metadata; divergence is
// out of contract.
type AggregatedLine struct {
	ItemID      int64
	Name        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Category    string
	Subcategory string
	IsLabor     bool
	IsTransport bool
}

// AggregateLines collapses a snapshot's raw lines into one entry per
// identity key, summing quantities. Total quantity per item is conserved
// and the output never exceeds the input in size.
func AggregateLines(lines []entities.LineItem, mode IdentityMode) map[lineKey]*AggregatedLine {
	agg := make(map[lineKey]*AggregatedLine, len(lines))
	for _, l := range lines {
		key := lineKey{itemID: l.ItemID}
		if mode == IdentityByItemAndPrice {
			key.price = l.UnitPrice.String()
		}
		if cur, ok := agg[key]; ok {
			cur.Quantity = cur.Quantity.Add(l.Quantity)
			continue
		}
		agg[key] = &AggregatedLine{
			ItemID:      l.ItemID,
			Name:        l.DisplayName(),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Category:    l.Category,
			Subcategory: l.Subcategory,
			IsLabor:     l.IsLabor,
			IsTransport: l.IsTransport,
		}
	}
	return agg
}
