package diff

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/domain/entities"
)

// absentMarker is the shared sentinel for missing values, so that "no value"
// on both sides never registers as a change.
const absentMarker = "—"

// Config holds configuration for the diff service
type Config struct {
	// Identity selects the line aggregation key; IdentityByItem unless a
	// caller explicitly needs the legacy item@price convention.
	Identity IdentityMode
}

// Service computes structured differences between two snapshots of the same
// event. It is stateless and safe for concurrent use; Compare is a single
// pure computation over two fully-materialized snapshots and never mutates
// its inputs.
type Service struct {
	config Config
}

// NewService creates a diff service with the default item-identity key.
func NewService() *Service {
	return NewServiceWithConfig(Config{Identity: IdentityByItem})
}

// NewServiceWithConfig creates a diff service with custom configuration.
func NewServiceWithConfig(config Config) *Service {
	return &Service{config: config}
}

// trackedField is one top-level snapshot field the diff engine watches.
type trackedField struct {
	label string
	value func(*entities.Snapshot) string
}

// trackedFields is the fixed, finite list of top-level fields compared
// between snapshots. Labels match the back-office display language.
var trackedFields = []trackedField{
	{"location", func(s *entities.Snapshot) string {
		if s.Location == nil {
			return absentMarker
		}
		return fmt.Sprintf("%d", *s.Location)
	}},
	{"stato evento", func(s *entities.Snapshot) string {
		return stateOrAbsent(s.LifecycleState.String())
	}},
	{"stato offerta", func(s *entities.Snapshot) string {
		return stateOrAbsent(s.OfferState.String())
	}},
	{"stato acconto", func(s *entities.Snapshot) string {
		return stateOrAbsent(s.DepositState.String())
	}},
	{"stato saldo", func(s *entities.Snapshot) string {
		return stateOrAbsent(s.BalanceState.String())
	}},
}

func stateOrAbsent(v string) string {
	if v == "" {
		return absentMarker
	}
	return v
}

// Compare diffs two snapshots: top-level field changes, added and removed
// lines by aggregated quantity delta, and qualitative per-line changes
// where the quantity is unchanged but price, kind flags or classification
// differ. Comparing a snapshot with itself yields an empty report.
func (s *Service) Compare(before, after *entities.Snapshot) *dto.DiffReport {
	report := &dto.DiffReport{
		Modified: []dto.FieldChange{},
		Added:    []dto.LineDelta{},
		Removed:  []dto.LineDelta{},
	}

	for _, f := range trackedFields {
		a, b := f.value(before), f.value(after)
		if a != b {
			report.Modified = append(report.Modified, dto.FieldChange{Field: f.label, Before: a, After: b})
		}
	}

	a := AggregateLines(before.Lines, s.config.Identity)
	b := AggregateLines(after.Lines, s.config.Identity)

	keys := make(map[lineKey]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	for key := range keys {
		la, lb := a[key], b[key]

		qtyA := decimalOrZero(la)
		qtyB := decimalOrZero(lb)
		delta := qtyB.Sub(qtyA)

		switch {
		case delta.IsPositive():
			report.Added = append(report.Added, dto.LineDelta{
				ItemID:    key.itemID,
				Name:      lb.Name,
				Delta:     delta,
				UnitPrice: lb.UnitPrice,
			})
		case delta.IsNegative():
			report.Removed = append(report.Removed, dto.LineDelta{
				ItemID:    key.itemID,
				Name:      la.Name,
				Delta:     delta,
				UnitPrice: la.UnitPrice,
			})
		case la != nil && lb != nil:
			report.Modified = append(report.Modified, qualitativeChanges(la, lb)...)
		}
		// Both quantities zero with only one side present: degenerate,
		// nothing to report.
	}

	sort.Slice(report.Added, func(i, j int) bool { return report.Added[i].Name < report.Added[j].Name })
	sort.Slice(report.Removed, func(i, j int) bool { return report.Removed[i].Name < report.Removed[j].Name })
	sort.Slice(report.Modified, func(i, j int) bool { return report.Modified[i].Field < report.Modified[j].Field })

	return report
}

// qualitativeChanges compares two same-quantity aggregated lines attribute
// by attribute. Each inequality yields one entry labelled "<attr> @<name>".
func qualitativeChanges(before, after *AggregatedLine) []dto.FieldChange {
	var changes []dto.FieldChange
	add := func(attr, a, b string) {
		changes = append(changes, dto.FieldChange{
			Field:  fmt.Sprintf("%s @%s", attr, after.Name),
			Before: a,
			After:  b,
		})
	}

	if !before.UnitPrice.Equal(after.UnitPrice) {
		add("unitPrice", before.UnitPrice.String(), after.UnitPrice.String())
	}
	if before.IsLabor != after.IsLabor {
		add("isLabor", fmt.Sprintf("%t", before.IsLabor), fmt.Sprintf("%t", after.IsLabor))
	}
	if before.IsTransport != after.IsTransport {
		add("isTransport", fmt.Sprintf("%t", before.IsTransport), fmt.Sprintf("%t", after.IsTransport))
	}
	if before.Category != after.Category {
		add("category", stateOrAbsent(before.Category), stateOrAbsent(after.Category))
	}
	if before.Subcategory != after.Subcategory {
		add("subcategory", stateOrAbsent(before.Subcategory), stateOrAbsent(after.Subcategory))
	}
	return changes
}

func decimalOrZero(l *AggregatedLine) decimal.Decimal {
	if l == nil {
		return decimal.Zero
	}
	return l.Quantity
}
