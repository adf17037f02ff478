package normalize

import (
	"sort"
	"time"

	"github.com/rentalops/rentcore/pkg/domain/entities"
)

// Historical endpoint variants disagree on field names; each list below is
// the ordered set of candidates probed for one canonical field.
var (
	refKeys       = []string{"ref", "id"}
	createdAtKeys = []string{"created_at", "timestamp", "date", "created"}
	payloadKeys   = []string{"payload", "data", "evento"}
	linesKeys     = []string{"righe", "lines", "items"}
	locationKeys  = []string{"location_index", "location"}

	lineItemIDKeys  = []string{"materiale_id", "materiale", "item_id", "id"}
	lineNameKeys    = []string{"nome", "label", "articolo", "name"}
	lineQtyKeys     = []string{"qta", "qty", "quantity"}
	linePriceKeys   = []string{"prezzo", "unit_price", "pu", "price"}
	lineLaborKeys   = []string{"is_tecnico", "is_labor"}
	lineVehicleKeys = []string{"is_trasporto", "is_messo", "is_transport"}
	lineCatKeys     = []string{"categoria", "category"}
	lineSubcatKeys  = []string{"sottocategoria", "subcategory"}
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(v any) (time.Time, bool) {
	s := ToString(v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Snapshot converts one raw revision record of unknown shape into a
// canonical Snapshot. index is the record's position in the source list and
// backs the ref fallback (index+1), so every produced snapshot has a
// non-zero ref even when the source omits one; if the source is
// inconsistent that fallback can collide with a real ref.
//
// Missing or unparseable timestamps fall back to the normalization
// wall-clock, which is a source-fidelity limitation: two such snapshots
// sort by fetch order, not true creation order.
func Snapshot(raw map[string]any, index int) entities.Snapshot {
	snap := entities.Snapshot{Ref: int64(index + 1)}
	if raw == nil {
		snap.CreatedAt = time.Now()
		return snap
	}

	if v, ok := pick(raw, refKeys...); ok {
		if ref := ToInt64(v); ref != 0 {
			snap.Ref = ref
		}
	}

	if v, ok := pick(raw, createdAtKeys...); ok {
		if t, ok := parseTime(v); ok {
			snap.CreatedAt = t
		}
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	// Some endpoints nest the event under a payload wrapper, some return
	// it inline.
	payload := raw
	if v, ok := pick(raw, payloadKeys...); ok {
		if m := asMap(v); m != nil {
			payload = m
		}
	}

	if v, ok := pick(payload, locationKeys...); ok {
		loc := int(ToInt64(v))
		if loc != 0 {
			snap.Location = &loc
		}
	}
	snap.LifecycleState = entities.ParseLifecycleState(ToString(payload["stato"]))
	snap.OfferState = entities.ParseOfferState(ToString(payload["offerta_stato"]))
	snap.DepositState = entities.ParsePayState(ToString(payload["acconto_state"]))
	snap.BalanceState = entities.ParsePayState(ToString(payload["saldo_state"]))

	if v, ok := pick(payload, linesKeys...); ok {
		for _, rawLine := range asList(v) {
			if line, ok := lineItem(asMap(rawLine)); ok {
				snap.Lines = append(snap.Lines, line)
			}
		}
	}

	return snap
}

// lineItem extracts one raw line. Lines without a resolvable item identity
// are dropped, not erred; every other field degrades to its zero value.
func lineItem(raw map[string]any) (entities.LineItem, bool) {
	if raw == nil {
		return entities.LineItem{}, false
	}
	v, ok := pick(raw, lineItemIDKeys...)
	if !ok {
		return entities.LineItem{}, false
	}
	itemID := ToInt64(v)
	if itemID == 0 {
		return entities.LineItem{}, false
	}

	line := entities.LineItem{ItemID: itemID}
	if v, ok := pick(raw, lineNameKeys...); ok {
		line.Name = ToString(v)
	}
	if v, ok := pick(raw, lineQtyKeys...); ok {
		line.Quantity = ToDecimal(v)
	}
	if v, ok := pick(raw, linePriceKeys...); ok {
		line.UnitPrice = ToDecimal(v)
	}
	if v, ok := pick(raw, lineCatKeys...); ok {
		line.Category = ToString(v)
	}
	if v, ok := pick(raw, lineSubcatKeys...); ok {
		line.Subcategory = ToString(v)
	}
	if v, ok := pick(raw, lineLaborKeys...); ok {
		line.IsLabor = ToBool(v)
	}
	for _, k := range lineVehicleKeys {
		if ToBool(raw[k]) {
			line.IsTransport = true
			break
		}
	}
	return line, true
}

// Revisions normalizes a heterogeneous revision listing: a bare array or a
// {results}/{items} wrapper, each record in any of the historical shapes.
// The result is sorted by createdAt ascending with ref ascending as the
// tie-break, so callers can treat the last element as the current state.
func Revisions(data any) []entities.Snapshot {
	raw := asList(data)
	if raw == nil {
		if m := asMap(data); m != nil {
			if v, ok := pick(m, "results", "items"); ok {
				raw = asList(v)
			}
		}
	}

	snaps := make([]entities.Snapshot, 0, len(raw))
	for i, r := range raw {
		snaps = append(snaps, Snapshot(asMap(r), i))
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
		}
		return snaps[i].Ref < snaps[j].Ref
	})
	return snaps
}
