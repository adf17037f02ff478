package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalops/rentcore/pkg/domain/entities"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestSnapshot_ModernShape(t *testing.T) {
	raw := decode(t, `{
		"ref": 9,
		"created_at": "2024-03-01T10:00:00Z",
		"payload": {
			"stato": "confermato",
			"offerta_stato": "inviato",
			"acconto_state": "sent",
			"saldo_state": "paid",
			"location_index": 4,
			"righe": [
				{"materiale_id": 7, "nome": "Cassa 500W", "qta": 2, "prezzo": 45.5, "is_tecnico": false, "categoria": "audio"},
				{"materiale_id": 12, "nome": "Tecnico", "qta": 4, "prezzo": 35, "is_tecnico": true}
			]
		}
	}`)

	snap := Snapshot(raw.(map[string]any), 0)

	assert.Equal(t, int64(9), snap.Ref)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), snap.CreatedAt)
	require.NotNil(t, snap.Location)
	assert.Equal(t, 4, *snap.Location)
	assert.Equal(t, entities.Confirmed, snap.LifecycleState)
	assert.Equal(t, entities.OfferSent, snap.OfferState)
	assert.Equal(t, entities.PaySent, snap.DepositState)
	assert.Equal(t, entities.PayPaid, snap.BalanceState)

	require.Len(t, snap.Lines, 2)
	assert.Equal(t, int64(7), snap.Lines[0].ItemID)
	assert.True(t, snap.Lines[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, snap.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(45.5)))
	assert.Equal(t, "audio", snap.Lines[0].Category)
	assert.True(t, snap.Lines[1].IsLabor)
}

func TestSnapshot_LegacyShapeVariants(t *testing.T) {
	// id instead of ref, timestamp instead of created_at, data wrapper,
	// lines instead of righe, alternate line keys, comma decimal string.
	raw := decode(t, `{
		"id": 5,
		"timestamp": "2024-02-01 09:00:00",
		"data": {
			"stato": "bozza",
			"location": 2,
			"lines": [
				{"item_id": "7", "label": "Cassa", "qty": "2", "unit_price": "12,50", "is_messo": true}
			]
		}
	}`)

	snap := Snapshot(raw.(map[string]any), 3)

	assert.Equal(t, int64(5), snap.Ref)
	assert.Equal(t, entities.Draft, snap.LifecycleState)
	require.NotNil(t, snap.Location)
	assert.Equal(t, 2, *snap.Location)

	require.Len(t, snap.Lines, 1)
	l := snap.Lines[0]
	assert.Equal(t, int64(7), l.ItemID)
	assert.Equal(t, "Cassa", l.Name)
	assert.True(t, l.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, l.UnitPrice.Equal(decimal.NewFromFloat(12.5)), "comma decimal must parse, got %s", l.UnitPrice)
	assert.True(t, l.IsTransport)
}

func TestSnapshot_RefFallsBackToPosition(t *testing.T) {
	snap := Snapshot(map[string]any{}, 4)
	assert.Equal(t, int64(5), snap.Ref, "ref must fall back to index+1")
	assert.False(t, snap.CreatedAt.IsZero(), "missing timestamp must fall back to now")
	assert.WithinDuration(t, time.Now(), snap.CreatedAt, time.Minute)
}

func TestSnapshot_DropsLinesWithoutIdentity(t *testing.T) {
	raw := decode(t, `{
		"ref": 1,
		"created_at": "2024-03-01T10:00:00Z",
		"righe": [
			{"nome": "senza identita", "qta": 3, "prezzo": 10},
			{"materiale_id": 9, "qta": 1}
		]
	}`)

	snap := Snapshot(raw.(map[string]any), 0)

	require.Len(t, snap.Lines, 1, "line without item identity must be dropped, not erred")
	assert.Equal(t, int64(9), snap.Lines[0].ItemID)
	assert.True(t, snap.Lines[0].UnitPrice.Equal(decimal.Zero), "missing price defaults to zero")
	assert.Equal(t, "#9", snap.Lines[0].DisplayName())
}

func TestRevisions_SortsByTimestampThenRef(t *testing.T) {
	raw := decode(t, `[
		{"ref": 2, "created_at": "2024-03-02T10:00:00Z"},
		{"ref": 3, "created_at": "2024-03-01T10:00:00Z"},
		{"ref": 1, "created_at": "2024-03-01T10:00:00Z"}
	]`)

	snaps := Revisions(raw)

	require.Len(t, snaps, 3)
	refs := []int64{snaps[0].Ref, snaps[1].Ref, snaps[2].Ref}
	assert.Equal(t, []int64{1, 3, 2}, refs, "equal timestamps tie-break on ref")
}

func TestRevisions_UnwrapsResultEnvelopes(t *testing.T) {
	wrapped := decode(t, `{"results": [{"ref": 1, "created_at": "2024-03-01T10:00:00Z"}]}`)
	assert.Len(t, Revisions(wrapped), 1)

	items := decode(t, `{"items": [{"ref": 1, "created_at": "2024-03-01T10:00:00Z"}]}`)
	assert.Len(t, Revisions(items), 1)

	assert.Empty(t, Revisions(decode(t, `{"detail": "no list here"}`)))
	assert.Empty(t, Revisions(nil))
}

func TestCalendarEvent_Normalization(t *testing.T) {
	raw := decode(t, `{
		"id": 11,
		"titolo": "Matrimonio Rossi",
		"data_evento": "2024-03-10",
		"data_evento_da": "2024-03-10",
		"data_evento_a": "2024-03-12",
		"location_index": 4,
		"stato": "confermato",
		"saldo_state": "paid",
		"cliente_nome": "Rossi"
	}`)

	ev := CalendarEvent(raw.(map[string]any))

	assert.Equal(t, int64(11), ev.ID)
	assert.Equal(t, "Matrimonio Rossi", ev.Title)
	assert.Equal(t, "2024-03-10", ev.StartDate)
	assert.Equal(t, "2024-03-12", ev.EndDate)
	assert.Equal(t, 4, ev.Location)
	assert.Equal(t, entities.Confirmed, ev.LifecycleState)
	assert.Equal(t, entities.PayPaid, ev.BalanceState)
	assert.True(t, ev.MultiDay())
}

func TestCalendarEvent_SingleDayCollapsesEnd(t *testing.T) {
	raw := decode(t, `{"id": 1, "data_evento": "2024-03-10", "data_evento_a": "2024-03-10", "location_index": 1}`)
	ev := CalendarEvent(raw.(map[string]any))
	assert.Empty(t, ev.EndDate, "end equal to start must collapse to single-day")
	assert.False(t, ev.MultiDay())
}

func TestToDecimal(t *testing.T) {
	assert.True(t, ToDecimal("12,50").Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, ToDecimal(" 1 200,5 ").Equal(decimal.NewFromFloat(1200.5)))
	assert.True(t, ToDecimal(3.25).Equal(decimal.NewFromFloat(3.25)))
	assert.True(t, ToDecimal(nil).Equal(decimal.Zero))
	assert.True(t, ToDecimal("garbage").Equal(decimal.Zero))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(float64(1)))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("1"))
	assert.False(t, ToBool(float64(0)))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
