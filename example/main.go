package main

import (
	"fmt"
	"os"

	"github.com/rentalops/rentcore/pkg/application/services/diff"
	"github.com/rentalops/rentcore/pkg/infrastructure/normalize"
	"github.com/rentalops/rentcore/pkg/infrastructure/revisions"
	"github.com/rentalops/rentcore/pkg/interfaces/cli/output"
)

// Demonstrates the full path from stored revisions to a rendered diff
// without any external API: append two revisions of a quote to the
// in-memory store, normalize the raw listing and compare.
func main() {
	store := revisions.NewInMemoryStore()

	const eventID = 42

	store.Append(eventID, map[string]any{
		"stato":          "bozza",
		"location_index": 3,
		"righe": []any{
			map[string]any{"materiale_id": 7, "nome": "Cassa 500W", "qta": 2, "prezzo": "45,00"},
			map[string]any{"materiale_id": 12, "nome": "Tecnico audio", "qta": 4, "prezzo": 35, "is_tecnico": true},
		},
	})

	store.Append(eventID, map[string]any{
		"stato":          "confermato",
		"location_index": 3,
		"righe": []any{
			map[string]any{"materiale_id": 7, "nome": "Cassa 500W", "qta": 2, "prezzo": "48,00"},
			map[string]any{"materiale_id": 12, "nome": "Tecnico audio", "qta": 4, "prezzo": 35, "is_tecnico": true},
			map[string]any{"materiale_id": 31, "nome": "Mixer 12ch", "qta": 1, "prezzo": 25},
		},
	})

	snaps := normalize.Revisions(store.RawList(eventID))
	if len(snaps) < 2 {
		fmt.Fprintln(os.Stderr, "expected two revisions")
		os.Exit(1)
	}

	before, after := &snaps[0], &snaps[1]
	fmt.Printf("Evento %d: ref%d → ref%d (totale %s → %s)\n\n",
		eventID, before.Ref, after.Ref, before.Total().StringFixed(2), after.Total().StringFixed(2))

	report := diff.NewService().Compare(before, after)
	output.RenderDiff(os.Stdout, report)
}
