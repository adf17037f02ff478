package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/domain/entities"
)

var (
	addedColor    = color.New(color.FgGreen).SprintFunc()
	removedColor  = color.New(color.FgRed).SprintFunc()
	modifiedColor = color.New(color.FgYellow).SprintFunc()
)

// RenderDiff writes a diff report as terminal tables, one section per
// change class.
func RenderDiff(w io.Writer, report *dto.DiffReport) {
	if report.Empty() {
		fmt.Fprintln(w, "Nessuna differenza.")
		return
	}

	if len(report.Modified) > 0 {
		fmt.Fprintln(w, modifiedColor("MODIFICATI"))
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Campo", "Prima", "Dopo"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		for _, m := range report.Modified {
			table.Append([]string{m.Field, m.Before, m.After})
		}
		table.Render()
	}

	if len(report.Added) > 0 {
		fmt.Fprintln(w, addedColor("AGGIUNTI"))
		renderDeltas(w, report.Added)
	}

	if len(report.Removed) > 0 {
		fmt.Fprintln(w, removedColor("RIMOSSI"))
		renderDeltas(w, report.Removed)
	}
}

func renderDeltas(w io.Writer, deltas []dto.LineDelta) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Articolo", "Delta", "PU"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, d := range deltas {
		delta := d.Delta.String()
		if d.Delta.IsPositive() {
			delta = "+" + delta
		}
		table.Append([]string{d.Name, delta, d.UnitPrice.StringFixed(2)})
	}
	table.Render()
}

// RenderMonth writes the coverage index as a day-per-row grid: events
// starting on the day, then multi-day coverage markers.
func RenderMonth(w io.Writer, idx *dto.CoverageIndex, days []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Giorno", "Eventi", "Copertura"})
	table.SetAutoWrapText(false)

	for _, day := range days {
		var starts []string
		for _, ev := range idx.StartsOn(day) {
			starts = append(starts, eventLabel(ev))
		}
		var covered []string
		for _, ev := range idx.CoveredOn(day) {
			covered = append(covered, eventLabel(ev))
		}
		table.Append([]string{day, strings.Join(starts, ", "), strings.Join(covered, ", ")})
	}
	table.Render()
}

func eventLabel(ev entities.CalendarEvent) string {
	label := fmt.Sprintf("L%d %s", ev.Location, ev.Title)
	switch ev.LifecycleState {
	case entities.Confirmed:
		return addedColor(label)
	case entities.Cancelled:
		return removedColor(label)
	default:
		return label
	}
}

// RenderStock writes one availability line with its colored level bucket.
func RenderStock(w io.Writer, materialID int64, scorta, prenotato, disponibile int64, level entities.StockLevel) {
	var paint func(a ...interface{}) string
	switch level {
	case entities.StockOK:
		paint = addedColor
	case entities.StockLow:
		paint = modifiedColor
	default:
		paint = removedColor
	}
	fmt.Fprintf(w, "materiale %d: scorta=%d prenotato=%d disponibile=%d  %s\n",
		materialID, scorta, prenotato, disponibile, paint(strings.ToUpper(level.String())))
}
