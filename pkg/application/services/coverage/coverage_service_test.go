package coverage

import (
	"testing"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/domain/entities"
	"github.com/rentalops/rentcore/pkg/domain/services"
)

var marchWindow = dto.Window{From: "2024-03-01", To: "2024-03-31"}

func event(id int64, start, end string, location int) entities.CalendarEvent {
	return entities.CalendarEvent{
		ID:        id,
		Title:     "Evento",
		StartDate: start,
		EndDate:   end,
		Location:  location,
	}
}

func TestIndex_MultiDayCoverage(t *testing.T) {
	events := []entities.CalendarEvent{
		event(1, "2024-03-10", "2024-03-12", 4),
	}

	idx := NewService().Index(events, marchWindow)

	if starts := idx.StartsOn("2024-03-10"); len(starts) != 1 || starts[0].ID != 1 {
		t.Errorf("expected event 1 to start on 2024-03-10, got %+v", starts)
	}
	if len(idx.StartsOn("2024-03-11")) != 0 {
		t.Error("covered day must not appear as a start day")
	}
	for _, day := range []string{"2024-03-11", "2024-03-12"} {
		if covered := idx.CoveredOn(day); len(covered) != 1 || covered[0].ID != 1 {
			t.Errorf("expected event 1 to cover %s, got %+v", day, covered)
		}
	}
	if len(idx.CoveredOn("2024-03-10")) != 0 {
		t.Error("start day must never be a covered day")
	}
}

func TestIndex_SingleDayEventsNeverCover(t *testing.T) {
	events := []entities.CalendarEvent{
		event(1, "2024-03-10", "", 1),
		event(2, "2024-03-11", "2024-03-11", 2),
	}

	idx := NewService().Index(events, marchWindow)

	if len(idx.ByCoveredDate) != 0 {
		t.Errorf("single-day events produced coverage: %+v", idx.ByCoveredDate)
	}
	if len(idx.StartsOn("2024-03-10")) != 1 || len(idx.StartsOn("2024-03-11")) != 1 {
		t.Error("each event must register once under its start date")
	}
}

func TestIndex_Completeness(t *testing.T) {
	events := []entities.CalendarEvent{
		event(1, "2024-03-10", "2024-03-14", 3), // 5 days
		event(2, "2024-03-10", "", 1),
		event(3, "2024-03-20", "2024-03-21", 5), // 2 days
	}

	idx := NewService().Index(events, marchWindow)

	startCount := map[int64]int{}
	for _, bucket := range idx.ByStartDate {
		for _, ev := range bucket {
			startCount[ev.ID]++
		}
	}
	coveredCount := map[int64]int{}
	for _, bucket := range idx.ByCoveredDate {
		for _, ev := range bucket {
			coveredCount[ev.ID]++
		}
	}

	for _, ev := range events {
		if startCount[ev.ID] != 1 {
			t.Errorf("event %d in %d start buckets, want 1", ev.ID, startCount[ev.ID])
		}
		wantCovered := services.DurationDays(ev.StartDate, ev.EndDate) - 1
		if coveredCount[ev.ID] != wantCovered {
			t.Errorf("event %d in %d covered buckets, want %d", ev.ID, coveredCount[ev.ID], wantCovered)
		}
	}
}

func TestIndex_StartBucketsOrderedByLocation(t *testing.T) {
	events := []entities.CalendarEvent{
		event(1, "2024-03-10", "", 6),
		event(2, "2024-03-10", "", 2),
		event(3, "2024-03-10", "", 4),
	}

	idx := NewService().Index(events, marchWindow)

	starts := idx.StartsOn("2024-03-10")
	if len(starts) != 3 {
		t.Fatalf("expected 3 events, got %d", len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if starts[i-1].Location > starts[i].Location {
			t.Errorf("start bucket not ordered by location: %+v", starts)
		}
	}
}

func TestIndex_CoveredBucketsKeepInputOrder(t *testing.T) {
	events := []entities.CalendarEvent{
		event(9, "2024-03-10", "2024-03-11", 8),
		event(4, "2024-03-10", "2024-03-11", 1),
	}

	idx := NewService().Index(events, marchWindow)

	covered := idx.CoveredOn("2024-03-11")
	if len(covered) != 2 || covered[0].ID != 9 || covered[1].ID != 4 {
		t.Errorf("covered bucket must keep input order, got %+v", covered)
	}
}

func TestIndex_CoverageClampedToWindow(t *testing.T) {
	events := []entities.CalendarEvent{
		event(1, "2024-03-30", "2999-12-31", 2), // damaged end date
		event(2, "2024-02-28", "2024-03-02", 3), // starts before the window
	}

	idx := NewService().Index(events, marchWindow)

	if len(idx.CoveredOn("2024-03-31")) != 1 {
		t.Error("event 1 must cover the last window day")
	}
	for day := range idx.ByCoveredDate {
		if day < marchWindow.From || day > marchWindow.To {
			t.Errorf("covered bucket %s escapes the window", day)
		}
	}
	if covered := idx.CoveredOn("2024-03-01"); len(covered) != 1 || covered[0].ID != 2 {
		t.Errorf("event 2 must cover the in-window tail of its span, got %+v", covered)
	}
}

func TestDays(t *testing.T) {
	days := NewService().Days(dto.Window{From: "2024-03-01", To: "2024-03-03"})
	if len(days) != 3 || days[0] != "2024-03-01" || days[2] != "2024-03-03" {
		t.Errorf("unexpected window days: %v", days)
	}
}
