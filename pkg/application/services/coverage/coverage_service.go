package coverage

import (
	"sort"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/domain/entities"
	"github.com/rentalops/rentcore/pkg/domain/services"
)

// Service builds day-to-event lookup tables for calendar rendering and
// overlap inspection. It is stateless; every call produces a fresh index
// and never mutates its inputs.
type Service struct{}

// NewService creates a coverage service.
func NewService() *Service {
	return &Service{}
}

// Index projects the events onto the window's calendar days.
//
// Every event registers exactly once in ByStartDate under its start date.
// A multi-day event additionally registers in ByCoveredDate for each day of
// its span except the start day, so an event spanning k days lands in k-1
// covered buckets and a single-day event in none. The covered walk is clamped
// to the window, so damaged end dates far in the future stay bounded. Start
// buckets are ordered by location slot, covered buckets keep input order.
func (s *Service) Index(events []entities.CalendarEvent, window dto.Window) *dto.CoverageIndex {
	idx := &dto.CoverageIndex{
		Window:        window,
		ByStartDate:   make(map[string][]entities.CalendarEvent),
		ByCoveredDate: make(map[string][]entities.CalendarEvent),
	}

	for _, ev := range events {
		start, end := services.EffectiveInterval(ev.StartDate, ev.EndDate)
		idx.ByStartDate[start] = append(idx.ByStartDate[start], ev)

		if start == end {
			continue
		}
		if window.To != "" && end > window.To {
			end = window.To
		}
		for _, day := range services.DaysBetween(start, end) {
			if day == start || (window.From != "" && day < window.From) {
				continue
			}
			idx.ByCoveredDate[day] = append(idx.ByCoveredDate[day], ev)
		}
	}

	for _, bucket := range idx.ByStartDate {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Location < bucket[j].Location
		})
	}

	return idx
}

// Days lists the window's ISO dates in order, for grid rendering.
func (s *Service) Days(window dto.Window) []string {
	return services.DaysBetween(window.From, window.To)
}
