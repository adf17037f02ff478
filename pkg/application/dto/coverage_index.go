package dto

import (
	"github.com/rentalops/rentcore/pkg/domain/entities"
)

// Window bounds a coverage query to a date range, ISO dates inclusive.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CoverageIndex is a read-only projection over a set of events for a date
// window, rebuilt from scratch on every input change.
//
// ByStartDate maps each ISO date to the events starting on it, ordered by
// location slot. ByCoveredDate maps each ISO date to the events whose span
// contains it without starting on it, in input order. The index is purely
// descriptive: double-booking of a (date, location) pair shows up as bucket
// length, it is not rejected here.
type CoverageIndex struct {
	Window        Window                             `json:"window"`
	ByStartDate   map[string][]entities.CalendarEvent `json:"by_start_date"`
	ByCoveredDate map[string][]entities.CalendarEvent `json:"by_covered_date"`
}

// StartsOn returns the events starting on the given ISO date.
func (c *CoverageIndex) StartsOn(date string) []entities.CalendarEvent {
	return c.ByStartDate[date]
}

// CoveredOn returns the multi-day events covering the given ISO date
// without starting on it.
func (c *CoverageIndex) CoveredOn(date string) []entities.CalendarEvent {
	return c.ByCoveredDate[date]
}
