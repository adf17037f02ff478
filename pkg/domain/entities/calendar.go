package entities

// CalendarEvent represents one event as returned by the month listing,
// carrying just what the calendar and list views need. StartDate and EndDate
// are ISO YYYY-MM-DD strings, which order lexicographically.
type CalendarEvent struct {
	ID             int64
	Title          string
	StartDate      string
	EndDate        string // empty = single-day event
	Location       int
	LifecycleState LifecycleState
	OfferState     OfferState
	BalanceState   PayState
	ClientName     string
}

// EffectiveEnd returns the end date, falling back to the start date for
// events without an explicit end.
func (e CalendarEvent) EffectiveEnd() string {
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.StartDate
}

// MultiDay reports whether the event spans more than one calendar day.
func (e CalendarEvent) MultiDay() bool {
	return e.EffectiveEnd() != e.StartDate
}
