package services

import "time"

const isoDate = "2006-01-02"

// EffectiveInterval normalizes an event's date pair: an event without an
// explicit end date is single-day.
func EffectiveInterval(start, end string) (string, string) {
	if end == "" {
		return start, start
	}
	return start, end
}

// DurationDays computes the inclusive day count spanned by [start, end].
// An inverted pair is upstream data damage, not a crash condition: the
// result is clamped to 1. Unparseable dates also resolve to 1.
func DurationDays(start, end string) int {
	start, end = EffectiveInterval(start, end)
	from, err := time.Parse(isoDate, start)
	if err != nil {
		return 1
	}
	to, err := time.Parse(isoDate, end)
	if err != nil {
		return 1
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DaysBetween returns every ISO date in [start, end] inclusive, in order.
// Returns nil when either bound fails to parse or the interval is inverted.
func DaysBetween(start, end string) []string {
	from, err := time.Parse(isoDate, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(isoDate, end)
	if err != nil || to.Before(from) {
		return nil
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(isoDate))
	}
	return days
}
