package normalize

import (
	"github.com/rentalops/rentcore/pkg/domain/entities"
)

var (
	eventTitleKeys = []string{"titolo", "title"}
	eventStartKeys = []string{"data_evento_da", "data_evento", "start_date"}
	eventEndKeys   = []string{"data_evento_a", "end_date"}
	clientNameKeys = []string{"cliente_nome", "client_name"}
)

// CalendarEvent converts one raw month-listing record into a canonical
// CalendarEvent with the same tolerance discipline as Snapshot. The start
// date prefers the explicit interval start when the record carries one.
func CalendarEvent(raw map[string]any) entities.CalendarEvent {
	if raw == nil {
		return entities.CalendarEvent{}
	}
	ev := entities.CalendarEvent{
		ID:             ToInt64(raw["id"]),
		LifecycleState: entities.ParseLifecycleState(ToString(raw["stato"])),
		OfferState:     entities.ParseOfferState(ToString(raw["offerta_stato"])),
		BalanceState:   entities.ParsePayState(ToString(raw["saldo_state"])),
	}
	if v, ok := pick(raw, eventTitleKeys...); ok {
		ev.Title = ToString(v)
	}
	if v, ok := pick(raw, clientNameKeys...); ok {
		ev.ClientName = ToString(v)
	}
	if v, ok := pick(raw, locationKeys...); ok {
		ev.Location = int(ToInt64(v))
	}
	if v, ok := pick(raw, eventStartKeys...); ok {
		ev.StartDate = ToString(v)
	}
	if v, ok := pick(raw, eventEndKeys...); ok {
		ev.EndDate = ToString(v)
	}
	if ev.EndDate == ev.StartDate {
		ev.EndDate = ""
	}
	return ev
}

// MonthEvents normalizes a month listing response, bare array or wrapped.
func MonthEvents(data any) []entities.CalendarEvent {
	raw := asList(data)
	if raw == nil {
		if m := asMap(data); m != nil {
			if v, ok := pick(m, "results", "items", "eventi"); ok {
				raw = asList(v)
			}
		}
	}
	events := make([]entities.CalendarEvent, 0, len(raw))
	for _, r := range raw {
		if m := asMap(r); m != nil {
			events = append(events, CalendarEvent(m))
		}
	}
	return events
}
