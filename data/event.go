package data

import (
	"sort"
	"strings"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// EVENTS - Free-form notes attached to calendar days
// =============================================================================

type Event struct {
	Date        calendar.Date `json:"date"`
	Description string        `json:"description"`
}

type EventData struct {
	Events []Event `json:"data"`
}

func (EventData) Filename() string   { return "events.json" }
func (EventData) Encoding() Encoding { return EncodingJSON }

// Add appends an event and keeps the collection sorted by date.
func (ed *EventData) Add(e Event) {
	ed.Events = append(ed.Events, e)
	sort.SliceStable(ed.Events, func(i, j int) bool {
		return ed.Events[i].Date.Before(ed.Events[j].Date)
	})
}

// Remove deletes the first event matching both date and description.
// A stale target is a no-op.
func (ed *EventData) Remove(d calendar.Date, description string) {
	for i, e := range ed.Events {
		if e.Date.Equal(d) && e.Description == description {
			ed.Events = append(ed.Events[:i], ed.Events[i+1:]...)
			return
		}
	}
}

// For returns the events on a single date, in stored order.
func (ed *EventData) For(d calendar.Date) []Event {
	var out []Event
	for _, e := range ed.Events {
		if e.Date.Equal(d) {
			out = append(out, e)
		}
	}
	return out
}

// MapOver groups the events within a period by date.
func (ed *EventData) MapOver(p calendar.Period) map[calendar.Date][]Event {
	out := make(map[calendar.Date][]Event)
	for _, e := range ed.Events {
		if p.Contains(e.Date) {
			out[e.Date] = append(out[e.Date], e)
		}
	}
	return out
}

// Search returns events whose description or date string contains the
// query, case-insensitively. An empty query matches nothing.
func (ed *EventData) Search(query string) []Event {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []Event
	for _, e := range ed.Events {
		if strings.Contains(strings.ToLower(e.Description), q) || strings.Contains(e.Date.String(), q) {
			out = append(out, e)
		}
	}
	return out
}
