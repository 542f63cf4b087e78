package data

import (
	"encoding/json"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// BADGE ENTRIES - One record per attended calendar day
// =============================================================================

// BadgeEntry records attendance for a single calendar day. A flex credit
// counts toward the goal without physical presence; the classification is
// carried only by the flag, never inferred from the office label.
type BadgeEntry struct {
	Date       calendar.Date `json:"key"`
	Office     string        `json:"office"`
	BadgedIn   bool          `json:"is_badged_in"`
	FlexCredit bool          `json:"is_flex_credit"`
}

// Legacy files predate the is_badged_in flag: an absent key means the day
// was attended, so it defaults to true. is_flex_credit defaults to false.
func (e *BadgeEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date       calendar.Date `json:"key"`
		Office     string        `json:"office"`
		BadgedIn   *bool         `json:"is_badged_in"`
		FlexCredit bool          `json:"is_flex_credit"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Date = raw.Date
	e.Office = raw.Office
	e.FlexCredit = raw.FlexCredit
	e.BadgedIn = true
	if raw.BadgedIn != nil {
		e.BadgedIn = *raw.BadgedIn
	}
	return nil
}

// BadgeData is the owned attendance collection.
type BadgeData struct {
	Entries []BadgeEntry `json:"data"`
}

func (BadgeData) Filename() string   { return "badge_data.json" }
func (BadgeData) Encoding() Encoding { return EncodingJSON }

// Has reports whether an entry exists for the date.
func (b *BadgeData) Has(d calendar.Date) bool {
	_, ok := b.Get(d)
	return ok
}

// Get returns the entry for a date, if present.
func (b *BadgeData) Get(d calendar.Date) (BadgeEntry, bool) {
	for _, e := range b.Entries {
		if e.Date.Equal(d) {
			return e, true
		}
	}
	return BadgeEntry{}, false
}

// Add inserts or replaces the entry for its date.
func (b *BadgeData) Add(entry BadgeEntry) {
	for i, e := range b.Entries {
		if e.Date.Equal(entry.Date) {
			b.Entries[i] = entry
			return
		}
	}
	b.Entries = append(b.Entries, entry)
}

// Remove deletes the entry for a date if one exists.
func (b *BadgeData) Remove(d calendar.Date) {
	for i, e := range b.Entries {
		if e.Date.Equal(d) {
			b.Entries = append(b.Entries[:i], b.Entries[i+1:]...)
			return
		}
	}
}

// MapOver projects the entries within a period into a date-keyed map.
func (b *BadgeData) MapOver(p calendar.Period) map[calendar.Date]BadgeEntry {
	out := make(map[calendar.Date]BadgeEntry)
	for _, e := range b.Entries {
		if p.Contains(e.Date) {
			out[e.Date] = e
		}
	}
	return out
}

// Clone returns a deep copy. What-if simulation snapshots through this.
func (b *BadgeData) Clone() BadgeData {
	out := BadgeData{Entries: make([]BadgeEntry, len(b.Entries))}
	copy(out.Entries, b.Entries)
	return out
}
