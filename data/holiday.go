package data

import "github.com/warp/attendance-engine/calendar"

// =============================================================================
// HOLIDAYS - Company holidays, one per calendar day
// =============================================================================

type Holiday struct {
	Name string        `yaml:"name"`
	Date calendar.Date `yaml:"date"`
}

type HolidayData struct {
	Holidays []Holiday `yaml:"holidays"`
}

func (HolidayData) Filename() string   { return "holidays.yaml" }
func (HolidayData) Encoding() Encoding { return EncodingYAML }

// Add inserts or replaces the holiday for its date.
func (hd *HolidayData) Add(h Holiday) {
	for i, existing := range hd.Holidays {
		if existing.Date.Equal(h.Date) {
			hd.Holidays[i] = h
			return
		}
	}
	hd.Holidays = append(hd.Holidays, h)
}

// RemoveAt deletes by index; out-of-range is a no-op.
func (hd *HolidayData) RemoveAt(i int) {
	if i < 0 || i >= len(hd.Holidays) {
		return
	}
	hd.Holidays = append(hd.Holidays[:i], hd.Holidays[i+1:]...)
}

// Map keys the holidays by date.
func (hd *HolidayData) Map() map[calendar.Date]Holiday {
	out := make(map[calendar.Date]Holiday, len(hd.Holidays))
	for _, h := range hd.Holidays {
		out[h.Date] = h
	}
	return out
}

// CountIn returns how many holidays fall inside the period.
func (hd *HolidayData) CountIn(p calendar.Period) int {
	n := 0
	for _, h := range hd.Holidays {
		if p.Contains(h.Date) {
			n++
		}
	}
	return n
}
