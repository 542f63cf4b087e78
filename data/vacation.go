package data

import "github.com/warp/attendance-engine/calendar"

// =============================================================================
// VACATIONS - Inclusive date ranges with an approval gate
// =============================================================================

// Vacation is a planned absence. Unapproved vacations are stored and
// listed but never counted as days off by the compliance engine.
type Vacation struct {
	Destination string        `yaml:"destination"`
	Start       calendar.Date `yaml:"start_date"`
	End         calendar.Date `yaml:"end_date"`
	Approved    bool          `yaml:"approved"`
}

// Period returns the vacation's inclusive date range.
func (v Vacation) Period() calendar.Period {
	return calendar.Period{Start: v.Start, End: v.End}
}

type VacationData struct {
	Vacations []Vacation `yaml:"vacations"`
}

func (VacationData) Filename() string   { return "vacations.yaml" }
func (VacationData) Encoding() Encoding { return EncodingYAML }

func (vd *VacationData) Add(v Vacation) {
	vd.Vacations = append(vd.Vacations, v)
}

// Replace overwrites the vacation at index i; out-of-range is a no-op.
func (vd *VacationData) Replace(i int, v Vacation) {
	if i < 0 || i >= len(vd.Vacations) {
		return
	}
	vd.Vacations[i] = v
}

// RemoveAt deletes by index; out-of-range is a no-op.
func (vd *VacationData) RemoveAt(i int) {
	if i < 0 || i >= len(vd.Vacations) {
		return
	}
	vd.Vacations = append(vd.Vacations[:i], vd.Vacations[i+1:]...)
}

// ApprovedMap expands every approved vacation into a per-day map over the
// given period. Unapproved records are skipped entirely.
func (vd *VacationData) ApprovedMap(p calendar.Period) map[calendar.Date]Vacation {
	out := make(map[calendar.Date]Vacation)
	for _, v := range vd.Vacations {
		if !v.Approved {
			continue
		}
		v.Period().Each(func(d calendar.Date) {
			if p.Contains(d) {
				out[d] = v
			}
		})
	}
	return out
}
