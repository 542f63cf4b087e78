package calendar

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days. Quarters and
// year aggregates are both expressed as periods; compliance is ALWAYS
// computed for a period, not at a point in time.
type Period struct {
	Start Date
	End   Date
}

// Valid reports whether the range is well formed (End not before Start).
func (p Period) Valid() bool {
	return !p.End.Before(p.Start)
}

// Contains returns true if the date is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns the count of calendar days in the period, inclusive.
// An inverted period has zero days.
func (p Period) Days() int {
	if !p.Valid() {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Each visits every day of the period in order.
func (p Period) Each(fn func(Date)) {
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		fn(d)
	}
}

// Union returns the smallest period covering both operands.
func (p Period) Union(other Period) Period {
	out := p
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
