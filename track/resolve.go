/*
Package track is the compliance calculation engine.

PURPOSE:
  Resolves quarter boundaries, attendance records, company holidays and
  approved vacations into per-day status flags, and from those derives
  the full set of attendance-goal metrics for a quarter or a year.

KEY CONCEPTS:
  - Workday: a weekday that is neither a holiday nor an approved
    vacation day. The 50% goal is evaluated against workdays only.
  - Resolution: the per-day flag record, computed fresh on every
    calculation and embedded in the result so renderers never have to
    re-derive it.
  - Pace: the badge-in count expected at "today" if the goal is hit
    exactly on schedule.

USAGE:
  stats := track.Calculate(track.Input{
      Quarter:    q,
      Holidays:   &holidays,
      Vacations:  &vacations,
      Attendance: &badges,
      Today:      calendar.Today(),
  })

All functions are pure: no clock access when Today is supplied, no I/O,
no mutation of the input collections.
*/
package track

import (
	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
)

// =============================================================================
// DAY RESOLUTION
// =============================================================================

// DayResolution carries the independent status flags for one calendar day.
type DayResolution struct {
	IsWeekday    bool
	IsHoliday    bool
	IsVacation   bool // approved vacations only
	IsBadgedIn   bool
	IsFlexCredit bool
	IsWorkday    bool // weekday and not holiday and not vacation
}

// Resolve computes the per-day resolution for every date in the period,
// inclusive. An inverted period yields an empty map. Matching against the
// three collections is by exact calendar-date equality.
func Resolve(p calendar.Period, holidays *data.HolidayData, vacations *data.VacationData, attendance *data.BadgeData) map[calendar.Date]DayResolution {
	out := make(map[calendar.Date]DayResolution)
	if !p.Valid() {
		return out
	}

	holidayMap := holidays.Map()
	vacationMap := vacations.ApprovedMap(p)
	badgeMap := attendance.MapOver(p)

	p.Each(func(d calendar.Date) {
		res := DayResolution{IsWeekday: d.IsWeekday()}
		if _, ok := holidayMap[d]; ok {
			res.IsHoliday = true
		}
		if _, ok := vacationMap[d]; ok {
			res.IsVacation = true
		}
		if e, ok := badgeMap[d]; ok {
			res.IsBadgedIn = e.BadgedIn
			res.IsFlexCredit = e.FlexCredit
		}
		res.IsWorkday = res.IsWeekday && !res.IsHoliday && !res.IsVacation
		out[d] = res
	})
	return out
}
