package track

import (
	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
)

// =============================================================================
// YEAR AGGREGATION
// =============================================================================

// CalculateYear evaluates the union of every configured quarter whose
// year label matches: minimal start to maximal end, one calculation.
// Returns false when no quarter carries that year label.
func CalculateYear(cfg *data.Config, year string, holidays *data.HolidayData, vacations *data.VacationData, attendance *data.BadgeData, today calendar.Date) (QuarterStats, bool) {
	quarters := cfg.ForYear(year)
	if len(quarters) == 0 {
		return QuarterStats{}, false
	}

	span := quarters[0].Period()
	for _, q := range quarters[1:] {
		span = span.Union(q.Period())
	}

	stats := Calculate(Input{
		Key:        "YEAR_" + year,
		Label:      year,
		Period:     span,
		Holidays:   holidays,
		Vacations:  vacations,
		Attendance: attendance,
		Today:      today,
	})
	return stats, true
}
