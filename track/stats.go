package track

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
)

// =============================================================================
// STATUS - Four-way classification, evaluated in precedence order
// =============================================================================

type Status int

const (
	StatusOnTrack Status = iota
	StatusAtRisk
	StatusImpossible
	StatusAchieved
)

func (s Status) String() string {
	switch s {
	case StatusAchieved:
		return "Achieved"
	case StatusImpossible:
		return "Impossible"
	case StatusAtRisk:
		return "At Risk"
	default:
		return "On Track"
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Input bundles everything one calculation needs. Today defaults to the
// current calendar date when zero; tests supply it explicitly.
type Input struct {
	Key        string
	Label      string
	Period     calendar.Period
	Holidays   *data.HolidayData
	Vacations  *data.VacationData
	Attendance *data.BadgeData
	Today      calendar.Date
}

// QuarterStats is the full metrics record for one evaluated period.
// Counters are integers; rates are decimals. The per-day resolution map
// is always embedded.
type QuarterStats struct {
	Key    string
	Label  string
	Period calendar.Period

	TotalCalendarDays int
	AvailableWorkdays int // weekdays that are not holidays (vacations still count)
	TotalWorkdays     int // the 50% goal denominator
	GoalRequired      int

	DaysBadgedIn int
	OfficeDays   int
	FlexDays     int

	DaysThusFar     int
	DaysLeft        int
	DaysStillNeeded int

	ExpectedPace          int
	DaysAheadOfPace       int
	RemainingMissableDays int

	// CurrentRate is daysBadgedIn/daysThusFar; zero when no workday has
	// elapsed. RateNeeded is daysStillNeeded/daysLeft and is only
	// meaningful when RateNeededApplies.
	CurrentRate       decimal.Decimal
	RateNeeded        decimal.Decimal
	RateNeededApplies bool

	// ProjectedCompletion extrapolates the current rate over the
	// remaining workdays; nil when achieved, rateless, or out of days.
	ProjectedCompletion *calendar.Date

	HolidayCount int // holiday records inside the period
	VacationDays int // approved vacation days inside the period

	Status Status

	Days map[calendar.Date]DayResolution
}

// Calculate produces the metrics for one period against one reference
// "today". Division by zero is never a fault: every rate has a defined
// not-applicable form.
func Calculate(in Input) QuarterStats {
	today := in.Today
	if today.IsZero() {
		today = calendar.Today()
	}

	stats := QuarterStats{
		Key:    in.Key,
		Label:  in.Label,
		Period: in.Period,
		Days:   Resolve(in.Period, in.Holidays, in.Vacations, in.Attendance),
	}
	stats.TotalCalendarDays = in.Period.Days()

	for d, res := range stats.Days {
		if res.IsWeekday && !res.IsHoliday {
			stats.AvailableWorkdays++
		}
		if !res.IsWorkday {
			continue
		}
		stats.TotalWorkdays++
		if res.IsBadgedIn {
			stats.DaysBadgedIn++
			if res.IsFlexCredit {
				stats.FlexDays++
			}
		}
		if d.BeforeOrEqual(today) {
			stats.DaysThusFar++
		}
	}
	stats.OfficeDays = stats.DaysBadgedIn - stats.FlexDays
	stats.DaysLeft = stats.TotalWorkdays - stats.DaysThusFar

	// goal = ceil(totalWorkdays / 2) via integer arithmetic
	stats.GoalRequired = (stats.TotalWorkdays + 1) / 2

	stats.DaysStillNeeded = stats.GoalRequired - stats.DaysBadgedIn
	if stats.DaysStillNeeded < 0 {
		stats.DaysStillNeeded = 0
	}

	if stats.TotalWorkdays > 0 {
		stats.ExpectedPace = stats.GoalRequired * stats.DaysThusFar / stats.TotalWorkdays
	}
	stats.DaysAheadOfPace = stats.DaysBadgedIn - stats.ExpectedPace

	stats.RemainingMissableDays = stats.DaysLeft - stats.DaysStillNeeded
	if stats.RemainingMissableDays < 0 {
		stats.RemainingMissableDays = 0
	}

	if stats.DaysThusFar > 0 {
		stats.CurrentRate = decimal.NewFromInt(int64(stats.DaysBadgedIn)).
			Div(decimal.NewFromInt(int64(stats.DaysThusFar)))
	}
	if stats.DaysLeft > 0 {
		stats.RateNeeded = decimal.NewFromInt(int64(stats.DaysStillNeeded)).
			Div(decimal.NewFromInt(int64(stats.DaysLeft)))
		stats.RateNeededApplies = true
	}

	switch {
	case stats.DaysBadgedIn >= stats.GoalRequired:
		stats.Status = StatusAchieved
	case stats.DaysBadgedIn+stats.DaysLeft < stats.GoalRequired:
		stats.Status = StatusImpossible
	case stats.DaysAheadOfPace < 0:
		stats.Status = StatusAtRisk
	default:
		stats.Status = StatusOnTrack
	}

	stats.ProjectedCompletion = projectCompletion(stats, today)

	stats.HolidayCount = in.Holidays.CountIn(in.Period)
	stats.VacationDays = len(in.Vacations.ApprovedMap(in.Period))

	return stats
}

// projectCompletion extrapolates the historical badge-in rate over the
// remaining days: today + floor(stillNeeded / rate) calendar days. Absent
// when the goal is met, no history exists, no days remain, or the rate
// is zero.
func projectCompletion(stats QuarterStats, today calendar.Date) *calendar.Date {
	if stats.DaysStillNeeded == 0 || stats.DaysLeft == 0 || stats.DaysThusFar == 0 {
		return nil
	}
	if stats.CurrentRate.IsZero() {
		return nil
	}
	needed := decimal.NewFromInt(int64(stats.DaysStillNeeded))
	days := int(needed.Div(stats.CurrentRate).Floor().IntPart())
	d := today.AddDays(days)
	return &d
}

// GoalPercent returns goalRequired/totalWorkdays as a percentage, zero
// when the denominator is zero.
func (s QuarterStats) GoalPercent() decimal.Decimal {
	if s.TotalWorkdays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.GoalRequired)).
		Div(decimal.NewFromInt(int64(s.TotalWorkdays))).
		Mul(decimal.NewFromInt(100))
}

// CurrentPercent returns the badge-in rate so far as a percentage.
func (s QuarterStats) CurrentPercent() decimal.Decimal {
	return s.CurrentRate.Mul(decimal.NewFromInt(100))
}

// RateNeededPercent returns the required remaining rate as a percentage.
// Only meaningful when RateNeededApplies.
func (s QuarterStats) RateNeededPercent() decimal.Decimal {
	return s.RateNeeded.Mul(decimal.NewFromInt(100))
}
