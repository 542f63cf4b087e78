package data

import (
	"fmt"
	"time"

	"github.com/warp/attendance-engine/calendar"
)

// =============================================================================
// SEED - Initial data set for a fresh data directory
// =============================================================================

// Seed writes a starter data set into dir: the four calendar quarters of
// today's year, the US federal holidays, two sample vacations, badge
// entries for the weekdays of the last two weeks, and default settings.
func Seed(dir string, today calendar.Date) error {
	year := today.Year()

	cfg := Config{
		Quarters: []QuarterConfig{
			quarter(year, 1, time.January, time.March, 31),
			quarter(year, 2, time.April, time.June, 30),
			quarter(year, 3, time.July, time.September, 30),
			quarter(year, 4, time.October, time.December, 31),
		},
		Settings: Settings{}.WithDefaults(),
	}

	holidays := HolidayData{Holidays: FederalHolidays(year)}

	vacations := VacationData{Vacations: []Vacation{
		{
			Destination: "Outer Banks, NC",
			Start:       calendar.NewDate(year, time.July, 6),
			End:         calendar.NewDate(year, time.July, 10),
			Approved:    true,
		},
		{
			Destination: "Lisbon, Portugal",
			Start:       calendar.NewDate(year, time.October, 12),
			End:         calendar.NewDate(year, time.October, 16),
			Approved:    false,
		},
	}}

	var badges BadgeData
	for d := today.AddDays(-14); d.BeforeOrEqual(today); d = d.AddDays(1) {
		if d.IsWeekday() {
			badges.Add(BadgeEntry{
				Date:     d,
				Office:   cfg.Settings.DefaultOffice,
				BadgedIn: true,
			})
		}
	}

	var events EventData

	if err := SaveTo(dir, cfg); err != nil {
		return err
	}
	if err := SaveTo(dir, holidays); err != nil {
		return err
	}
	if err := SaveTo(dir, vacations); err != nil {
		return err
	}
	if err := SaveTo(dir, badges); err != nil {
		return err
	}
	return SaveTo(dir, events)
}

func quarter(year, n int, startMonth, endMonth time.Month, endDay int) QuarterConfig {
	return QuarterConfig{
		Key:     fmt.Sprintf("%dQ%d", year, n),
		Quarter: fmt.Sprintf("Q%d", n),
		Year:    fmt.Sprintf("%d", year),
		Start:   calendar.NewDate(year, startMonth, 1),
		End:     calendar.NewDate(year, endMonth, endDay),
	}
}

// FederalHolidays returns the eleven US federal holidays for a year,
// computed from their statutory rules.
func FederalHolidays(year int) []Holiday {
	return []Holiday{
		{Name: "New Year's Day", Date: calendar.NewDate(year, time.January, 1)},
		{Name: "Martin Luther King Jr. Day", Date: nthWeekday(year, time.January, time.Monday, 3)},
		{Name: "Presidents' Day", Date: nthWeekday(year, time.February, time.Monday, 3)},
		{Name: "Memorial Day", Date: lastWeekday(year, time.May, time.Monday)},
		{Name: "Juneteenth", Date: calendar.NewDate(year, time.June, 19)},
		{Name: "Independence Day", Date: calendar.NewDate(year, time.July, 4)},
		{Name: "Labor Day", Date: nthWeekday(year, time.September, time.Monday, 1)},
		{Name: "Columbus Day", Date: nthWeekday(year, time.October, time.Monday, 2)},
		{Name: "Veterans Day", Date: calendar.NewDate(year, time.November, 11)},
		{Name: "Thanksgiving", Date: nthWeekday(year, time.November, time.Thursday, 4)},
		{Name: "Christmas Day", Date: calendar.NewDate(year, time.December, 25)},
	}
}

func nthWeekday(year int, month time.Month, wd time.Weekday, n int) calendar.Date {
	d := calendar.NewDate(year, month, 1)
	for d.Weekday() != wd {
		d = d.AddDays(1)
	}
	return d.AddDays(7 * (n - 1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) calendar.Date {
	d := calendar.NewDate(year, month, calendar.DaysInMonth(year, month))
	for d.Weekday() != wd {
		d = d.AddDays(-1)
	}
	return d
}
