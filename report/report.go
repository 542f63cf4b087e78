/*
Package report renders plain-text summaries of tracking data for the
command line. The interactive screen has its own renderer; this package
serves `rto stats`, `rto vacations` and `rto holidays`.
*/
package report

import (
	"fmt"
	"strings"

	"github.com/warp/attendance-engine/data"
	"github.com/warp/attendance-engine/track"
)

// Quarter formats one QuarterStats block.
func Quarter(s track.QuarterStats) string {
	var b strings.Builder
	w := func(label, value string) {
		fmt.Fprintf(&b, "  %-22s %s\n", label, value)
	}

	fmt.Fprintf(&b, "%s  (%s)\n", s.Label, s.Period)
	w("Status", s.Status.String())
	w("Goal", fmt.Sprintf("%d of %d workdays (%s%%)", s.GoalRequired, s.TotalWorkdays, s.GoalPercent().StringFixed(2)))
	w("Badged in", fmt.Sprintf("%d (office %d, flex %d)", s.DaysBadgedIn, s.OfficeDays, s.FlexDays))
	w("Still needed", fmt.Sprintf("%d", s.DaysStillNeeded))
	w("Pace", Pace(s.DaysAheadOfPace))
	w("Skippable days left", fmt.Sprintf("%d", s.RemainingMissableDays))
	w("Rate so far", s.CurrentPercent().StringFixed(1)+"%")
	w("Rate needed", rateNeeded(s))
	w("Projected completion", projected(s))
	w("Days off", fmt.Sprintf("%d holidays, %d vacation days", s.HolidayCount, s.VacationDays))
	return b.String()
}

// Pace phrases the distance from the expected pace.
func Pace(ahead int) string {
	switch {
	case ahead > 0:
		return fmt.Sprintf("%d days ahead", ahead)
	case ahead < 0:
		return fmt.Sprintf("%d days behind", -ahead)
	default:
		return "on pace"
	}
}

func rateNeeded(s track.QuarterStats) string {
	if !s.RateNeededApplies {
		if s.DaysStillNeeded > 0 {
			return "infinite"
		}
		return "n/a"
	}
	return s.RateNeededPercent().StringFixed(1) + "%"
}

func projected(s track.QuarterStats) string {
	if s.ProjectedCompletion == nil {
		return "n/a"
	}
	return s.ProjectedCompletion.String()
}

// Vacations lists every vacation with its day count and a grand total
// of approved days.
func Vacations(vd *data.VacationData) string {
	var b strings.Builder
	if len(vd.Vacations) == 0 {
		return "no vacations recorded\n"
	}
	total := 0
	for _, v := range vd.Vacations {
		days := v.Period().Days()
		state := "pending"
		if v.Approved {
			state = "approved"
			total += days
		}
		fmt.Fprintf(&b, "  %-20s %s to %s  %2d days  %s\n", v.Destination, v.Start, v.End, days, state)
	}
	fmt.Fprintf(&b, "approved total: %d days\n", total)
	return b.String()
}

// Holidays lists the configured holidays in file order.
func Holidays(hd *data.HolidayData) string {
	var b strings.Builder
	if len(hd.Holidays) == 0 {
		return "no holidays recorded\n"
	}
	for _, h := range hd.Holidays {
		fmt.Fprintf(&b, "  %s  %s\n", h.Date, h.Name)
	}
	fmt.Fprintf(&b, "total: %d holidays\n", len(hd.Holidays))
	return b.String()
}
