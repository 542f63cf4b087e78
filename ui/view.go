package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/session"
	"github.com/warp/attendance-engine/track"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	styleWhatIf   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Reverse(true)
	styleBadged   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleFlex     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	styleHoliday  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleVacation = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	styleOffDay   = lipgloss.NewStyle().Faint(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCursor   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stylePanel    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	styleLabel    = lipgloss.NewStyle().Faint(true)
)

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.s.Context() {
	case session.ContextVacations:
		b.WriteString(m.renderVacations())
	case session.ContextHolidays:
		b.WriteString(m.renderHolidays())
	case session.ContextSettings:
		b.WriteString(m.renderSettings())
	default:
		b.WriteString(m.renderCalendar())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m *Model) renderHeader() string {
	title := "no quarter configured"
	if q, ok := m.s.ActiveQuarter(); ok {
		title = fmt.Sprintf("%s %s  %s", q.Quarter, q.Year, q.Period())
	}
	header := styleHeader.Render("Attendance · " + title)
	if m.s.WhatIfActive() {
		header += "  " + styleWhatIf.Render(" WHAT-IF ")
	}
	return header
}

func (m *Model) renderFooter() string {
	if msg := m.s.InputError(); msg != "" {
		return styleError.Render(msg)
	}
	if msg := m.s.Status(); msg != "" {
		return styleStatus.Render(msg)
	}
	return styleStatus.Render(m.helpLine())
}

func (m *Model) helpLine() string {
	switch m.s.Context() {
	case session.ContextCalendar:
		switch m.s.Mode() {
		case session.ModeNormal:
			return "space badge · f flex · a/d/s events · p/n quarter · v/h/o views · w what-if · g backup · q quit"
		case session.ModeDelete:
			return "↑/↓ select · enter delete · esc back"
		default:
			return "enter confirm · esc cancel"
		}
	default:
		if m.s.Stage() > 0 {
			return "enter next field · esc cancel"
		}
		return "↑/↓ select · a add · enter edit · d delete · esc back"
	}
}

// =============================================================================
// CALENDAR CONTEXT
// =============================================================================

func (m *Model) renderCalendar() string {
	grid := m.renderMonth(m.s.Selected().Year(), m.s.Selected().Month())
	stats := m.renderStats()
	body := lipgloss.JoinHorizontal(lipgloss.Top, stylePanel.Render(grid), stylePanel.Render(stats))

	var extra string
	switch m.s.Mode() {
	case session.ModeAdd:
		extra = "add event: " + m.s.Buffer() + "▌"
	case session.ModeSearch:
		extra = m.renderSearch()
	case session.ModeDelete:
		extra = m.renderDeleteList()
	default:
		extra = m.renderDayDetail()
	}
	return body + "\n" + extra
}

func (m *Model) renderMonth(year int, month time.Month) string {
	stats := m.s.QuarterStats()

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n Su Mo Tu We Th Fr Sa\n")

	first := calendar.NewDate(year, month, 1)
	offset := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", offset))

	col := offset
	for day := 1; day <= calendar.DaysInMonth(year, month); day++ {
		d := calendar.NewDate(year, month, day)
		b.WriteString(" " + m.renderDay(d, stats))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	return b.String()
}

func (m *Model) renderDay(d calendar.Date, stats *track.QuarterStats) string {
	cell := fmt.Sprintf("%2d", d.Day())

	style := lipgloss.NewStyle()
	if stats != nil {
		if res, ok := stats.Days[d]; ok {
			switch {
			case res.IsFlexCredit:
				style = styleFlex
			case res.IsBadgedIn:
				style = styleBadged
			case res.IsHoliday:
				style = styleHoliday
			case res.IsVacation:
				style = styleVacation
			case !res.IsWeekday:
				style = styleOffDay
			}
		} else if d.IsWeekend() {
			style = styleOffDay
		}
	} else if d.IsWeekend() {
		style = styleOffDay
	}

	if d.Equal(m.s.Today()) {
		style = style.Bold(true).Underline(true)
	}
	if d.Equal(m.s.Selected()) {
		style = style.Reverse(true)
	}
	return style.Render(cell)
}

func (m *Model) renderStats() string {
	stats := m.s.QuarterStats()
	if stats == nil {
		return styleLabel.Render("no quarter configured here\nuse p/n to navigate back")
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%-14s %s\n", styleLabel.Render(label), value))
	}

	row("Status", stats.Status.String())
	row("Goal", fmt.Sprintf("%d / %d (%s%%)", stats.GoalRequired, stats.TotalWorkdays, stats.GoalPercent().StringFixed(1)))
	row("Badged in", fmt.Sprintf("%d (office %d, flex %d)", stats.DaysBadgedIn, stats.OfficeDays, stats.FlexDays))
	row("Still needed", fmt.Sprintf("%d", stats.DaysStillNeeded))
	row("Pace", paceLine(stats.DaysAheadOfPace))
	row("Missable", fmt.Sprintf("%d", stats.RemainingMissableDays))
	row("Rate so far", stats.CurrentPercent().StringFixed(1)+"%")
	if stats.RateNeededApplies {
		row("Rate needed", stats.RateNeededPercent().StringFixed(1)+"%")
	} else {
		row("Rate needed", "n/a")
	}
	if stats.ProjectedCompletion != nil {
		row("Projected", stats.ProjectedCompletion.String())
	}
	row("Days off", fmt.Sprintf("%d holidays, %d vacation", stats.HolidayCount, stats.VacationDays))

	if year := m.s.YearStats(); year != nil {
		b.WriteString("\n")
		row("Year "+year.Label, fmt.Sprintf("%d / %d (%s)", year.DaysBadgedIn, year.GoalRequired, year.Status))
	}
	return b.String()
}

func paceLine(ahead int) string {
	switch {
	case ahead > 0:
		return fmt.Sprintf("%d days ahead", ahead)
	case ahead < 0:
		return fmt.Sprintf("%d days behind", -ahead)
	default:
		return "on pace"
	}
}

func (m *Model) renderDayDetail() string {
	events := m.s.Collections().Events.For(m.s.Selected())
	if len(events) == 0 {
		return styleLabel.Render(m.s.Selected().String())
	}
	var b strings.Builder
	b.WriteString(styleLabel.Render(m.s.Selected().String()) + "\n")
	for _, e := range events {
		b.WriteString("  · " + e.Description + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderDeleteList() string {
	events := m.s.Collections().Events.For(m.s.Selected())
	if len(events) == 0 {
		return styleLabel.Render("no events on " + m.s.Selected().String())
	}
	var b strings.Builder
	b.WriteString("delete event:\n")
	for i, e := range events {
		line := "  " + e.Description
		if i == m.s.DeleteCursor() {
			line = styleCursor.Render("> " + e.Description)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString("search: " + m.s.Buffer() + "▌\n")
	for _, e := range m.s.SearchResults() {
		b.WriteString(fmt.Sprintf("  %s  %s\n", e.Date, e.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

// =============================================================================
// LIST CONTEXTS
// =============================================================================

var vacationFieldNames = [...]string{"destination", "start date", "end date", "approved (y/n)"}
var holidayFieldNames = [...]string{"date", "name"}

func (m *Model) renderVacations() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Vacations") + "\n")

	vacations := m.s.Collections().Vacations.Vacations
	if len(vacations) == 0 {
		b.WriteString(styleLabel.Render("no vacations recorded") + "\n")
	}
	for i, v := range vacations {
		approved := "pending"
		if v.Approved {
			approved = "approved"
		}
		line := fmt.Sprintf("%s  %s → %s  (%s)", v.Destination, v.Start, v.End, approved)
		if i == m.s.ListCursor() && m.s.Stage() == 0 {
			line = styleCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.s.Stage() > 0 {
		b.WriteString(m.renderEntryPrompt(vacationFieldNames[:]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderHolidays() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Holidays") + "\n")

	holidays := m.s.Collections().Holidays.Holidays
	if len(holidays) == 0 {
		b.WriteString(styleLabel.Render("no holidays recorded") + "\n")
	}
	for i, h := range holidays {
		line := fmt.Sprintf("%s  %s", h.Date, h.Name)
		if i == m.s.ListCursor() && m.s.Stage() == 0 {
			line = styleCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.s.Stage() > 0 {
		b.WriteString(m.renderEntryPrompt(holidayFieldNames[:]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSettings() string {
	settings := m.s.Collections().Config.Settings
	rows := []struct{ label, value string }{
		{"Default office", settings.DefaultOffice},
		{"Flex credit label", settings.FlexCreditLabel},
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("Settings") + "\n")
	for i, r := range rows {
		line := fmt.Sprintf("%-18s %s", r.label, r.value)
		if i == m.s.ListCursor() && m.s.Stage() == 0 {
			line = styleCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.s.Stage() > 0 {
		b.WriteString(fmt.Sprintf("%s: %s▌\n", rows[m.s.ListCursor()].label, m.s.Buffer()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderEntryPrompt(fields []string) string {
	stage := m.s.Stage()
	if stage < 1 || stage > len(fields) {
		return ""
	}
	verb := "add"
	if m.s.EditIndex() >= 0 {
		verb = "edit"
	}
	return fmt.Sprintf("%s · %s: %s▌\n", verb, fields[stage-1], m.s.Buffer())
}
