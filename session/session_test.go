package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
	"github.com/warp/attendance-engine/session"
	"github.com/warp/attendance-engine/track"
)

func date(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	cfg := &data.Config{
		Quarters: []data.QuarterConfig{
			{Key: "2026Q1", Quarter: "Q1", Year: "2026", Start: date("2026-01-01"), End: date("2026-03-31")},
			{Key: "2026Q2", Quarter: "Q2", Year: "2026", Start: date("2026-04-01"), End: date("2026-06-30")},
		},
		Settings: data.Settings{}.WithDefaults(),
	}
	return session.New(session.Collections{
		Config:    cfg,
		Badges:    &data.BadgeData{},
		Events:    &data.EventData{},
		Vacations: &data.VacationData{},
		Holidays:  &data.HolidayData{},
	}, date("2026-03-16"), nil, "")
}

func typeString(s *session.Session, text string) {
	for _, r := range text {
		s.Handle(session.BufferAppend{Rune: r})
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNavigationStartsOnContainingQuarter(t *testing.T) {
	s := newTestSession(t)
	q, ok := s.ActiveQuarter()
	require.True(t, ok)
	assert.Equal(t, "2026Q1", q.Key)
	require.NotNil(t, s.QuarterStats())
	require.NotNil(t, s.YearStats())
}

func TestShiftQuarterIsUnconditionalAndReversible(t *testing.T) {
	s := newTestSession(t)
	start := s.Anchor()

	// walk far past the configured catalog
	for i := 0; i < 5; i++ {
		s.Handle(session.ShiftQuarter{Delta: 1})
	}
	_, ok := s.ActiveQuarter()
	assert.False(t, ok)
	assert.Nil(t, s.QuarterStats())

	// walking back restores both the anchor and the quarter
	for i := 0; i < 5; i++ {
		s.Handle(session.ShiftQuarter{Delta: -1})
	}
	assert.True(t, s.Anchor().Equal(start))
	q, ok := s.ActiveQuarter()
	require.True(t, ok)
	assert.Equal(t, "2026Q1", q.Key)
}

func TestYearStatsAbsentOutsideConfiguredYears(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 4; i++ {
		s.Handle(session.ShiftQuarter{Delta: 1}) // into 2027
	}
	assert.Nil(t, s.YearStats())
}

func TestMoveSelectionIsUnconstrained(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.MoveSelection{Delta: -7})
	assert.Equal(t, "2026-03-09", s.Selected().String())
	for i := 0; i < 60; i++ {
		s.Handle(session.MoveSelection{Delta: 1})
	}
	assert.Equal(t, "2026-05-08", s.Selected().String())
}

// =============================================================================
// ATTENDANCE TOGGLES
// =============================================================================

func TestToggleAttendanceRoundTrip(t *testing.T) {
	s := newTestSession(t)
	badges := s.Collections().Badges

	s.Handle(session.ToggleAttendance{})
	e, ok := badges.Get(s.Selected())
	require.True(t, ok)
	assert.True(t, e.BadgedIn)
	assert.False(t, e.FlexCredit)
	assert.Equal(t, "McLean, VA", e.Office)
	assert.Equal(t, 1, s.QuarterStats().DaysBadgedIn)

	s.Handle(session.ToggleAttendance{})
	assert.False(t, badges.Has(s.Selected()))
	assert.Equal(t, 0, s.QuarterStats().DaysBadgedIn)
}

func TestToggleFlexUsesFlagNotLabel(t *testing.T) {
	s := newTestSession(t)

	s.Handle(session.ToggleFlex{})
	e, ok := s.Collections().Badges.Get(s.Selected())
	require.True(t, ok)
	assert.True(t, e.FlexCredit)
	assert.True(t, e.BadgedIn)
	assert.Equal(t, 1, s.QuarterStats().FlexDays)
	assert.Equal(t, 0, s.QuarterStats().OfficeDays)
}

func TestToggleOutsideCatalogIsRejected(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 5; i++ {
		s.Handle(session.ShiftQuarter{Delta: 1})
	}
	s.Handle(session.ToggleAttendance{})
	assert.Empty(t, s.Collections().Badges.Entries)
	assert.NotEmpty(t, s.Status())
}

// =============================================================================
// CALENDAR MODES
// =============================================================================

func TestAddModeCreatesEvent(t *testing.T) {
	s := newTestSession(t)

	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	assert.Equal(t, session.ModeAdd, s.Mode())
	typeString(s, "dentist")
	s.Handle(session.Confirm{})

	assert.Equal(t, session.ModeNormal, s.Mode())
	events := s.Collections().Events.For(s.Selected())
	require.Len(t, events, 1)
	assert.Equal(t, "dentist", events[0].Description)
}

func TestAddModeCancelDiscardsBuffer(t *testing.T) {
	s := newTestSession(t)

	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	typeString(s, "dent")
	s.Handle(session.Cancel{})

	assert.Equal(t, session.ModeNormal, s.Mode())
	assert.Empty(t, s.Buffer())
	assert.Empty(t, s.Collections().Events.Events)
}

func TestBufferBackspace(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	typeString(s, "abc")
	s.Handle(session.BufferBackspace{})
	assert.Equal(t, "ab", s.Buffer())

	s.Handle(session.BufferBackspace{})
	s.Handle(session.BufferBackspace{})
	s.Handle(session.BufferBackspace{}) // empty buffer: no-op
	assert.Empty(t, s.Buffer())
}

func TestDeleteModeRemovesSelectedEventAndClampsCursor(t *testing.T) {
	s := newTestSession(t)
	events := s.Collections().Events
	events.Add(data.Event{Date: s.Selected(), Description: "one"})
	events.Add(data.Event{Date: s.Selected(), Description: "two"})

	s.Handle(session.EnterMode{Mode: session.ModeDelete})
	s.Handle(session.MoveSelection{Delta: 1})
	assert.Equal(t, 1, s.DeleteCursor())

	s.Handle(session.Confirm{})
	require.Len(t, events.For(s.Selected()), 1)
	assert.Equal(t, "one", events.For(s.Selected())[0].Description)
	assert.Equal(t, 0, s.DeleteCursor())

	// empty list: confirm is a no-op
	s.Handle(session.Confirm{})
	s.Handle(session.Confirm{})
	assert.Empty(t, events.For(s.Selected()))
}

func TestSearchMode(t *testing.T) {
	s := newTestSession(t)
	s.Collections().Events.Add(data.Event{Date: date("2026-03-05"), Description: "Quarterly Review"})

	s.Handle(session.EnterMode{Mode: session.ModeSearch})
	typeString(s, "review")
	require.Len(t, s.SearchResults(), 1)

	s.Handle(session.Confirm{})
	assert.Equal(t, session.ModeNormal, s.Mode())
	assert.Empty(t, s.Buffer())
}

// =============================================================================
// CONTEXT SWITCHES AND ENTRY STAGES
// =============================================================================

func TestContextSwitchAndReturn(t *testing.T) {
	s := newTestSession(t)

	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	assert.Equal(t, session.ContextVacations, s.Context())

	s.Handle(session.Cancel{})
	assert.Equal(t, session.ContextCalendar, s.Context())
	assert.Equal(t, session.ModeNormal, s.Mode())
}

func TestReturnDiscardsEntryProgress(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	typeString(s, "OBX")
	require.Equal(t, 1, s.Stage())

	s.Handle(session.Cancel{}) // cancels the entry
	assert.Equal(t, 0, s.Stage())
	s.Handle(session.Cancel{}) // leaves the context
	assert.Equal(t, session.ContextCalendar, s.Context())
	assert.Empty(t, s.Collections().Vacations.Vacations)
}

func TestVacationAddFlow(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.EnterMode{Mode: session.ModeAdd})

	typeString(s, "Outer Banks")
	s.Handle(session.Confirm{})
	typeString(s, "2026-07-06")
	s.Handle(session.Confirm{})
	typeString(s, "2026-07-10")
	s.Handle(session.Confirm{})
	typeString(s, "yes")
	s.Handle(session.Confirm{})

	assert.Equal(t, 0, s.Stage())
	vacations := s.Collections().Vacations.Vacations
	require.Len(t, vacations, 1)
	assert.Equal(t, "Outer Banks", vacations[0].Destination)
	assert.Equal(t, "2026-07-06", vacations[0].Start.String())
	assert.Equal(t, "2026-07-10", vacations[0].End.String())
	assert.True(t, vacations[0].Approved)
}

func TestVacationDateValidationHoldsStage(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.EnterMode{Mode: session.ModeAdd})

	typeString(s, "OBX")
	s.Handle(session.Confirm{})
	require.Equal(t, 2, s.Stage())

	typeString(s, "july 6")
	s.Handle(session.Confirm{})

	// stage holds, buffer survives, error is surfaced
	assert.Equal(t, 2, s.Stage())
	assert.Equal(t, "july 6", s.Buffer())
	assert.NotEmpty(t, s.InputError())

	// correcting the buffer advances
	for range "july 6" {
		s.Handle(session.BufferBackspace{})
	}
	assert.Empty(t, s.InputError())
	typeString(s, "2026-07-06")
	s.Handle(session.Confirm{})
	assert.Equal(t, 3, s.Stage())
}

func TestVacationEditPrefillsFields(t *testing.T) {
	s := newTestSession(t)
	s.Collections().Vacations.Add(data.Vacation{
		Destination: "Lisbon", Start: date("2026-10-12"), End: date("2026-10-16"), Approved: false,
	})

	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.Confirm{}) // edit row 0
	require.Equal(t, 1, s.Stage())
	assert.Equal(t, "Lisbon", s.Buffer())

	s.Handle(session.Confirm{}) // keep destination
	assert.Equal(t, "2026-10-12", s.Buffer())
	s.Handle(session.Confirm{}) // keep start
	assert.Equal(t, "2026-10-16", s.Buffer())
	s.Handle(session.Confirm{}) // keep end
	assert.Equal(t, "no", s.Buffer())

	// flip approval
	for range "no" {
		s.Handle(session.BufferBackspace{})
	}
	typeString(s, "y")
	s.Handle(session.Confirm{})

	vacations := s.Collections().Vacations.Vacations
	require.Len(t, vacations, 1)
	assert.True(t, vacations[0].Approved)
	assert.Equal(t, "Lisbon", vacations[0].Destination)
}

func TestVacationDeleteClampsCursor(t *testing.T) {
	s := newTestSession(t)
	s.Collections().Vacations.Add(data.Vacation{Destination: "A", Start: date("2026-05-04"), End: date("2026-05-05")})
	s.Collections().Vacations.Add(data.Vacation{Destination: "B", Start: date("2026-06-01"), End: date("2026-06-02")})

	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.MoveSelection{Delta: 1})
	s.Handle(session.EnterMode{Mode: session.ModeDelete})

	require.Len(t, s.Collections().Vacations.Vacations, 1)
	assert.Equal(t, 0, s.ListCursor())
	assert.Equal(t, "A", s.Collections().Vacations.Vacations[0].Destination)
}

func TestHolidayAddValidatesDateFirst(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.SwitchContext{Context: session.ContextHolidays})
	s.Handle(session.EnterMode{Mode: session.ModeAdd})

	typeString(s, "not a date")
	s.Handle(session.Confirm{})
	assert.Equal(t, 1, s.Stage())
	assert.NotEmpty(t, s.InputError())

	for range "not a date" {
		s.Handle(session.BufferBackspace{})
	}
	typeString(s, "2026-12-25")
	s.Handle(session.Confirm{})
	require.Equal(t, 2, s.Stage())

	typeString(s, "Christmas Day")
	s.Handle(session.Confirm{})

	holidays := s.Collections().Holidays.Holidays
	require.Len(t, holidays, 1)
	assert.Equal(t, "Christmas Day", holidays[0].Name)
	assert.Equal(t, "2026-12-25", holidays[0].Date.String())
}

func TestHolidayMutationRecomputesStats(t *testing.T) {
	s := newTestSession(t)
	before := s.QuarterStats().TotalWorkdays

	s.Handle(session.SwitchContext{Context: session.ContextHolidays})
	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	typeString(s, "2026-03-17") // a Tuesday inside 2026Q1
	s.Handle(session.Confirm{})
	typeString(s, "Founders Day")
	s.Handle(session.Confirm{})

	assert.Equal(t, before-1, s.QuarterStats().TotalWorkdays)
}

func TestSettingsEdit(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.SwitchContext{Context: session.ContextSettings})

	s.Handle(session.Confirm{})
	require.Equal(t, 1, s.Stage())
	assert.Equal(t, "McLean, VA", s.Buffer())

	for range "McLean, VA" {
		s.Handle(session.BufferBackspace{})
	}
	typeString(s, "New York, NY")
	s.Handle(session.Confirm{})

	assert.Equal(t, 0, s.Stage())
	assert.Equal(t, "New York, NY", s.Collections().Config.Settings.DefaultOffice)

	// second row edits the flex label
	s.Handle(session.MoveSelection{Delta: 1})
	s.Handle(session.Confirm{})
	assert.Equal(t, "Flex Credit", s.Buffer())
	s.Handle(session.Cancel{})
	assert.Equal(t, "Flex Credit", s.Collections().Config.Settings.FlexCreditLabel)
}

// =============================================================================
// WHAT-IF
// =============================================================================

func TestWhatIfRoundTrip(t *testing.T) {
	s := newTestSession(t)
	badges := s.Collections().Badges
	s.Handle(session.ToggleAttendance{})
	original := badges.Clone()

	s.Handle(session.EnterWhatIf{})
	require.True(t, s.WhatIfActive())

	// simulate: remove the real entry, add five speculative ones
	s.Handle(session.ToggleAttendance{})
	for i := 0; i < 5; i++ {
		s.Handle(session.MoveSelection{Delta: 1})
		s.Handle(session.ToggleAttendance{})
	}
	assert.NotEqual(t, original.Entries, badges.Entries)

	s.Handle(session.ExitWhatIf{})
	assert.False(t, s.WhatIfActive())
	assert.Equal(t, original.Entries, badges.Entries)
	assert.Equal(t, 1, s.QuarterStats().DaysBadgedIn)
}

func TestWhatIfZeroMutationsRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.EnterWhatIf{})
	s.Handle(session.ExitWhatIf{})
	assert.Empty(t, s.Collections().Badges.Entries)
}

func TestQuitExitsWhatIfBeforeTermination(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.EnterWhatIf{})
	s.Handle(session.ToggleAttendance{})
	require.NotEmpty(t, s.Collections().Badges.Entries)

	s.Handle(session.Quit{})
	assert.True(t, s.Done())
	// persistence must never observe simulated entries
	assert.Empty(t, s.Collections().Badges.Entries)

	// events after quit are ignored
	s.Handle(session.ToggleAttendance{})
	assert.Empty(t, s.Collections().Badges.Entries)
}

func TestQuitOnlyFromIdleCalendar(t *testing.T) {
	s := newTestSession(t)

	s.Handle(session.EnterMode{Mode: session.ModeAdd})
	s.Handle(session.Quit{})
	assert.False(t, s.Done())

	s.Handle(session.Cancel{})
	s.Handle(session.SwitchContext{Context: session.ContextVacations})
	s.Handle(session.Quit{})
	assert.False(t, s.Done())

	s.Handle(session.Cancel{})
	s.Handle(session.Quit{})
	assert.True(t, s.Done())
}

func TestWhatIfMetricsReflectSimulation(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.EnterWhatIf{})
	s.Handle(session.ToggleAttendance{})
	assert.Equal(t, 1, s.QuarterStats().DaysBadgedIn)
	s.Handle(session.ExitWhatIf{})
	assert.Equal(t, 0, s.QuarterStats().DaysBadgedIn)
}

// =============================================================================
// BACKUP
// =============================================================================

type fakeBackup struct {
	calls int
	msg   string
	err   error
}

func (f *fakeBackup) Backup(dir string) (string, error) {
	f.calls++
	return f.msg, f.err
}

func TestRequestBackupReportsOutcome(t *testing.T) {
	cfg := &data.Config{Settings: data.Settings{}.WithDefaults()}
	runner := &fakeBackup{msg: "backup pushed"}
	s := session.New(session.Collections{
		Config:    cfg,
		Badges:    &data.BadgeData{},
		Events:    &data.EventData{},
		Vacations: &data.VacationData{},
		Holidays:  &data.HolidayData{},
	}, date("2026-03-16"), runner, "/tmp/x")

	s.Handle(session.RequestBackup{})
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "backup pushed", s.Status())

	runner.err = errors.New("remote unreachable")
	s.Handle(session.RequestBackup{})
	assert.Contains(t, s.Status(), "backup failed")

	// status clears on the next event
	s.Handle(session.MoveSelection{Delta: 1})
	assert.Empty(t, s.Status())
}

func TestStatsShapeMatchesEngine(t *testing.T) {
	s := newTestSession(t)
	s.Handle(session.ToggleAttendance{})

	col := s.Collections()
	q, _ := s.ActiveQuarter()
	want := track.Calculate(track.Input{
		Key:        q.Key,
		Label:      q.Quarter + " " + q.Year,
		Period:     q.Period(),
		Holidays:   col.Holidays,
		Vacations:  col.Vacations,
		Attendance: col.Badges,
		Today:      s.Today(),
	})
	assert.Equal(t, want, *s.QuarterStats())
}
