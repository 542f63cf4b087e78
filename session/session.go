/*
session.go - Interactive session state machine

PURPOSE:
  Owns the live session: the navigation anchor and selected day, the
  active full-screen context, the Calendar input modes, the entry stages
  of the list contexts, the what-if simulation layer, and the mutable
  record collections borrowed for the session's lifetime.

STATE AXES:
  Context:  Calendar | Vacations | Holidays | Settings
  Mode:     Normal | Add | Delete | Search   (Calendar only)
  Stage:    0 = browsing, 1..N = collecting field N of an add/edit
            (vacation: destination, start, end, approved;
             holiday: date, name; settings: one value)

INVARIANTS:
  - Anchor movement is unconditional: quarters outside the catalog are a
    representable state and navigation stays reversible.
  - A date field advances its stage only when the buffer parses as a
    calendar date. This is the only validation gate.
  - Every mutation recomputes the active quarter's and year's metrics
    before the next render.
  - What-if restore completes before Quit reports the session done, so
    persistence never observes simulated changes.

SEE ALSO:
  - events.go: the event vocabulary consumed by Handle
  - track: the calculation engine invoked on every recompute
*/
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
	"github.com/warp/attendance-engine/track"
)

const invalidDateMsg = "invalid date, use YYYY-MM-DD"

// BackupRunner performs the external backup action for the data
// directory and returns a one-line outcome description.
type BackupRunner interface {
	Backup(dir string) (string, error)
}

// Collections is the set of record collections the session borrows
// exclusively for its lifetime. The caller persists them after Done.
type Collections struct {
	Config    *data.Config
	Badges    *data.BadgeData
	Events    *data.EventData
	Vacations *data.VacationData
	Holidays  *data.HolidayData
}

type Session struct {
	col   Collections
	today calendar.Date

	anchor   calendar.Date
	selected calendar.Date
	quarter  *data.QuarterConfig

	ctx   Context
	mode  Mode
	stage int

	buffer     string
	inputError string
	fields     []string
	editIndex  int

	listCursor   int
	deleteCursor int

	snapshot *data.BadgeData // non-nil only during what-if

	quarterStats *track.QuarterStats
	yearStats    *track.QuarterStats

	status string
	done   bool

	backup  BackupRunner
	dataDir string
}

// New starts a session anchored at today. The collections are borrowed
// until Done returns true.
func New(col Collections, today calendar.Date, backup BackupRunner, dataDir string) *Session {
	col.Config.Settings = col.Config.Settings.WithDefaults()
	s := &Session{
		col:       col,
		today:     today,
		anchor:    today,
		selected:  today,
		editIndex: -1,
		backup:    backup,
		dataDir:   dataDir,
	}
	s.lookupQuarter()
	s.recompute()
	return s
}

// =============================================================================
// EVENT DISPATCH
// =============================================================================

// Handle processes one input event synchronously. Events arriving after
// Quit are ignored.
func (s *Session) Handle(ev Event) {
	if s.done {
		return
	}
	s.status = ""

	switch ev.(type) {
	case Quit:
		// only the idle calendar can end the session; everywhere else
		// Cancel walks back toward it first
		if s.ctx != ContextCalendar || s.mode != ModeNormal {
			return
		}
		if s.snapshot != nil {
			s.restoreSnapshot()
		}
		s.done = true
		return
	case EnterWhatIf:
		if s.snapshot == nil {
			snap := s.col.Badges.Clone()
			s.snapshot = &snap
			s.status = "what-if active: attendance changes will be discarded"
		}
		return
	case ExitWhatIf:
		if s.snapshot != nil {
			s.restoreSnapshot()
			s.status = "what-if exited: changes discarded"
		}
		return
	case RequestBackup:
		s.runBackup()
		return
	}

	switch s.ctx {
	case ContextCalendar:
		s.handleCalendar(ev)
	case ContextVacations:
		s.handleVacations(ev)
	case ContextHolidays:
		s.handleHolidays(ev)
	case ContextSettings:
		s.handleSettings(ev)
	}
}

// =============================================================================
// CALENDAR CONTEXT
// =============================================================================

func (s *Session) handleCalendar(ev Event) {
	switch s.mode {
	case ModeNormal:
		s.handleCalendarNormal(ev)
	case ModeAdd:
		s.handleCalendarAdd(ev)
	case ModeDelete:
		s.handleCalendarDelete(ev)
	case ModeSearch:
		s.handleCalendarSearch(ev)
	}
}

func (s *Session) handleCalendarNormal(ev Event) {
	switch e := ev.(type) {
	case MoveSelection:
		s.selected = s.selected.AddDays(e.Delta)
	case ShiftQuarter:
		// unconditional: navigating outside the catalog must stay
		// reversible
		s.anchor = s.anchor.AddMonths(3 * e.Delta)
		s.lookupQuarter()
		s.recompute()
	case ToggleAttendance:
		s.toggleBadge(false)
	case ToggleFlex:
		s.toggleBadge(true)
	case EnterMode:
		if e.Mode == ModeNormal {
			return
		}
		s.mode = e.Mode
		s.buffer = ""
		s.inputError = ""
		s.deleteCursor = 0
	case SwitchContext:
		if e.Context != ContextCalendar {
			s.ctx = e.Context
			s.resetListState()
		}
	}
}

func (s *Session) toggleBadge(flex bool) {
	if s.quarter == nil {
		s.status = "no quarter configured here"
		return
	}
	if s.col.Badges.Has(s.selected) {
		s.col.Badges.Remove(s.selected)
	} else {
		entry := data.BadgeEntry{
			Date:     s.selected,
			Office:   s.col.Config.Settings.DefaultOffice,
			BadgedIn: true,
		}
		if flex {
			entry.Office = s.col.Config.Settings.FlexCreditLabel
			entry.FlexCredit = true
		}
		s.col.Badges.Add(entry)
	}
	s.recompute()
}

func (s *Session) handleCalendarAdd(ev Event) {
	switch e := ev.(type) {
	case BufferAppend:
		s.buffer += string(e.Rune)
	case BufferBackspace:
		s.truncateBuffer()
	case Confirm:
		if s.buffer != "" {
			s.col.Events.Add(data.Event{Date: s.selected, Description: s.buffer})
			s.status = "event added"
			s.recompute()
		}
		s.mode = ModeNormal
		s.buffer = ""
	case Cancel, ExitMode:
		s.mode = ModeNormal
		s.buffer = ""
	}
}

func (s *Session) handleCalendarDelete(ev Event) {
	events := s.col.Events.For(s.selected)
	switch e := ev.(type) {
	case MoveSelection:
		s.deleteCursor = clamp(s.deleteCursor+e.Delta, len(events))
	case Confirm:
		if len(events) == 0 || s.deleteCursor >= len(events) {
			return
		}
		target := events[s.deleteCursor]
		s.col.Events.Remove(target.Date, target.Description)
		s.deleteCursor = clamp(s.deleteCursor, len(events)-1)
		s.status = "event deleted"
		s.recompute()
	case Cancel, ExitMode:
		s.mode = ModeNormal
	}
}

func (s *Session) handleCalendarSearch(ev Event) {
	switch e := ev.(type) {
	case BufferAppend:
		s.buffer += string(e.Rune)
	case BufferBackspace:
		s.truncateBuffer()
	case Confirm, Cancel, ExitMode:
		s.mode = ModeNormal
		s.buffer = ""
	}
}

// =============================================================================
// VACATIONS CONTEXT - 4 entry fields: destination, start, end, approved
// =============================================================================

const vacationFields = 4

func (s *Session) handleVacations(ev Event) {
	if s.stage > 0 {
		s.handleEntryStage(ev, vacationFields, s.vacationPrefill, s.commitVacation, s.vacationDateStage)
		return
	}

	switch e := ev.(type) {
	case MoveSelection:
		s.listCursor = clamp(s.listCursor+e.Delta, len(s.col.Vacations.Vacations))
	case EnterMode:
		switch e.Mode {
		case ModeAdd:
			s.beginEntry(-1)
		case ModeDelete:
			s.col.Vacations.RemoveAt(s.listCursor)
			s.listCursor = clamp(s.listCursor, len(s.col.Vacations.Vacations))
			s.recompute()
		}
	case Confirm:
		if s.listCursor < len(s.col.Vacations.Vacations) {
			s.beginEntry(s.listCursor)
		}
	case Cancel:
		s.returnToCalendar()
	case SwitchContext:
		s.switchFromList(e.Context)
	}
}

// vacationDateStage reports whether a stage collects a date field.
func (s *Session) vacationDateStage(stage int) bool {
	return stage == 2 || stage == 3
}

func (s *Session) vacationPrefill(stage int) string {
	if s.editIndex < 0 || s.editIndex >= len(s.col.Vacations.Vacations) {
		return ""
	}
	v := s.col.Vacations.Vacations[s.editIndex]
	switch stage {
	case 1:
		return v.Destination
	case 2:
		return v.Start.String()
	case 3:
		return v.End.String()
	case 4:
		if v.Approved {
			return "yes"
		}
		return "no"
	}
	return ""
}

func (s *Session) commitVacation() {
	start, _ := calendar.ParseDate(s.fields[1])
	end, _ := calendar.ParseDate(s.fields[2])
	v := data.Vacation{
		Destination: s.fields[0],
		Start:       start,
		End:         end,
		Approved:    strings.HasPrefix(strings.ToLower(s.fields[3]), "y"),
	}
	if s.editIndex >= 0 {
		s.col.Vacations.Replace(s.editIndex, v)
		s.status = "vacation updated"
	} else {
		s.col.Vacations.Add(v)
		s.status = "vacation added"
	}
	s.recompute()
}

// =============================================================================
// HOLIDAYS CONTEXT - 2 entry fields: date, name
// =============================================================================

const holidayFields = 2

func (s *Session) handleHolidays(ev Event) {
	if s.stage > 0 {
		s.handleEntryStage(ev, holidayFields, s.holidayPrefill, s.commitHoliday, func(stage int) bool { return stage == 1 })
		return
	}

	switch e := ev.(type) {
	case MoveSelection:
		s.listCursor = clamp(s.listCursor+e.Delta, len(s.col.Holidays.Holidays))
	case EnterMode:
		switch e.Mode {
		case ModeAdd:
			s.beginEntry(-1)
		case ModeDelete:
			s.col.Holidays.RemoveAt(s.listCursor)
			s.listCursor = clamp(s.listCursor, len(s.col.Holidays.Holidays))
			s.recompute()
		}
	case Confirm:
		if s.listCursor < len(s.col.Holidays.Holidays) {
			s.beginEntry(s.listCursor)
		}
	case Cancel:
		s.returnToCalendar()
	case SwitchContext:
		s.switchFromList(e.Context)
	}
}

func (s *Session) holidayPrefill(stage int) string {
	if s.editIndex < 0 || s.editIndex >= len(s.col.Holidays.Holidays) {
		return ""
	}
	h := s.col.Holidays.Holidays[s.editIndex]
	switch stage {
	case 1:
		return h.Date.String()
	case 2:
		return h.Name
	}
	return ""
}

func (s *Session) commitHoliday() {
	d, _ := calendar.ParseDate(s.fields[0])
	h := data.Holiday{Name: s.fields[1], Date: d}
	if s.editIndex >= 0 && s.editIndex < len(s.col.Holidays.Holidays) {
		// editing may change the date, so replace in place rather than
		// dedupe through Add
		s.col.Holidays.Holidays[s.editIndex] = h
		s.status = "holiday updated"
	} else {
		s.col.Holidays.Add(h)
		s.status = "holiday added"
	}
	s.recompute()
}

// =============================================================================
// SETTINGS CONTEXT - 2 rows, 1 entry field each
// =============================================================================

// settings rows: 0 = default office, 1 = flex credit label
const settingsRows = 2

func (s *Session) handleSettings(ev Event) {
	if s.stage > 0 {
		switch e := ev.(type) {
		case BufferAppend:
			s.buffer += string(e.Rune)
			s.inputError = ""
		case BufferBackspace:
			s.truncateBuffer()
		case Confirm:
			if s.buffer != "" {
				if s.listCursor == 0 {
					s.col.Config.Settings.DefaultOffice = s.buffer
				} else {
					s.col.Config.Settings.FlexCreditLabel = s.buffer
				}
				s.status = "setting saved"
			}
			s.stage = 0
			s.buffer = ""
		case Cancel:
			s.stage = 0
			s.buffer = ""
			s.inputError = ""
		}
		return
	}

	switch e := ev.(type) {
	case MoveSelection:
		s.listCursor = clamp(s.listCursor+e.Delta, settingsRows)
	case Confirm:
		s.beginSettingsEdit()
	case EnterMode:
		if e.Mode == ModeAdd {
			s.beginSettingsEdit()
		}
	case Cancel:
		s.returnToCalendar()
	case SwitchContext:
		s.switchFromList(e.Context)
	}
}

func (s *Session) beginSettingsEdit() {
	s.stage = 1
	if s.listCursor == 0 {
		s.buffer = s.col.Config.Settings.DefaultOffice
	} else {
		s.buffer = s.col.Config.Settings.FlexCreditLabel
	}
}

// =============================================================================
// ENTRY STAGES (shared by vacations and holidays)
// =============================================================================

func (s *Session) beginEntry(editIndex int) {
	s.stage = 1
	s.editIndex = editIndex
	s.fields = nil
	s.inputError = ""
	s.buffer = s.stagePrefill(1)
}

func (s *Session) stagePrefill(stage int) string {
	switch s.ctx {
	case ContextVacations:
		return s.vacationPrefill(stage)
	case ContextHolidays:
		return s.holidayPrefill(stage)
	}
	return ""
}

// handleEntryStage runs the generic multi-field collection loop. A date
// stage refuses to advance until the buffer parses; everything else is
// accepted verbatim.
func (s *Session) handleEntryStage(ev Event, fieldCount int, prefill func(int) string, commit func(), isDateStage func(int) bool) {
	switch e := ev.(type) {
	case BufferAppend:
		s.buffer += string(e.Rune)
		s.inputError = ""
	case BufferBackspace:
		s.truncateBuffer()
	case Confirm:
		if isDateStage(s.stage) {
			if _, err := calendar.ParseDate(s.buffer); err != nil {
				s.inputError = invalidDateMsg
				return
			}
		}
		s.fields = append(s.fields, s.buffer)
		if s.stage == fieldCount {
			commit()
			s.clearEntry()
			return
		}
		s.stage++
		s.buffer = prefill(s.stage)
		s.inputError = ""
	case Cancel:
		s.clearEntry()
	}
}

func (s *Session) clearEntry() {
	s.stage = 0
	s.buffer = ""
	s.fields = nil
	s.editIndex = -1
	s.inputError = ""
}

func (s *Session) resetListState() {
	s.listCursor = 0
	s.clearEntry()
}

func (s *Session) returnToCalendar() {
	s.ctx = ContextCalendar
	s.mode = ModeNormal
	s.resetListState()
}

func (s *Session) switchFromList(target Context) {
	s.ctx = target
	if target == ContextCalendar {
		s.mode = ModeNormal
	}
	s.resetListState()
}

func (s *Session) truncateBuffer() {
	if s.buffer != "" {
		r := []rune(s.buffer)
		s.buffer = string(r[:len(r)-1])
	}
	s.inputError = ""
}

// clamp keeps a cursor within [0, n-1], collapsing to 0 when n == 0.
func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// =============================================================================
// NAVIGATION + RECOMPUTE
// =============================================================================

func (s *Session) lookupQuarter() {
	if q, ok := s.col.Config.ByDate(s.anchor); ok {
		s.quarter = &q
	} else {
		s.quarter = nil
	}
}

func (s *Session) recompute() {
	if s.quarter != nil {
		stats := track.Calculate(track.Input{
			Key:        s.quarter.Key,
			Label:      s.quarter.Quarter + " " + s.quarter.Year,
			Period:     s.quarter.Period(),
			Holidays:   s.col.Holidays,
			Vacations:  s.col.Vacations,
			Attendance: s.col.Badges,
			Today:      s.today,
		})
		s.quarterStats = &stats
	} else {
		s.quarterStats = nil
	}

	year := strconv.Itoa(s.anchor.Year())
	if stats, ok := track.CalculateYear(s.col.Config, year, s.col.Holidays, s.col.Vacations, s.col.Badges, s.today); ok {
		s.yearStats = &stats
	} else {
		s.yearStats = nil
	}
}

// =============================================================================
// WHAT-IF + BACKUP
// =============================================================================

func (s *Session) restoreSnapshot() {
	*s.col.Badges = *s.snapshot
	s.snapshot = nil
	s.recompute()
}

func (s *Session) runBackup() {
	if s.backup == nil {
		s.status = "backup not configured"
		return
	}
	msg, err := s.backup.Backup(s.dataDir)
	if err != nil {
		s.status = fmt.Sprintf("backup failed: %v", err)
		return
	}
	s.status = msg
}

// =============================================================================
// ACCESSORS (consumed by rendering)
// =============================================================================

func (s *Session) Done() bool                        { return s.done }
func (s *Session) Context() Context                  { return s.ctx }
func (s *Session) Mode() Mode                        { return s.mode }
func (s *Session) Stage() int                        { return s.stage }
func (s *Session) Buffer() string                    { return s.buffer }
func (s *Session) InputError() string                { return s.inputError }
func (s *Session) Status() string                    { return s.status }
func (s *Session) Today() calendar.Date              { return s.today }
func (s *Session) Anchor() calendar.Date             { return s.anchor }
func (s *Session) Selected() calendar.Date           { return s.selected }
func (s *Session) ListCursor() int                   { return s.listCursor }
func (s *Session) DeleteCursor() int                 { return s.deleteCursor }
func (s *Session) EditIndex() int                    { return s.editIndex }
func (s *Session) WhatIfActive() bool                { return s.snapshot != nil }
func (s *Session) QuarterStats() *track.QuarterStats { return s.quarterStats }
func (s *Session) YearStats() *track.QuarterStats    { return s.yearStats }
func (s *Session) Collections() Collections          { return s.col }

// ActiveQuarter returns the catalog entry containing the anchor, if any.
func (s *Session) ActiveQuarter() (data.QuarterConfig, bool) {
	if s.quarter == nil {
		return data.QuarterConfig{}, false
	}
	return *s.quarter, true
}

// SearchResults evaluates the Search-mode buffer against the events.
func (s *Session) SearchResults() []data.Event {
	return s.col.Events.Search(s.buffer)
}
