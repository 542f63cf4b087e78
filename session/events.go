package session

// =============================================================================
// EVENT VOCABULARY
// =============================================================================
// Physical key bindings are a presentation concern; the session consumes
// only this finite event set. The ui package maps keys onto it.

type Event interface{ isEvent() }

// MoveSelection moves the selected calendar day (Calendar context) or the
// list cursor (list contexts) by a signed delta.
type MoveSelection struct{ Delta int }

// ShiftQuarter moves the navigation anchor by whole quarters.
type ShiftQuarter struct{ Delta int }

// ToggleAttendance toggles an office badge-in on the selected day.
type ToggleAttendance struct{}

// ToggleFlex toggles a flex-credit badge-in on the selected day.
type ToggleFlex struct{}

// EnterMode activates a Calendar input mode, or starts an add (ModeAdd)
// or row delete (ModeDelete) in a list context.
type EnterMode struct{ Mode Mode }

// ExitMode returns to the idle mode without applying anything.
type ExitMode struct{}

// SwitchContext activates a full-screen context.
type SwitchContext struct{ Context Context }

// BufferAppend appends one character to the active input buffer.
type BufferAppend struct{ Rune rune }

// BufferBackspace removes the last character of the active input buffer.
type BufferBackspace struct{}

// Confirm applies the buffered input: advance an entry stage, commit a
// Calendar-mode operation, or begin editing the selected list row.
type Confirm struct{}

// Cancel discards in-progress input and returns to the idle mode/stage;
// from a browsing list context it returns to Calendar.
type Cancel struct{}

// Quit ends the session. An active what-if simulation is exited first.
type Quit struct{}

// EnterWhatIf starts attendance simulation; ExitWhatIf discards every
// simulated change.
type EnterWhatIf struct{}
type ExitWhatIf struct{}

// RequestBackup triggers the external backup action.
type RequestBackup struct{}

func (MoveSelection) isEvent()    {}
func (ShiftQuarter) isEvent()     {}
func (ToggleAttendance) isEvent() {}
func (ToggleFlex) isEvent()       {}
func (EnterMode) isEvent()        {}
func (ExitMode) isEvent()         {}
func (SwitchContext) isEvent()    {}
func (BufferAppend) isEvent()     {}
func (BufferBackspace) isEvent()  {}
func (Confirm) isEvent()          {}
func (Cancel) isEvent()           {}
func (Quit) isEvent()             {}
func (EnterWhatIf) isEvent()      {}
func (ExitWhatIf) isEvent()       {}
func (RequestBackup) isEvent()    {}

// =============================================================================
// CONTEXTS AND MODES
// =============================================================================

// Context is the active full-screen view. Exactly one is active.
type Context int

const (
	ContextCalendar Context = iota
	ContextVacations
	ContextHolidays
	ContextSettings
)

func (c Context) String() string {
	switch c {
	case ContextVacations:
		return "Vacations"
	case ContextHolidays:
		return "Holidays"
	case ContextSettings:
		return "Settings"
	default:
		return "Calendar"
	}
}

// Mode is the Calendar input mode. It is meaningless outside the
// Calendar context.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeDelete
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "Add"
	case ModeDelete:
		return "Delete"
	case ModeSearch:
		return "Search"
	default:
		return "Normal"
	}
}
