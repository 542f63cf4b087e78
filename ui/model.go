/*
Package ui hosts the Bubble Tea program for the attendance tracker.

The Model is a thin adapter: it translates key presses into session
events, hands them to the state machine, and renders whatever the
session and the calculation engine report. No attendance logic lives
here.
*/
package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/warp/attendance-engine/session"
)

// Model contains the UI state around one running session.
type Model struct {
	s    *session.Session
	keys keyMap

	termWidth  int
	termHeight int
}

// New creates the UI model for a session.
func New(s *session.Session) *Model {
	return &Model{s: s, keys: defaultKeyMap()}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case tea.KeyPressMsg:
		m.handleKey(msg.String())
		if m.s.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleKey maps one key string onto the session event vocabulary.
// Dispatch depends on whether the session is collecting text: inside a
// buffer, printable runes append and only enter/esc/backspace act.
func (m *Model) handleKey(k string) {
	// ctrl+c quits from anywhere
	if k == "ctrl+c" {
		m.forceQuit()
		return
	}

	if m.collectingText() {
		switch {
		case matches(k, m.keys.Confirm):
			m.s.Handle(session.Confirm{})
		case matches(k, m.keys.Cancel):
			m.s.Handle(session.Cancel{})
		case matches(k, m.keys.Erase):
			m.s.Handle(session.BufferBackspace{})
		default:
			for _, r := range k {
				m.s.Handle(session.BufferAppend{Rune: r})
			}
		}
		return
	}

	switch {
	case matches(k, m.keys.Quit):
		// q ends the session only from the idle calendar; elsewhere it
		// steps back like esc
		if m.atIdleCalendar() {
			m.s.Handle(session.Quit{})
		} else {
			m.s.Handle(session.Cancel{})
		}
	case matches(k, m.keys.Left):
		m.s.Handle(m.horizontalMove(-1))
	case matches(k, m.keys.Right):
		m.s.Handle(m.horizontalMove(1))
	case matches(k, m.keys.Up):
		m.s.Handle(m.verticalMove(-1))
	case matches(k, m.keys.Down):
		m.s.Handle(m.verticalMove(1))
	case matches(k, m.keys.PrevQ):
		m.s.Handle(session.ShiftQuarter{Delta: -1})
	case matches(k, m.keys.NextQ):
		m.s.Handle(session.ShiftQuarter{Delta: 1})
	case matches(k, m.keys.Toggle):
		m.s.Handle(session.ToggleAttendance{})
	case matches(k, m.keys.Flex):
		m.s.Handle(session.ToggleFlex{})
	case matches(k, m.keys.Add):
		m.s.Handle(session.EnterMode{Mode: session.ModeAdd})
	case matches(k, m.keys.Delete):
		m.s.Handle(session.EnterMode{Mode: session.ModeDelete})
	case matches(k, m.keys.Search):
		if m.s.Context() == session.ContextCalendar {
			m.s.Handle(session.EnterMode{Mode: session.ModeSearch})
		}
	case matches(k, m.keys.Vacay):
		m.s.Handle(session.SwitchContext{Context: session.ContextVacations})
	case matches(k, m.keys.Holiday):
		m.s.Handle(session.SwitchContext{Context: session.ContextHolidays})
	case matches(k, m.keys.Setting):
		m.s.Handle(session.SwitchContext{Context: session.ContextSettings})
	case matches(k, m.keys.WhatIf):
		if m.s.WhatIfActive() {
			m.s.Handle(session.ExitWhatIf{})
		} else {
			m.s.Handle(session.EnterWhatIf{})
		}
	case matches(k, m.keys.Backup):
		m.s.Handle(session.RequestBackup{})
	case matches(k, m.keys.Confirm):
		m.s.Handle(session.Confirm{})
	case matches(k, m.keys.Cancel):
		m.s.Handle(session.Cancel{})
	}
}

func (m *Model) atIdleCalendar() bool {
	return m.s.Context() == session.ContextCalendar && m.s.Mode() == session.ModeNormal
}

// forceQuit cancels whatever is in progress until the idle calendar is
// reached, then ends the session.
func (m *Model) forceQuit() {
	for i := 0; i < 2 && !m.atIdleCalendar(); i++ {
		m.s.Handle(session.Cancel{})
	}
	m.s.Handle(session.Quit{})
}

// collectingText reports whether key presses should feed the input
// buffer instead of triggering commands.
func (m *Model) collectingText() bool {
	if m.s.Context() == session.ContextCalendar {
		mode := m.s.Mode()
		return mode == session.ModeAdd || mode == session.ModeSearch
	}
	return m.s.Stage() > 0
}

// horizontalMove is one day on the calendar; list contexts have no
// horizontal axis.
func (m *Model) horizontalMove(delta int) session.Event {
	if m.s.Context() == session.ContextCalendar && m.s.Mode() == session.ModeNormal {
		return session.MoveSelection{Delta: delta}
	}
	return session.MoveSelection{Delta: 0}
}

// verticalMove is one week on the calendar, one row everywhere else.
func (m *Model) verticalMove(delta int) session.Event {
	if m.s.Context() == session.ContextCalendar && m.s.Mode() == session.ModeNormal {
		return session.MoveSelection{Delta: 7 * delta}
	}
	return session.MoveSelection{Delta: delta}
}
