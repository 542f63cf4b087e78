package ui

import "charm.land/bubbles/v2/key"

// keyMap declares the physical bindings. The session consumes named
// events only; everything key-shaped lives here.
type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	PrevQ   key.Binding
	NextQ   key.Binding
	Toggle  key.Binding
	Flex    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Search  key.Binding
	Vacay   key.Binding
	Holiday key.Binding
	Setting key.Binding
	WhatIf  key.Binding
	Backup  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Erase   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "move day")),
		Right:   key.NewBinding(key.WithKeys("right")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "move week/row")),
		Down:    key.NewBinding(key.WithKeys("down")),
		PrevQ:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p/n", "quarter")),
		NextQ:   key.NewBinding(key.WithKeys("n")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "badge in")),
		Flex:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flex")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Search:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Vacay:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vacations")),
		Holiday: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "holidays")),
		Setting: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "settings")),
		WhatIf:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "what-if")),
		Backup:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "backup")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Erase:   key.NewBinding(key.WithKeys("backspace")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// matches tests a key string against a binding's declared keys.
func matches(k string, b key.Binding) bool {
	for _, bound := range b.Keys() {
		if k == bound {
			return true
		}
	}
	return false
}
