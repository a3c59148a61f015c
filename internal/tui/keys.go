package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/hexsys/internal/core/session"
)

// keyMap holds every binding of the TUI. Navigation bindings are only
// consulted while navigating; while editing, any printable key is text.
type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
	NextTab     key.Binding
	Tab1        key.Binding
	Tab2        key.Binding
	Tab3        key.Binding
	Tab4        key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Activate    key.Binding
	Toggle      key.Binding
	FieldFocus  key.Binding
	Draw        key.Binding
	Reset       key.Binding
	Escape      key.Binding
	Backspace   key.Binding
	Commit      key.Binding
	Discard     key.Binding
	ModalSwitch key.Binding
	ModalYes    key.Binding
	ModalNo     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1-4", "jump to tab")),
		Tab2: key.NewBinding(key.WithKeys("2")),
		Tab3: key.NewBinding(key.WithKeys("3")),
		Tab4: key.NewBinding(key.WithKeys("4")),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space", "toggle"),
		),
		FieldFocus: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "name/objective"),
		),
		Draw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "draw"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "done"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Commit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Discard: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "discard"),
		),
		ModalSwitch: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab"),
			key.WithHelp("←/→", "switch"),
		),
		ModalYes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		ModalNo: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// helpKeys adapts the key map to the help bubble for the current mode.
type helpKeys struct {
	keys keyMap
	mode session.Mode
	tab  session.Tab
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.keys
	switch {
	case h.mode.Editing():
		return []key.Binding{k.Escape, k.Discard, k.Backspace}
	case h.mode.Popup():
		return []key.Binding{k.ModalSwitch, k.Activate, k.Escape}
	}

	switch h.tab {
	case session.TabDraw:
		return []key.Binding{k.NextTab, k.Left, k.Up, k.Activate, k.Draw, k.Reset, k.Help, k.Quit}
	case session.TabCharacter:
		return []key.Binding{k.NextTab, k.Activate, k.Toggle, k.FieldFocus, k.Help, k.Quit}
	case session.TabLists:
		return []key.Binding{k.NextTab, k.Activate, k.Toggle, k.Help, k.Quit}
	default:
		return []key.Binding{k.NextTab, k.Up, k.Down, k.Help, k.Quit}
	}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	k := h.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextTab, k.Tab1, k.Activate, k.Toggle},
		{k.Draw, k.Reset, k.FieldFocus},
		{k.Escape, k.Commit, k.Discard},
		{k.Help, k.Quit},
	}
}
