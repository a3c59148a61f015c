// Package tui is the bubbletea front end of a draw session. It translates
// key and mouse events into session intents and renders the session state.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/hexsys/internal/core/session"
)

// Options configures a Model.
type Options struct {
	// SheetPath is shown in the status line.
	SheetPath string
}

// Model is the root bubbletea model.
type Model struct {
	ctx       context.Context
	s         *session.Session
	opts      Options
	keys      keyMap
	help      help.Model
	modal     Modal
	modalMode session.Mode
	width     int
	height    int
	quitting  bool
}

// New creates a model driving s.
func New(ctx context.Context, s *session.Session, opts Options) Model {
	return Model{
		ctx:  ctx,
		s:    s,
		opts: opts,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Session returns the driven session.
func (m Model) Session() *session.Session { return m.s }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window, key and mouse messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	if m.s.Mode().Editing() {
		log.Debug().Str("mode", m.s.Mode().String()).Msg("quit discards edit")
	}
	return m, tea.Quit
}

// handleKey routes a key press by interaction mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	mode := m.s.Mode()
	switch {
	case mode.Popup():
		m = m.handlePopupKey(msg)
	case mode.Editing():
		m = m.handleEditKey(msg)
	default:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		m = m.handleNavKey(msg)
	}

	m.syncModal()
	return m, nil
}

func (m Model) handleNavKey(msg tea.KeyMsg) Model {
	s := m.s
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextTab):
		s.NextTab()
	case key.Matches(msg, m.keys.Tab1):
		s.SetTab(session.TabDraw)
	case key.Matches(msg, m.keys.Tab2):
		s.SetTab(session.TabCharacter)
	case key.Matches(msg, m.keys.Tab3):
		s.SetTab(session.TabLists)
	case key.Matches(msg, m.keys.Tab4):
		s.SetTab(session.TabLog)
	case key.Matches(msg, m.keys.Up):
		s.Up()
	case key.Matches(msg, m.keys.Down):
		s.Down()
	case key.Matches(msg, m.keys.Left):
		s.Left()
	case key.Matches(msg, m.keys.Right):
		s.Right()
	case key.Matches(msg, m.keys.Activate):
		s.Activate(m.ctx)
	case key.Matches(msg, m.keys.Toggle):
		s.Toggle()
	case key.Matches(msg, m.keys.FieldFocus):
		s.ToggleFieldFocus()
	case key.Matches(msg, m.keys.Draw):
		s.RequestDraw()
	case key.Matches(msg, m.keys.Reset):
		s.Reset()
	case key.Matches(msg, m.keys.Escape):
		s.Escape(m.ctx)
	}
	return m
}

// handleEditKey treats every printable key as text. Only control keys
// carry editing commands.
func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	s := m.s
	switch {
	case key.Matches(msg, m.keys.Escape):
		s.Escape(m.ctx)
	case key.Matches(msg, m.keys.Commit):
		s.Commit(m.ctx)
	case key.Matches(msg, m.keys.Discard):
		s.Cancel(m.ctx)
	case key.Matches(msg, m.keys.Activate):
		s.Activate(m.ctx)
	case key.Matches(msg, m.keys.Backspace):
		s.Backspace()
	case msg.Type == tea.KeySpace:
		s.AppendRune(' ')
	case msg.Type == tea.KeyRunes && !msg.Paste:
		for _, r := range msg.Runes {
			s.AppendRune(r)
		}
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '\n' {
				s.Newline()
				continue
			}
			s.AppendRune(r)
		}
	}
	return m
}

func (m Model) handlePopupKey(msg tea.KeyMsg) Model {
	s := m.s
	switch {
	case key.Matches(msg, m.keys.ModalSwitch):
		m.modal.ToggleSelection()
	case key.Matches(msg, m.keys.Activate):
		if m.modal.ConfirmSelected() {
			s.Commit(m.ctx)
		} else {
			s.Cancel(m.ctx)
		}
	case key.Matches(msg, m.keys.ModalYes):
		s.Commit(m.ctx)
	case key.Matches(msg, m.keys.ModalNo), key.Matches(msg, m.keys.Escape):
		s.Cancel(m.ctx)
	}
	return m
}

// handleMouse turns a left click into a selection and the wheel into log
// scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.s.Click(msg.X, msg.Y)
	case tea.MouseButtonWheelUp:
		if m.s.Tab() == session.TabLog {
			m.s.Up()
		}
	case tea.MouseButtonWheelDown:
		if m.s.Tab() == session.TabLog {
			m.s.Down()
		}
	}
	return m, nil
}

// syncModal opens a fresh modal when the session enters a popup and hides
// it when the popup closes.
func (m *Model) syncModal() {
	mode := m.s.Mode()
	if mode == m.modalMode {
		return
	}
	m.modalMode = mode

	switch mode {
	case session.ModePopupConfirmDraw:
		p, r := m.s.Counts()
		m.modal = NewModal(
			"Draw tokens?",
			fmt.Sprintf("Draw %d from a pool of %d white and %d red.", m.s.DrawCount(), p, r),
		).WithLabels("Draw", "Cancel")
	case session.ModePopupConfirmRisk:
		remaining := session.RiskTarget - len(m.s.Drawn())
		m.modal = NewModal(
			"Risk it?",
			fmt.Sprintf("Draw %d more to reach %d tokens.", remaining, session.RiskTarget),
		).WithLabels("Risk", "Keep")
	default:
		m.modal = Modal{}
	}
}
