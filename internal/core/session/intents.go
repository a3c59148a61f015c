package session

import (
	"context"

	"github.com/colonyops/hexsys/internal/core/sections"
	"github.com/colonyops/hexsys/internal/core/sheet"
)

// NextTab moves to the following tab.
func (s *Session) NextTab() {
	if s.mode != ModeNavigating {
		return
	}
	s.tab = s.tab.Next()
}

// SetTab jumps to tab t.
func (s *Session) SetTab(t Tab) {
	if s.mode != ModeNavigating {
		return
	}
	s.tab = t
}

// Activate handles the enter intent. While navigating it activates the
// focused widget, in a popup it confirms, and while editing a multi-line
// list item it inserts a newline.
func (s *Session) Activate(ctx context.Context) {
	switch {
	case s.mode.Popup():
		s.Commit(ctx)
	case s.mode.Editing():
		s.Newline()
	default:
		s.activateFocused()
	}
}

func (s *Session) activateFocused() {
	switch s.tab {
	case TabDraw:
		switch s.focus {
		case FocusDrawInput:
			s.RequestDraw()
		case FocusRandom:
			s.ToggleRandom()
		case FocusForced:
			s.ToggleForced()
		}
	case TabCharacter:
		if s.field != sheet.FieldNone {
			s.startEdit(ModeEditingCharacterField, s.character.Get(s.field))
			return
		}
		s.startEdit(ModeEditingNode, s.grid.Node(s.grid.Selected()).Text)
	case TabLists:
		s.startEdit(ModeEditingListItem, s.lists.Get(s.cursor.Position()))
	}
}

// Escape handles the escape intent: text edits are committed and popups
// are cancelled.
func (s *Session) Escape(ctx context.Context) {
	if s.mode.Editing() {
		s.Commit(ctx)
		return
	}
	s.Cancel(ctx)
}

// Commit confirms the active popup or writes the edit buffer back to its
// field and persists the sheet.
func (s *Session) Commit(ctx context.Context) {
	switch s.mode {
	case ModePopupConfirmDraw:
		s.PerformFirstDraw(ctx)
	case ModePopupConfirmRisk:
		s.PerformRiskDraw(ctx)
	case ModeEditingNode, ModeEditingListItem, ModeEditingCharacterField:
		s.commitEdit(ctx)
	}
}

// Cancel leaves the active popup or edit. Text edits are discarded. A
// declined risk draw still logs the turn.
func (s *Session) Cancel(ctx context.Context) {
	switch s.mode {
	case ModePopupConfirmDraw:
		s.mode = ModeNavigating
	case ModePopupConfirmRisk:
		s.CancelDraw(ctx)
	case ModeEditingNode, ModeEditingListItem, ModeEditingCharacterField:
		s.discardEdit()
	}
}

// Toggle uses the selected trait or misfortune, or flips the focused draw
// modifier.
func (s *Session) Toggle() {
	if s.mode != ModeNavigating {
		return
	}

	switch s.tab {
	case TabDraw:
		switch s.focus {
		case FocusRandom:
			s.ToggleRandom()
		case FocusForced:
			s.ToggleForced()
		}
	case TabCharacter:
		if s.field == sheet.FieldNone {
			s.ToggleTrait(s.grid.Selected())
		}
	case TabLists:
		p := s.cursor.Position()
		if p.Section == sections.Misfortunes || p.Section == sections.MisfortunesDifficulty {
			s.ToggleMisfortune(p.Item)
		}
	}
}

// ToggleFieldFocus moves character tab focus between the honeycomb and
// the name field.
func (s *Session) ToggleFieldFocus() {
	if s.mode != ModeNavigating || s.tab != TabCharacter {
		return
	}
	if s.field == sheet.FieldNone {
		s.field = sheet.FieldName
		return
	}
	s.field = sheet.FieldNone
}

// Up handles the up intent for the current tab.
func (s *Session) Up() {
	if s.mode != ModeNavigating {
		return
	}

	switch s.tab {
	case TabDraw:
		s.Increment()
	case TabCharacter:
		if s.field == sheet.FieldNone {
			s.grid.MoveUp()
		}
	case TabLists:
		s.cursor.Up()
	case TabLog:
		if s.logScroll > 0 {
			s.logScroll--
		}
	}
}

// Down handles the down intent for the current tab.
func (s *Session) Down() {
	if s.mode != ModeNavigating {
		return
	}

	switch s.tab {
	case TabDraw:
		s.Decrement()
	case TabCharacter:
		if s.field == sheet.FieldNone {
			s.grid.MoveDown()
		}
	case TabLists:
		p := s.cursor.Position()
		s.cursor.Down(len([]rune(s.lists.Get(p))), s.areas.ViewportWidth(p))
	case TabLog:
		if s.logScroll < s.history.Len()*LogEntryLines {
			s.logScroll++
		}
	}
}

// Right handles the right intent for the current tab.
func (s *Session) Right() {
	if s.mode != ModeNavigating {
		return
	}

	switch s.tab {
	case TabDraw:
		s.focus = s.focus.Next()
	case TabCharacter:
		if s.field != sheet.FieldNone {
			s.field = s.field.Next()
			return
		}
		s.grid.MoveNext()
	case TabLists:
		s.cursor.Next()
	}
}

// Left handles the left intent for the current tab.
func (s *Session) Left() {
	if s.mode != ModeNavigating {
		return
	}

	switch s.tab {
	case TabDraw:
		s.focus = s.focus.Prev()
	case TabCharacter:
		if s.field != sheet.FieldNone {
			s.field = s.field.Next()
			return
		}
		s.grid.MovePrev()
	case TabLists:
		s.cursor.Prev()
	}
}
