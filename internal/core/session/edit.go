package session

import (
	"context"
	"strings"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/sheet"
)

// startEdit enters mode m with the buffer seeded from value.
func (s *Session) startEdit(m Mode, value string) {
	s.mode = m
	s.buffer = []rune(value)
}

// editLimit returns the maximum rune length of the field being edited.
func (s *Session) editLimit() int {
	switch s.mode {
	case ModeEditingNode:
		return hexgrid.MaxTextLen
	case ModeEditingListItem:
		return s.cursor.Position().Section.MaxLen()
	case ModeEditingCharacterField:
		return sheet.FieldMaxLen
	default:
		return 0
	}
}

// AppendRune adds r to the edit buffer unless the field is full.
func (s *Session) AppendRune(r rune) {
	if r == '\n' {
		s.Newline()
		return
	}
	if !s.mode.Editing() {
		return
	}
	if len(s.buffer) >= s.editLimit() {
		return
	}
	s.buffer = append(s.buffer, r)
}

// Newline adds a line break to the buffer of a multi-line list item.
func (s *Session) Newline() {
	if s.mode != ModeEditingListItem || !s.cursor.Position().Section.Multiline() {
		return
	}
	if len(s.buffer) >= s.editLimit() {
		return
	}
	s.buffer = append(s.buffer, '\n')
}

// Backspace removes the last rune of the buffer.
func (s *Session) Backspace() {
	if !s.mode.Editing() || len(s.buffer) == 0 {
		return
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
}

// commitEdit writes the trimmed buffer back to the edited field and
// persists the sheet. A failed save is logged; the in-memory value stays.
func (s *Session) commitEdit(ctx context.Context) {
	value := strings.TrimSpace(string(s.buffer))

	switch s.mode {
	case ModeEditingNode:
		s.grid.SetText(s.grid.Selected(), value)
	case ModeEditingListItem:
		s.lists.Set(s.cursor.Position(), value)
	case ModeEditingCharacterField:
		s.character.Set(s.field, value)
	default:
		return
	}

	s.endEdit()
	s.save(ctx)
}

// discardEdit leaves editing without touching the underlying field.
func (s *Session) discardEdit() {
	if s.mode.Editing() {
		s.endEdit()
	}
}

func (s *Session) endEdit() {
	s.mode = ModeNavigating
	s.buffer = nil
}

func (s *Session) save(ctx context.Context) {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(ctx, s.Sheet()); err != nil {
		s.log.Error().Err(err).Msg("failed to save character sheet")
	}
}
