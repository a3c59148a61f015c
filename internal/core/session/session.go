// Package session implements the interaction state machine of a draw
// session. A Session owns the token counters and turn modifiers, the
// honeycomb, the list cursor, the character sheet text and the draw
// history, and routes driver-agnostic intents to them according to the
// current Mode.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/sections"
	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/core/token"
)

const (
	// MaxTokens caps the manually set primary and secondary counts.
	MaxTokens = 20
	// MinDrawCount and MaxDrawCount bound the first draw size.
	MinDrawCount = 1
	MaxDrawCount = 4
	// RiskTarget is the total number of tokens after a risk draw.
	RiskTarget = 5
	// LogEntryLines is the rendered height of one history entry, used to
	// bound log scrolling.
	LogEntryLines = 13
)

// Tab is a top-level view.
type Tab int

const (
	TabDraw Tab = iota
	TabCharacter
	TabLists
	TabLog
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabDraw, TabCharacter, TabLists, TabLog}

func (t Tab) String() string {
	switch t {
	case TabDraw:
		return "Draw"
	case TabCharacter:
		return "Character"
	case TabLists:
		return "Lists"
	case TabLog:
		return "Log"
	default:
		return "Unknown"
	}
}

// Next returns the following tab, wrapping to the first.
func (t Tab) Next() Tab { return Tabs[(int(t)+1)%len(Tabs)] }

// Focus is the focused widget on the draw tab.
type Focus int

const (
	FocusWhite Focus = iota
	FocusRed
	FocusDrawInput
	FocusRandom
	FocusForced
)

func (f Focus) String() string {
	switch f {
	case FocusWhite:
		return "White"
	case FocusRed:
		return "Red"
	case FocusDrawInput:
		return "Draw"
	case FocusRandom:
		return "Random"
	case FocusForced:
		return "Forced"
	default:
		return "Unknown"
	}
}

// focusOrder is the right-arrow order of the draw tab widgets.
var focusOrder = []Focus{FocusWhite, FocusRed, FocusRandom, FocusForced, FocusDrawInput}

// Next returns the widget to the right, wrapping.
func (f Focus) Next() Focus { return focusOrder[(f.order()+1)%len(focusOrder)] }

// Prev returns the widget to the left, wrapping.
func (f Focus) Prev() Focus {
	return focusOrder[(f.order()+len(focusOrder)-1)%len(focusOrder)]
}

func (f Focus) order() int {
	for i, o := range focusOrder {
		if o == f {
			return i
		}
	}
	return 0
}

// Mode is the interaction mode. Exactly one is active at a time.
type Mode int

const (
	ModeNavigating Mode = iota
	ModeEditingNode
	ModeEditingListItem
	ModeEditingCharacterField
	ModePopupConfirmDraw
	ModePopupConfirmRisk
)

func (m Mode) String() string {
	switch m {
	case ModeNavigating:
		return "navigating"
	case ModeEditingNode:
		return "editing node"
	case ModeEditingListItem:
		return "editing list item"
	case ModeEditingCharacterField:
		return "editing character field"
	case ModePopupConfirmDraw:
		return "confirm draw"
	case ModePopupConfirmRisk:
		return "confirm risk"
	default:
		return "unknown"
	}
}

// Editing reports whether m owns an edit buffer.
func (m Mode) Editing() bool {
	return m == ModeEditingNode || m == ModeEditingListItem || m == ModeEditingCharacterField
}

// Popup reports whether m is a confirmation popup.
func (m Mode) Popup() bool {
	return m == ModePopupConfirmDraw || m == ModePopupConfirmRisk
}

// SheetSaver persists the character sheet after an edit is committed.
type SheetSaver interface {
	Save(ctx context.Context, sh sheet.Sheet) error
}

// Deps are the collaborators of a Session. Zero values get defaults.
type Deps struct {
	Sheet   sheet.Sheet
	History *history.History
	Saver   SheetSaver
	Rand    token.Rand
	Logger  zerolog.Logger
	Now     func() time.Time
	NewID   func() string
}

// Session is the state of one interactive draw session.
type Session struct {
	// draw state
	primary    int
	secondary  int
	drawCount  int
	random     bool
	forced     bool
	usedTraits []int
	extra      [history.MisfortuneSlots]int
	pool       *token.Pool
	drawn      []token.Kind
	firstDraw  []token.Kind

	// sheet state
	grid      *hexgrid.Grid
	cursor    *sections.Cursor
	character sheet.Character
	lists     sheet.Lists

	// interaction state
	mode      Mode
	buffer    []rune
	tab       Tab
	focus     Focus
	field     sheet.Field
	logScroll int
	areas     *Areas

	history *history.History
	saver   SheetSaver
	rng     token.Rand
	now     func() time.Time
	newID   func() string
	log     zerolog.Logger
}

// New creates a session from deps.
func New(deps Deps) *Session {
	s := &Session{
		drawCount: MinDrawCount,
		grid:      hexgrid.New(deps.Sheet.Nodes[:]),
		cursor:    sections.NewCursor(),
		character: deps.Sheet.Character,
		lists:     deps.Sheet.Lists,
		areas:     NewAreas(),
		history:   deps.History,
		saver:     deps.Saver,
		rng:       deps.Rand,
		now:       deps.Now,
		newID:     deps.NewID,
		log:       deps.Logger,
	}

	if s.history == nil {
		s.history = history.New(nil)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

// Mode returns the active interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Tab returns the current tab.
func (s *Session) Tab() Tab { return s.tab }

// Focus returns the focused draw tab widget.
func (s *Session) Focus() Focus { return s.focus }

// Field returns the focused character field, FieldNone when the honeycomb
// has focus.
func (s *Session) Field() sheet.Field { return s.field }

// Counts returns the primary and secondary counts.
func (s *Session) Counts() (primary, secondary int) { return s.primary, s.secondary }

// DrawCount returns the size of the first draw.
func (s *Session) DrawCount() int { return s.drawCount }

// RandomMode reports whether confusion is active for this turn.
func (s *Session) RandomMode() bool { return s.random }

// ForcedFour reports whether adrenaline is active for this turn.
func (s *Session) ForcedFour() bool { return s.forced }

// UsedTraits returns the node indices used as traits this turn.
func (s *Session) UsedTraits() []int { return append([]int(nil), s.usedTraits...) }

// TraitUsed reports whether node i is used as a trait this turn.
func (s *Session) TraitUsed(i int) bool {
	for _, t := range s.usedTraits {
		if t == i {
			return true
		}
	}
	return false
}

// MisfortuneExtra returns the extra difficulty added by misfortune i.
func (s *Session) MisfortuneExtra(i int) int {
	if i < 0 || i >= len(s.extra) {
		return 0
	}
	return s.extra[i]
}

// Drawn returns the tokens drawn in the current or last turn.
func (s *Session) Drawn() []token.Kind { return append([]token.Kind(nil), s.drawn...) }

// PoolLen returns the number of tokens left in the current pool.
func (s *Session) PoolLen() int { return s.pool.Len() }

// Grid returns the honeycomb. Callers must treat it as read-only.
func (s *Session) Grid() *hexgrid.Grid { return s.grid }

// Cursor returns the list cursor position.
func (s *Session) Cursor() sections.Position { return s.cursor.Position() }

// Scroll returns the text scroll offset of list item p.
func (s *Session) Scroll(p sections.Position) int { return s.cursor.Scroll(p) }

// Character returns the character base info.
func (s *Session) Character() sheet.Character { return s.character }

// Lists returns a copy of the list texts.
func (s *Session) Lists() sheet.Lists { return s.lists }

// Sheet returns the full sheet as it would be persisted.
func (s *Session) Sheet() sheet.Sheet {
	sh := sheet.Sheet{Character: s.character, Lists: s.lists}
	copy(sh.Nodes[:], s.grid.Texts())
	return sh
}

// History returns the draw history.
func (s *Session) History() *history.History { return s.history }

// LogScroll returns the log tab scroll offset in lines.
func (s *Session) LogScroll() int { return s.logScroll }

// Buffer returns the edit buffer contents.
func (s *Session) Buffer() string { return string(s.buffer) }

// Areas returns the hit-region registry the renderer fills in.
func (s *Session) Areas() *Areas { return s.areas }
