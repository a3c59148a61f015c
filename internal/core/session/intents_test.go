package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/sections"
	"github.com/colonyops/hexsys/internal/core/sheet"
)

func typeString(s *Session, text string) {
	for _, r := range text {
		s.AppendRune(r)
	}
}

func TestEditBufferLimits(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
		limit int
	}{
		{
			name:  "node",
			setup: func(s *Session) { s.tab = TabCharacter },
			limit: hexgrid.MaxTextLen,
		},
		{
			name: "character field",
			setup: func(s *Session) {
				s.tab = TabCharacter
				s.ToggleFieldFocus()
			},
			limit: sheet.FieldMaxLen,
		},
		{
			name: "misfortune",
			setup: func(s *Session) {
				s.tab = TabLists
			},
			limit: 50,
		},
		{
			name: "difficulty",
			setup: func(s *Session) {
				s.tab = TabLists
				s.cursor.Set(sections.Position{Section: sections.MisfortunesDifficulty})
			},
			limit: 2,
		},
		{
			name: "resource",
			setup: func(s *Session) {
				s.tab = TabLists
				s.cursor.Set(sections.Position{Section: sections.Resources, Item: 9})
			},
			limit: 75,
		},
		{
			name: "notes",
			setup: func(s *Session) {
				s.tab = TabLists
				s.cursor.Set(sections.Position{Section: sections.Notes})
			},
			limit: 1000,
		},
		{
			name: "lesson",
			setup: func(s *Session) {
				s.tab = TabLists
				s.cursor.Set(sections.Position{Section: sections.Lessons, Item: 2})
			},
			limit: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestSession(t, sheet.Sheet{})
			tt.setup(s)

			s.Activate(ctx)
			require.True(t, s.Mode().Editing())

			typeString(s, strings.Repeat("x", tt.limit+10))
			assert.Len(t, []rune(s.Buffer()), tt.limit)

			s.Backspace()
			s.AppendRune('é')
			assert.Len(t, []rune(s.Buffer()), tt.limit)
			assert.True(t, strings.HasSuffix(s.Buffer(), "é"))
		})
	}
}

func TestNewline_OnlyInMultilineSections(t *testing.T) {
	tests := []struct {
		name    string
		tab     Tab
		pos     sections.Position
		newline bool
	}{
		{"node", TabCharacter, sections.Position{}, false},
		{"misfortune", TabLists, sections.Position{Section: sections.Misfortunes}, false},
		{"resource", TabLists, sections.Position{Section: sections.Resources}, false},
		{"notes", TabLists, sections.Position{Section: sections.Notes}, true},
		{"lesson", TabLists, sections.Position{Section: sections.Lessons, Item: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestSession(t, sheet.Sheet{})
			s.tab = tt.tab
			s.cursor.Set(tt.pos)

			s.Activate(ctx)
			typeString(s, "a")
			s.Activate(ctx)
			s.AppendRune('\n')
			typeString(s, "b")

			if tt.newline {
				assert.Equal(t, "a\n\nb", s.Buffer())
			} else {
				assert.Equal(t, "ab", s.Buffer())
			}
			assert.True(t, s.Mode().Editing(), "enter never leaves editing")
		})
	}
}

func TestEditNode_CommitAndDiscard(t *testing.T) {
	ctx := context.Background()
	var sh sheet.Sheet
	sh.Nodes[hexgrid.Center] = "Old"
	s, saver := newTestSession(t, sh)
	s.tab = TabCharacter

	s.Activate(ctx)
	require.Equal(t, ModeEditingNode, s.Mode())
	assert.Equal(t, "Old", s.Buffer(), "buffer starts from the current text")

	s.Backspace()
	s.Backspace()
	s.Backspace()
	typeString(s, "  Brave  ")
	s.Escape(ctx)

	assert.Equal(t, ModeNavigating, s.Mode())
	assert.Equal(t, "Brave", s.Grid().Node(hexgrid.Center).Text)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "Brave", saver.saved[0].Nodes[hexgrid.Center])

	s.Activate(ctx)
	typeString(s, "!!!")
	s.Cancel(ctx)

	assert.Equal(t, ModeNavigating, s.Mode())
	assert.Equal(t, "Brave", s.Grid().Node(hexgrid.Center).Text)
	assert.Empty(t, s.Buffer())
	assert.Len(t, saver.saved, 1, "discard does not save")
}

func TestEditListItem_Commit(t *testing.T) {
	ctx := context.Background()
	s, saver := newTestSession(t, sheet.Sheet{})
	s.tab = TabLists
	pos := sections.Position{Section: sections.Resources, Item: 4}
	s.cursor.Set(pos)

	s.Activate(ctx)
	require.Equal(t, ModeEditingListItem, s.Mode())
	typeString(s, "Rope")
	s.Commit(ctx)

	lists := s.Lists()
	assert.Equal(t, "Rope", lists.Get(pos))
	assert.Equal(t, ModeNavigating, s.Mode())
	assert.Len(t, saver.saved, 1)
}

func TestEditCharacterField_Commit(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	s.tab = TabCharacter
	s.ToggleFieldFocus()
	s.Right()
	require.Equal(t, sheet.FieldObjective, s.Field())

	s.Activate(ctx)
	require.Equal(t, ModeEditingCharacterField, s.Mode())
	typeString(s, "Find the well")
	s.Escape(ctx)

	assert.Equal(t, "Find the well", s.Character().Objective)
	assert.Empty(t, s.Character().Name)
}

func TestEditCommit_SaveFailureKeepsValue(t *testing.T) {
	ctx := context.Background()
	s, saver := newTestSession(t, sheet.Sheet{})
	saver.err = errors.New("disk full")
	s.tab = TabCharacter

	s.Activate(ctx)
	typeString(s, "Stubborn")
	s.Commit(ctx)

	assert.Equal(t, ModeNavigating, s.Mode())
	assert.Equal(t, "Stubborn", s.Grid().Node(hexgrid.Center).Text)
}

func TestEditing_BlocksNavigation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	s.tab = TabCharacter
	s.Activate(ctx)

	s.Up()
	s.Right()
	s.NextTab()
	s.Toggle()
	s.Reset()

	assert.Equal(t, ModeEditingNode, s.Mode())
	assert.Equal(t, TabCharacter, s.Tab())
	assert.Equal(t, hexgrid.Center, s.Grid().Selected())
}

func TestPopupTransitions(t *testing.T) {
	tests := []struct {
		name       string
		act        func(ctx context.Context, s *Session)
		wantMode   Mode
		wantLogged int
	}{
		{
			name:       "escape closes draw confirmation",
			act:        func(ctx context.Context, s *Session) { s.Escape(ctx) },
			wantMode:   ModeNavigating,
			wantLogged: 0,
		},
		{
			name:       "enter confirms draw",
			act:        func(ctx context.Context, s *Session) { s.Activate(ctx) },
			wantMode:   ModePopupConfirmRisk,
			wantLogged: 0,
		},
		{
			name: "escape declines risk and logs",
			act: func(ctx context.Context, s *Session) {
				s.Activate(ctx)
				s.Escape(ctx)
			},
			wantMode:   ModeNavigating,
			wantLogged: 1,
		},
		{
			name: "enter risks and logs",
			act: func(ctx context.Context, s *Session) {
				s.Activate(ctx)
				s.Activate(ctx)
			},
			wantMode:   ModeNavigating,
			wantLogged: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestSession(t, sheet.Sheet{})
			setCounts(s, 3, 3, 2)
			s.focus = FocusDrawInput

			s.Activate(ctx)
			require.Equal(t, ModePopupConfirmDraw, s.Mode())

			tt.act(ctx, s)

			assert.Equal(t, tt.wantMode, s.Mode())
			assert.Equal(t, tt.wantLogged, s.History().Len())
		})
	}
}

func TestActivate_DrawWidgets(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})

	s.focus = FocusRandom
	s.Activate(ctx)
	assert.True(t, s.RandomMode())

	s.focus = FocusForced
	s.Toggle()
	assert.True(t, s.ForcedFour())
	assert.Equal(t, MaxDrawCount, s.DrawCount())

	s.focus = FocusDrawInput
	s.Activate(ctx)
	assert.Equal(t, ModeNavigating, s.Mode(), "no draw without counts")
}

func TestToggle_PerTab(t *testing.T) {
	var sh sheet.Sheet
	sh.Nodes[hexgrid.Center] = "Keen"
	sh.Lists.Misfortunes[2] = "Wanted"
	sh.Lists.MisfortunesDifficulty[2] = "2"
	s, _ := newTestSession(t, sh)

	s.tab = TabCharacter
	s.Toggle()
	assert.True(t, s.TraitUsed(hexgrid.Center))

	s.tab = TabLists
	s.cursor.Set(sections.Position{Section: sections.MisfortunesDifficulty, Item: 2})
	s.Toggle()
	assert.Equal(t, 2, s.MisfortuneExtra(2))

	s.cursor.Set(sections.Position{Section: sections.Resources})
	s.Toggle()
	p, sec := s.Counts()
	assert.Equal(t, 1, p)
	assert.Equal(t, 2, sec)
}

func TestTabCycle(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})

	want := []Tab{TabCharacter, TabLists, TabLog, TabDraw}
	for _, w := range want {
		s.NextTab()
		assert.Equal(t, w, s.Tab())
	}

	s.SetTab(TabLog)
	assert.Equal(t, TabLog, s.Tab())
}

func TestCharacterTab_FieldFocus(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})
	s.tab = TabCharacter

	s.ToggleFieldFocus()
	assert.Equal(t, sheet.FieldName, s.Field())

	s.Down()
	assert.Equal(t, hexgrid.Center, s.Grid().Selected(), "honeycomb is frozen while a field has focus")

	s.Left()
	assert.Equal(t, sheet.FieldObjective, s.Field())

	s.ToggleFieldFocus()
	assert.Equal(t, sheet.FieldNone, s.Field())

	s.Right()
	assert.Equal(t, hexgrid.Next(hexgrid.Center), s.Grid().Selected())
}

func TestLogScroll_Bounded(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	s.tab = TabLog

	s.Down()
	assert.Equal(t, 0, s.LogScroll(), "empty log does not scroll")

	s.tab = TabDraw
	setCounts(s, 2, 2, 1)
	s.PerformFirstDraw(ctx)
	s.CancelDraw(ctx)
	s.tab = TabLog

	for range LogEntryLines + 5 {
		s.Down()
	}
	assert.Equal(t, LogEntryLines, s.LogScroll())

	for range LogEntryLines + 5 {
		s.Up()
	}
	assert.Equal(t, 0, s.LogScroll())
}

func TestListsScroll(t *testing.T) {
	var sh sheet.Sheet
	sh.Lists.Notes = strings.Repeat("n", 95)
	s, _ := newTestSession(t, sh)
	s.tab = TabLists
	pos := sections.Position{Section: sections.Notes}
	s.cursor.Set(pos)

	s.Down()
	assert.Equal(t, 0, s.Scroll(pos), "unrendered items do not scroll")

	s.Areas().Add(Rect{X: 0, Y: 0, W: 30, H: 3}, Target{Kind: TargetListItem, Item: pos})
	for range 10 {
		s.Down()
	}
	assert.Equal(t, 3, s.Scroll(pos))

	s.Up()
	assert.Equal(t, 2, s.Scroll(pos))
}

func TestClick(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})
	item := sections.Position{Section: sections.Lessons, Item: 1}

	a := s.Areas()
	a.Add(Rect{X: 0, Y: 0, W: 10, H: 1}, Target{Kind: TargetTab, Tab: TabLists})
	a.Add(Rect{X: 0, Y: 2, W: 5, H: 3}, Target{Kind: TargetDrawWidget, Focus: FocusForced})
	a.Add(Rect{X: 10, Y: 2, W: 14, H: 6}, Target{Kind: TargetNode, Node: 4})
	a.Add(Rect{X: 0, Y: 10, W: 40, H: 2}, Target{Kind: TargetListItem, Item: item})
	a.Add(Rect{X: 0, Y: 20, W: 20, H: 1}, Target{Kind: TargetField, Field: sheet.FieldObjective})

	s.Click(3, 0)
	assert.Equal(t, TabLists, s.Tab())

	s.Click(4, 4)
	assert.Equal(t, FocusForced, s.Focus())
	assert.False(t, s.ForcedFour(), "clicking a toggle only focuses it")

	s.Click(19, 20)
	assert.Equal(t, sheet.FieldObjective, s.Field())

	s.Click(23, 7)
	assert.Equal(t, 4, s.Grid().Selected())
	assert.Equal(t, sheet.FieldNone, s.Field())

	s.Click(39, 11)
	assert.Equal(t, item, s.Cursor())

	s.Click(50, 50)
	assert.Equal(t, item, s.Cursor(), "misses change nothing")
}

func TestClick_IgnoredOutsideNavigation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	s.Areas().Add(Rect{X: 0, Y: 0, W: 10, H: 1}, Target{Kind: TargetTab, Tab: TabLog})

	s.tab = TabCharacter
	s.Activate(ctx)
	require.Equal(t, ModeEditingNode, s.Mode())

	s.Click(1, 0)
	assert.Equal(t, TabCharacter, s.Tab())

	s.Escape(ctx)
	s.Click(1, 0)
	assert.Equal(t, TabLog, s.Tab())
}

func TestAreasReset(t *testing.T) {
	a := NewAreas()
	a.Add(Rect{W: 1, H: 1}, Target{})
	require.Equal(t, 1, a.Len())

	a.Reset()

	assert.Equal(t, 0, a.Len())
	_, ok := a.Hit(0, 0)
	assert.False(t, ok)
}
