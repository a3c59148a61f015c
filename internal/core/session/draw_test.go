package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/hexsys/internal/core/sheet"
)

func TestIncrement_Caps(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 25, 30, 9)

	p, sec := s.Counts()
	assert.Equal(t, MaxTokens, p)
	assert.Equal(t, MaxTokens, sec)
	assert.Equal(t, MaxDrawCount, s.DrawCount())
}

func TestDecrement_Floors(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})

	for _, f := range []Focus{FocusWhite, FocusRed, FocusDrawInput} {
		s.focus = f
		s.Down()
	}

	p, sec := s.Counts()
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, sec)
	assert.Equal(t, MinDrawCount, s.DrawCount())
}

func TestDrawCount_LockedByForcedFour(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})
	s.ToggleForced()
	s.focus = FocusDrawInput

	s.Down()
	assert.Equal(t, MaxDrawCount, s.DrawCount())

	s.ToggleForced()
	assert.Equal(t, MinDrawCount, s.DrawCount())
	s.Up()
	assert.Equal(t, 2, s.DrawCount())
}

func TestToggleTrait(t *testing.T) {
	var sh sheet.Sheet
	sh.Nodes[3] = "Quick"
	sh.Nodes[9] = "Scout"

	s, _ := newTestSession(t, sh)

	s.ToggleTrait(0)
	assert.Empty(t, s.UsedTraits(), "unset nodes cannot be traits")

	s.ToggleTrait(3)
	s.ToggleTrait(9)
	p, _ := s.Counts()
	assert.Equal(t, 2, p)
	assert.True(t, s.TraitUsed(3))

	s.ToggleTrait(3)
	p, _ = s.Counts()
	assert.Equal(t, 1, p)
	assert.Equal(t, []int{9}, s.UsedTraits())
}

func TestDecrementWhite_PopsTrait(t *testing.T) {
	var sh sheet.Sheet
	sh.Nodes[1] = "a"
	sh.Nodes[2] = "b"
	s, _ := newTestSession(t, sh)

	s.ToggleTrait(1)
	s.ToggleTrait(2)
	s.focus = FocusWhite
	s.Down()

	assert.Equal(t, []int{1}, s.UsedTraits())
}

func TestToggleMisfortune(t *testing.T) {
	var sh sheet.Sheet
	sh.Lists.Misfortunes[0] = "Cursed"
	sh.Lists.MisfortunesDifficulty[0] = "3"
	sh.Lists.Misfortunes[1] = "Broke"
	sh.Lists.MisfortunesDifficulty[1] = "x"
	sh.Lists.MisfortunesDifficulty[2] = "4"

	s, _ := newTestSession(t, sh)

	s.ToggleMisfortune(0)
	_, sec := s.Counts()
	assert.Equal(t, 3, sec)
	assert.Equal(t, 3, s.MisfortuneExtra(0))

	s.ToggleMisfortune(1)
	_, sec = s.Counts()
	assert.Equal(t, 3, sec, "unparseable difficulty counts as zero")

	s.ToggleMisfortune(2)
	_, sec = s.Counts()
	assert.Equal(t, 3, sec, "misfortune without text is ignored")

	s.ToggleMisfortune(0)
	_, sec = s.Counts()
	assert.Equal(t, 0, sec)
	assert.Equal(t, 0, s.MisfortuneExtra(0))

	s.ToggleMisfortune(-1)
	s.ToggleMisfortune(4)
}

func TestDecrementRed_ClearsLowestMisfortuneFirst(t *testing.T) {
	var sh sheet.Sheet
	for i, d := range []string{"2", "0", "3", "1"} {
		sh.Lists.Misfortunes[i] = "m"
		sh.Lists.MisfortunesDifficulty[i] = d
	}
	s, _ := newTestSession(t, sh)

	setCounts(s, 0, 2, 1)
	s.ToggleMisfortune(3)
	s.ToggleMisfortune(2)
	s.ToggleMisfortune(0)
	_, sec := s.Counts()
	assert.Equal(t, 8, sec)

	steps := []struct {
		want  int
		extra [4]int
	}{
		{7, [4]int{2, 0, 3, 1}},
		{6, [4]int{2, 0, 3, 1}},
		{4, [4]int{0, 0, 3, 1}},
		{1, [4]int{0, 0, 0, 1}},
		{0, [4]int{0, 0, 0, 0}},
		{0, [4]int{0, 0, 0, 0}},
	}

	s.focus = FocusRed
	for i, step := range steps {
		s.Down()
		_, sec = s.Counts()
		assert.Equal(t, step.want, sec, "step %d", i)
		for j := range 4 {
			assert.Equal(t, step.extra[j], s.MisfortuneExtra(j), "step %d extra %d", i, j)
		}
	}
}

func TestRequestDraw_NeedsBothCounts(t *testing.T) {
	tests := []struct {
		name      string
		primary   int
		secondary int
		want      Mode
	}{
		{"both set", 1, 1, ModePopupConfirmDraw},
		{"no white", 0, 2, ModeNavigating},
		{"no red", 2, 0, ModeNavigating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, sheet.Sheet{})
			setCounts(s, tt.primary, tt.secondary, 1)
			s.RequestDraw()
			assert.Equal(t, tt.want, s.Mode())
		})
	}
}

func TestReset(t *testing.T) {
	ctx := t.Context()
	var sh sheet.Sheet
	sh.Nodes[0] = "x"
	s, _ := newTestSession(t, sh)

	setCounts(s, 4, 4, 3)
	s.PerformFirstDraw(ctx)
	s.CancelDraw(ctx)
	s.ToggleRandom()
	s.ToggleTrait(0)
	s.Grid().Select(0)
	s.focus = FocusForced
	s.tab = TabLists
	s.cursor.Next()

	s.Reset()

	p, sec := s.Counts()
	assert.Equal(t, 0, p)
	assert.Equal(t, 0, sec)
	assert.Equal(t, 1, s.DrawCount())
	assert.Empty(t, s.Drawn())
	assert.Equal(t, 0, s.PoolLen())
	assert.False(t, s.RandomMode())
	assert.Empty(t, s.UsedTraits())
	assert.Equal(t, FocusWhite, s.Focus())
	assert.Equal(t, 9, s.Grid().Selected())
	assert.Zero(t, s.Cursor())
	assert.Equal(t, 1, s.History().Len(), "history survives reset")
}

func TestReset_IgnoredInPopup(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 2, 2, 1)
	s.RequestDraw()

	s.Reset()

	p, _ := s.Counts()
	assert.Equal(t, 2, p)
	assert.Equal(t, ModePopupConfirmDraw, s.Mode())
}

func TestFocusCycle(t *testing.T) {
	want := []Focus{FocusRed, FocusRandom, FocusForced, FocusDrawInput, FocusWhite}

	f := FocusWhite
	for _, w := range want {
		f = f.Next()
		assert.Equal(t, w, f)
	}
	for range want {
		assert.Equal(t, f, f.Next().Prev())
		f = f.Prev()
	}
}
