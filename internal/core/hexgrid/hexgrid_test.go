package hexgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Table(t *testing.T) {
	want := [Size]int{4, 5, 6, 8, 9, 10, 11, 12, 13, 14, 15, 3, 16, 17, 18, 7, 0, 1, 2}

	for i := range Size {
		assert.Equal(t, want[i], Next(i), "next(%d)", i)
	}
}

func TestNext_LowerRightNeighbour(t *testing.T) {
	moved := 0
	for i := range Size {
		s := slots[i]
		j, ok := lookup(Slot{s.Col + 1, s.Row + 1})
		if !ok {
			continue
		}
		moved++
		assert.Equal(t, j, Next(i), "next(%d) is the node below and to the right", i)
	}
	assert.Equal(t, 14, moved, "every node except the last column and nodes 11 and 15")

	// two sources never share a target
	seen := make(map[int]int)
	for i := range Size {
		if prev, dup := seen[Next(i)]; dup {
			t.Fatalf("next(%d) and next(%d) both reach %d", prev, i, Next(i))
		}
		seen[Next(i)] = i
	}
}

func TestUpDown_Table(t *testing.T) {
	tests := []struct {
		i    int
		up   int
		down int
	}{
		{0, 2, 1},
		{2, 1, 0},
		{3, 6, 4},
		{6, 5, 3},
		{7, 11, 8},
		{9, 8, 10},
		{11, 10, 7},
		{12, 15, 13},
		{15, 14, 12},
		{16, 18, 17},
		{18, 17, 16},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.up, Up(tt.i), "up(%d)", tt.i)
		assert.Equal(t, tt.down, Down(tt.i), "down(%d)", tt.i)
	}
}

func TestUpDown_Inverse(t *testing.T) {
	for i := range Size {
		assert.Equal(t, i, Up(Down(i)), "up(down(%d))", i)
		assert.Equal(t, i, Down(Up(i)), "down(up(%d))", i)
	}
}

func TestUpDown_StayInColumn(t *testing.T) {
	for i := range Size {
		assert.Equal(t, Column(i), Column(Up(i)))
		assert.Equal(t, Column(i), Column(Down(i)))
	}
}

func TestNext_FullCycle(t *testing.T) {
	for start := range Size {
		seen := map[int]bool{}
		i := start
		for range Size {
			require.False(t, seen[i], "node %d visited twice from %d", i, start)
			seen[i] = true
			i = Next(i)
		}
		assert.Equal(t, start, i)
		assert.Len(t, seen, Size)
	}
}

func TestPrev_InverseOfNext(t *testing.T) {
	for i := range Size {
		assert.Equal(t, i, Prev(Next(i)))
		assert.Equal(t, i, Next(Prev(i)))
	}
}

func TestNextPrev_Wraps(t *testing.T) {
	assert.Equal(t, 0, Prev(Next(0)))
	assert.Equal(t, 2, Next(18))
	assert.Equal(t, 18, Prev(2))
}

func TestNext_MovesOneColumnRight(t *testing.T) {
	for i := range Size {
		from, to := Column(i), Column(Next(i))
		switch {
		case from == 2:
			assert.Equal(t, -2, to)
		case to != from+1:
			// bottom of a column re-enters the column to the left
			assert.Equal(t, from-1, to, "node %d", i)
		}
	}
}

func TestKindOf(t *testing.T) {
	quality := map[int]bool{4: true, 5: true, 8: true, 10: true, 13: true, 14: true}

	counts := map[Kind]int{}
	for i := range Size {
		k := KindOf(i)
		counts[k]++
		switch {
		case i == Center:
			assert.Equal(t, Archetype, k)
		case quality[i]:
			assert.Equal(t, Quality, k)
		default:
			assert.Equal(t, Ability, k)
		}
	}

	assert.Equal(t, 1, counts[Archetype])
	assert.Equal(t, 6, counts[Quality])
	assert.Equal(t, 12, counts[Ability])
}

func TestOffset(t *testing.T) {
	x, y := Offset(Center)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = Offset(0)
	assert.Equal(t, -2*NodeWidth, x)
	assert.Equal(t, -6, y)

	x, y = Offset(11)
	assert.Equal(t, 0, x)
	assert.Equal(t, 12, y)
}

func TestGrid(t *testing.T) {
	t.Run("starts at center", func(t *testing.T) {
		g := New(nil)
		assert.Equal(t, Center, g.Selected())
		assert.Len(t, g.Texts(), Size)
	})

	t.Run("seeds texts and ignores extras", func(t *testing.T) {
		texts := make([]string, Size+3)
		texts[0] = "Brave"
		texts[Size] = "ignored"

		g := New(texts)
		assert.Equal(t, "Brave", g.Node(0).Text)
		assert.True(t, g.IsSet(0))
		assert.False(t, g.IsSet(1))
	})

	t.Run("truncates long text", func(t *testing.T) {
		g := New(nil)
		g.SetText(3, strings.Repeat("x", 50))
		assert.Len(t, g.Node(3).Text, MaxTextLen)
	})

	t.Run("moves and resets", func(t *testing.T) {
		g := New(nil)
		g.MoveNext()
		assert.Equal(t, 14, g.Selected())
		g.MoveUp()
		assert.Equal(t, 13, g.Selected())
		g.MovePrev()
		assert.Equal(t, 8, g.Selected())
		g.MoveDown()
		assert.Equal(t, 9, g.Selected())

		g.Select(0)
		g.ResetSelection()
		assert.Equal(t, Center, g.Selected())
	})

	t.Run("select ignores out of range", func(t *testing.T) {
		g := New(nil)
		g.Select(-1)
		g.Select(Size)
		assert.Equal(t, Center, g.Selected())
	})
}
