// Package hexgrid holds the fixed 19-node honeycomb used for character
// traits, its directional navigation table and its layout geometry.
//
// Nodes are numbered column by column, top to bottom:
//
//	col   -2   -1    0    1    2
//	                 7
//	           3          12
//	      0          8         16
//	           4          13
//	      1          9         17
//	           5          14
//	      2         10         18
//	           6          15
//	                11
package hexgrid

// Size is the number of nodes in the grid.
const Size = 19

// Center is the archetype node and the initial selection.
const Center = 9

// Node cell dimensions used by the renderer and for hit-testing.
const (
	NodeWidth  = 14
	NodeHeight = 6
)

// MaxTextLen is the maximum rune length of a node's text.
const MaxTextLen = 35

// Kind classifies a node by its position in the honeycomb.
type Kind int

const (
	Ability Kind = iota
	Quality
	Archetype
)

func (k Kind) String() string {
	switch k {
	case Archetype:
		return "Archetype"
	case Quality:
		return "Quality"
	default:
		return "Ability"
	}
}

// Slot is a node's fixed (column, row) position. Rows step by two within a
// column and odd columns are offset by one row.
type Slot struct {
	Col int
	Row int
}

var slots = [Size]Slot{
	{-2, -2}, {-2, 0}, {-2, 2},
	{-1, -3}, {-1, -1}, {-1, 1}, {-1, 3},
	{0, -4}, {0, -2}, {0, 0}, {0, 2}, {0, 4},
	{1, -3}, {1, -1}, {1, 1}, {1, 3},
	{2, -2}, {2, 0}, {2, 2},
}

// columns holds the [start, end) index range of each column, left to right.
var columns = [5][2]int{
	{0, 3},
	{3, 7},
	{7, 12},
	{12, 16},
	{16, 19},
}

const (
	dirUp = iota
	dirDown
	dirNext
	dirPrev
)

// neighbors is the navigation table: for every node, the node reached by
// up, down, next and prev.
var neighbors = buildNeighbors()

func buildNeighbors() [Size][4]int {
	var t [Size][4]int

	for c, span := range columns {
		start, end := span[0], span[1]
		for i := start; i < end; i++ {
			t[i][dirUp] = i - 1
			if i == start {
				t[i][dirUp] = end - 1
			}
			t[i][dirDown] = i + 1
			if i == end-1 {
				t[i][dirDown] = start
			}

			switch {
			case c == len(columns)-1:
				t[i][dirNext] = i - columns[c][0]
			default:
				s := slots[i]
				if j, ok := lookup(Slot{s.Col + 1, s.Row + 1}); ok {
					t[i][dirNext] = j
				} else {
					// falling off the bottom re-enters at the top of the column to the left
					t[i][dirNext] = columns[c-1][0]
				}
			}
		}
	}

	for i := range Size {
		t[t[i][dirNext]][dirPrev] = i
	}

	return t
}

func lookup(s Slot) (int, bool) {
	for i, candidate := range slots {
		if candidate == s {
			return i, true
		}
	}
	return 0, false
}

// Up returns the node above i, wrapping to the bottom of the column.
func Up(i int) int { return neighbors[clamp(i)][dirUp] }

// Down returns the node below i, wrapping to the top of the column.
func Down(i int) int { return neighbors[clamp(i)][dirDown] }

// Next returns the lower-right neighbor of i. Repeated application visits
// every node once before returning to i.
func Next(i int) int { return neighbors[clamp(i)][dirNext] }

// Prev is the inverse of Next.
func Prev(i int) int { return neighbors[clamp(i)][dirPrev] }

// SlotOf returns the layout slot of node i.
func SlotOf(i int) Slot { return slots[clamp(i)] }

// Column returns the column index (-2..2) of node i.
func Column(i int) int { return slots[clamp(i)].Col }

// KindOf returns the classification of node i.
func KindOf(i int) Kind {
	switch clamp(i) {
	case Center:
		return Archetype
	case 4, 5, 8, 10, 13, 14:
		return Quality
	default:
		return Ability
	}
}

// Offset returns the top-left cell offset of node i relative to the grid
// center.
func Offset(i int) (x, y int) {
	s := slots[clamp(i)]
	return s.Col * NodeWidth, s.Row * NodeHeight / 2
}

func clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= Size {
		return Size - 1
	}
	return i
}
