package hexgrid

import "unicode/utf8"

// Node is a single honeycomb cell. Empty text means the node is unset.
type Node struct {
	Text string
}

// Grid is the honeycomb contents plus a selection cursor.
type Grid struct {
	nodes    [Size]Node
	selected int
}

// New returns a grid seeded with texts. Missing entries stay empty and
// extra entries are ignored.
func New(texts []string) *Grid {
	g := &Grid{selected: Center}
	for i := 0; i < Size && i < len(texts); i++ {
		g.nodes[i].Text = truncate(texts[i], MaxTextLen)
	}
	return g
}

// Selected returns the selected node index.
func (g *Grid) Selected() int { return g.selected }

// Select moves the selection to i. Out of range indices are ignored.
func (g *Grid) Select(i int) {
	if i < 0 || i >= Size {
		return
	}
	g.selected = i
}

func (g *Grid) MoveUp()   { g.selected = Up(g.selected) }
func (g *Grid) MoveDown() { g.selected = Down(g.selected) }
func (g *Grid) MoveNext() { g.selected = Next(g.selected) }
func (g *Grid) MovePrev() { g.selected = Prev(g.selected) }

// ResetSelection returns the cursor to the center node.
func (g *Grid) ResetSelection() { g.selected = Center }

// Node returns node i.
func (g *Grid) Node(i int) Node { return g.nodes[clamp(i)] }

// SetText replaces the text of node i, truncated to MaxTextLen runes.
func (g *Grid) SetText(i int, text string) {
	g.nodes[clamp(i)].Text = truncate(text, MaxTextLen)
}

// IsSet reports whether node i has text and can be used as a trait.
func (g *Grid) IsSet(i int) bool { return g.nodes[clamp(i)].Text != "" }

// Texts returns the node texts in index order.
func (g *Grid) Texts() []string {
	out := make([]string, Size)
	for i, n := range g.nodes {
		out[i] = n.Text
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
