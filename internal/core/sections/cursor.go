package sections

// Position is a (section, item) pair.
type Position struct {
	Section Section
	Item    int
}

// Cursor is the list selection plus a scroll offset per item.
// Item is always within the section's item range.
type Cursor struct {
	pos    Position
	scroll map[Position]int
}

// NewCursor returns a cursor on the first misfortune.
func NewCursor() *Cursor {
	return &Cursor{scroll: map[Position]int{}}
}

// Position returns the current selection.
func (c *Cursor) Position() Position { return c.pos }

// Set moves the selection. Positions outside the section are ignored.
func (c *Cursor) Set(p Position) {
	if p.Section < Misfortunes || p.Section > Lessons {
		return
	}
	if p.Item < 0 || p.Item >= p.Section.Items() {
		return
	}
	c.pos = p
}

// Next advances to the following item, rolling into the first item of the
// next section.
func (c *Cursor) Next() {
	if c.pos.Item+1 < c.pos.Section.Items() {
		c.pos.Item++
		return
	}
	c.pos = Position{Section: c.pos.Section.Next()}
}

// Prev moves to the preceding item, rolling into the last item of the
// previous section.
func (c *Cursor) Prev() {
	if c.pos.Item > 0 {
		c.pos.Item--
		return
	}
	s := c.pos.Section.Prev()
	c.pos = Position{Section: s, Item: s.Items() - 1}
}

// Up switches between paired sections or scrolls the selected item's text
// up one line.
func (c *Cursor) Up() {
	if !c.pos.Section.Scrolls() {
		c.mirror()
		return
	}
	if c.scroll[c.pos] > 0 {
		c.scroll[c.pos]--
	}
}

// Down switches between paired sections or scrolls the selected item's
// text down one line. The offset never exceeds textLen/width; a width of
// zero disables scrolling.
func (c *Cursor) Down(textLen, width int) {
	if !c.pos.Section.Scrolls() {
		c.mirror()
		return
	}
	if width <= 0 {
		return
	}
	if c.scroll[c.pos] < textLen/width {
		if c.scroll == nil {
			c.scroll = map[Position]int{}
		}
		c.scroll[c.pos]++
	}
}

func (c *Cursor) mirror() {
	c.pos.Section = c.pos.Section.Paired()
}

// Scroll returns the scroll offset of p.
func (c *Cursor) Scroll(p Position) int { return c.scroll[p] }

// Reset selects the first misfortune and clears every scroll offset.
func (c *Cursor) Reset() {
	c.pos = Position{}
	clear(c.scroll)
}
