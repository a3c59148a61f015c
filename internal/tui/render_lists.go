package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/sections"
	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/styles"
)

// Viewport heights of the scrolling sections.
const (
	notesHeight  = 6
	lessonHeight = 3
)

const (
	listGap        = 2
	markerWidth    = 2
	checkWidth     = 4
	difficultyCell = 4
	minListWidth   = 20
)

// listColumn accumulates the lines of one column and the screen position
// of the next line.
type listColumn struct {
	x, y  int
	width int
	lines []string
}

func (c *listColumn) add(line string) {
	c.lines = append(c.lines, fit(line, c.width))
	c.y++
}

func (c *listColumn) addStyled(line string) {
	pad := max(c.width-lipgloss.Width(line), 0)
	c.lines = append(c.lines, line+strings.Repeat(" ", pad))
	c.y++
}

func (m Model) renderLists(areas *session.Areas, width int) string {
	colW := max((width-listGap)/2, minListWidth)

	left := &listColumn{x: 0, y: bodyY, width: colW}
	m.renderMisfortunes(areas, left)
	left.add("")
	m.renderResources(areas, left)

	right := &listColumn{x: colW + listGap, y: bodyY, width: colW}
	m.renderNotes(areas, right)
	right.add("")
	m.renderLessons(areas, right)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left.lines, "\n"),
		strings.Repeat(" ", listGap),
		strings.Join(right.lines, "\n"),
	)
}

func (m Model) renderMisfortunes(areas *session.Areas, c *listColumn) {
	textW := max(c.width-markerWidth-checkWidth-1-difficultyCell, 1)
	c.addStyled(styles.SectionTitleStyle.Render(sections.Misfortunes.String()) +
		strings.Repeat(" ", max(markerWidth+checkWidth+textW+1-len(sections.Misfortunes.String()), 1)) +
		styles.SectionTitleStyle.Render("Diff"))

	lists := m.s.Lists()
	for i := range history.MisfortuneSlots {
		text := sections.Position{Section: sections.Misfortunes, Item: i}
		diff := sections.Position{Section: sections.MisfortunesDifficulty, Item: i}

		textX := c.x + markerWidth + checkWidth
		diffX := textX + textW + 1
		areas.Add(session.Rect{X: textX, Y: c.y, W: textW, H: 1}, session.Target{Kind: session.TargetListItem, Item: text})
		areas.Add(session.Rect{X: diffX, Y: c.y, W: difficultyCell, H: 1}, session.Target{Kind: session.TargetListItem, Item: diff})

		active := m.s.MisfortuneExtra(i) > 0
		check := checkbox(active) + " "
		if active {
			check = styles.ItemActiveStyle.Render(check)
		}

		cell := m.renderCell(diff, lists.Get(diff), difficultyCell-2, 1)[0]
		c.addStyled(m.marker(text) + check +
			m.renderCell(text, lists.Get(text), textW, 1)[0] + " " +
			"[" + cell + "]")
	}
}

func (m Model) renderResources(areas *session.Areas, c *listColumn) {
	c.addStyled(styles.SectionTitleStyle.Render(sections.Resources.String()))

	lists := m.s.Lists()
	textW := c.width - markerWidth
	for i := range sections.Resources.Items() {
		p := sections.Position{Section: sections.Resources, Item: i}
		areas.Add(session.Rect{X: c.x + markerWidth, Y: c.y, W: textW, H: 1}, session.Target{Kind: session.TargetListItem, Item: p})
		c.addStyled(m.marker(p) + m.renderCell(p, lists.Get(p), textW, 1)[0])
	}
}

func (m Model) renderNotes(areas *session.Areas, c *listColumn) {
	c.addStyled(styles.SectionTitleStyle.Render(sections.Notes.String()))

	lists := m.s.Lists()
	p := sections.Position{Section: sections.Notes}
	textW := c.width - markerWidth
	areas.Add(session.Rect{X: c.x + markerWidth, Y: c.y, W: textW, H: notesHeight}, session.Target{Kind: session.TargetListItem, Item: p})
	for _, line := range m.renderCell(p, lists.Get(p), textW, notesHeight) {
		c.addStyled(m.marker(p) + line)
	}
}

func (m Model) renderLessons(areas *session.Areas, c *listColumn) {
	c.addStyled(styles.SectionTitleStyle.Render(sections.Lessons.String()))

	lists := m.s.Lists()
	const numberWidth = 2
	textW := c.width - markerWidth - numberWidth
	for i := range sections.Lessons.Items() {
		p := sections.Position{Section: sections.Lessons, Item: i}
		areas.Add(session.Rect{X: c.x + markerWidth + numberWidth, Y: c.y, W: textW, H: lessonHeight}, session.Target{Kind: session.TargetListItem, Item: p})
		for j, line := range m.renderCell(p, lists.Get(p), textW, lessonHeight) {
			number := "  "
			if j == 0 {
				number = styles.LabelStyle.Render(fmt.Sprintf("%d ", i+1))
			}
			c.addStyled(m.marker(p) + number + line)
		}
	}
}

func (m Model) marker(p sections.Position) string {
	if m.s.Tab() == session.TabLists && m.s.Cursor() == p {
		return styles.StatusStyle.Render(styles.IconCursor) + " "
	}
	return "  "
}

// renderCell renders the viewport of one list item, exactly height lines
// of width cells. The selected item is highlighted; the item being edited
// shows the edit buffer scrolled to its end.
func (m Model) renderCell(p sections.Position, text string, width, height int) []string {
	selected := m.s.Cursor() == p
	editing := selected && m.s.Mode() == session.ModeEditingListItem

	offset := m.s.Scroll(p)
	st := styles.ItemStyle
	switch {
	case editing:
		text = m.s.Buffer() + styles.IconCursor
		offset = max(len(chunkLines(text, width))-height, 0)
		st = styles.EditingStyle
	case selected:
		st = styles.ItemSelectedStyle
	}

	lines := viewport(text, width, height, offset)
	for i, l := range lines {
		lines[i] = st.Render(l)
	}
	return lines
}
