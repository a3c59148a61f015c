package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/core/styles"
)

// honeycombTop is the distance from the top of the honeycomb to the top
// of the center node.
const honeycombTop = 4 * hexgrid.NodeHeight / 2

// honeycombColumns is the number of node columns.
const honeycombColumns = 5

const fieldLabelWidth = 14

func (m Model) renderCharacter(areas *session.Areas, width int) string {
	fields := []sheet.Field{sheet.FieldName, sheet.FieldObjective}

	lines := make([]string, 0, len(fields)+2)
	for i, f := range fields {
		areas.Add(
			session.Rect{X: 0, Y: bodyY + i, W: width, H: 1},
			session.Target{Kind: session.TargetField, Field: f},
		)
		lines = append(lines, m.renderField(f, width))
	}
	lines = append(lines, "")

	grid := m.renderHoneycomb(areas, 0, bodyY+len(lines))
	return lipgloss.JoinVertical(lipgloss.Left, append(lines, grid)...)
}

func (m Model) renderField(f sheet.Field, width int) string {
	s := m.s
	marker := "  "
	if s.Field() == f {
		marker = styles.StatusStyle.Render(styles.IconCursor) + " "
	}

	valueWidth := max(width-2-fieldLabelWidth, 1)
	value := s.Character().Get(f)

	var rendered string
	switch {
	case s.Mode() == session.ModeEditingCharacterField && s.Field() == f:
		rendered = styles.EditingStyle.Render(tail(s.Buffer(), valueWidth-1) + styles.IconCursor)
	case value == "":
		rendered = styles.LabelStyle.Render("-")
	default:
		rendered = styles.ItemStyle.Render(fit(value, valueWidth))
	}

	return marker + label(f.String()) + rendered
}

// renderHoneycomb lays the nodes out as five columns of stacked cells.
// Odd columns start half a cell lower. (gx, gy) is the screen position of
// the top-left corner, used to register node hit regions.
func (m Model) renderHoneycomb(areas *session.Areas, gx, gy int) string {
	var (
		cols [honeycombColumns][]string
		top  [honeycombColumns]int
		seen [honeycombColumns]bool
	)

	for i := range hexgrid.Size {
		c := hexgrid.Column(i) + honeycombColumns/2
		offX, offY := hexgrid.Offset(i)
		if !seen[c] {
			top[c] = offY + honeycombTop
			seen[c] = true
		}

		areas.Add(
			session.Rect{
				X: gx + offX + honeycombColumns/2*hexgrid.NodeWidth,
				Y: gy + offY + honeycombTop,
				W: hexgrid.NodeWidth,
				H: hexgrid.NodeHeight,
			},
			session.Target{Kind: session.TargetNode, Node: i},
		)
		cols[c] = append(cols[c], m.renderNode(i))
	}

	rendered := make([]string, honeycombColumns)
	for c := range cols {
		rendered[c] = lipgloss.NewStyle().
			PaddingTop(top[c]).
			Render(lipgloss.JoinVertical(lipgloss.Left, cols[c]...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderNode(i int) string {
	s := m.s
	grid := s.Grid()
	innerW := hexgrid.NodeWidth - 2
	innerH := hexgrid.NodeHeight - 2

	selected := i == grid.Selected() && s.Field() == sheet.FieldNone
	editing := selected && s.Mode() == session.ModeEditingNode

	st := styles.NodeStyle
	switch {
	case selected:
		st = styles.NodeSelectedStyle
	case s.TraitUsed(i):
		st = styles.NodeTraitStyle
	case !grid.IsSet(i):
		st = styles.NodeEmptyStyle
	}

	text := grid.Node(i).Text
	offset := 0
	switch {
	case editing:
		text = s.Buffer() + styles.IconCursor
		offset = max(len(chunkLines(text, innerW))-innerH, 0)
	case text == "":
		text = hexgrid.KindOf(i).String()
	}

	return st.Render(strings.Join(viewport(text, innerW, innerH, offset), "\n"))
}
