package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/internal/core/token"
)

// Screen geometry. The body starts below the tab bar and its divider.
const (
	bodyY         = 2
	defaultWidth  = 80
	defaultHeight = 24
)

// View renders the current frame and refills the session's hit regions.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.size()
	areas := m.s.Areas()
	areas.Reset()

	tabs := m.renderTabs(areas)
	divider := styles.DividerStyle.Render(strings.Repeat("─", width))
	footer := m.renderFooter(width)
	bodyHeight := max(height-bodyY-lipgloss.Height(footer), 1)

	var body string
	if m.modal.Visible() {
		body = m.modal.Overlay("", width, bodyHeight)
	} else {
		body = m.renderBody(areas, width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		divider,
		clampHeight(body, bodyHeight),
		footer,
	)
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) renderBody(areas *session.Areas, width, height int) string {
	switch m.s.Tab() {
	case session.TabCharacter:
		return m.renderCharacter(areas, width)
	case session.TabLists:
		return m.renderLists(areas, width)
	case session.TabLog:
		return m.renderLog(width, height)
	default:
		return m.renderDraw(areas, width)
	}
}

func (m Model) renderTabs(areas *session.Areas) string {
	parts := make([]string, 0, len(session.Tabs))
	x := 0
	for i, t := range session.Tabs {
		st := styles.TabInactiveStyle
		if t == m.s.Tab() {
			st = styles.TabActiveStyle
		}

		tab := st.Render(fmt.Sprintf("%d %s", i+1, t))
		w := lipgloss.Width(tab)
		areas.Add(session.Rect{X: x, Y: 0, W: w, H: 1}, session.Target{Kind: session.TargetTab, Tab: t})

		parts = append(parts, tab)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderFooter(width int) string {
	mode := m.s.Mode()

	status := styles.HelpStyle.Render(mode.String())
	if mode != session.ModeNavigating {
		status = styles.StatusStyle.Render(mode.String())
	}
	if m.opts.SheetPath != "" {
		status += styles.HelpStyle.Render("  " + m.opts.SheetPath)
	}

	helpView := m.help.View(helpKeys{keys: m.keys, mode: mode, tab: m.s.Tab()})
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(width).Render(status),
		helpView,
	)
}

// clampHeight cuts or pads s to exactly h lines.
func clampHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderTokens draws ts as colored glyphs followed by empty slots up to
// slots.
func renderTokens(ts []token.Kind, slots int) string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 {
			b.WriteString(" ")
		}
		if t == token.Primary {
			b.WriteString(styles.TokenPrimaryStyle.Render(styles.IconToken))
		} else {
			b.WriteString(styles.TokenSecondaryStyle.Render(styles.IconToken))
		}
	}
	for i := len(ts); i < slots; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(styles.LabelStyle.Render(styles.IconTokenSlot))
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return styles.IconChecked
	}
	return styles.IconUnchecked
}

func label(s string) string {
	return styles.LabelStyle.Render(fmt.Sprintf("%-14s", s))
}
