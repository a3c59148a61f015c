package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/internal/core/token"
)

// widgetWidth is the width of a draw widget box, padding included and
// border excluded.
const widgetWidth = 12

type drawWidget struct {
	focus session.Focus
	title string
	value string
}

func (m Model) renderDraw(areas *session.Areas, width int) string {
	s := m.s
	primary, secondary := s.Counts()

	drawValue := fmt.Sprintf("%d of %d", s.DrawCount(), session.MaxDrawCount)
	if s.ForcedFour() {
		drawValue = fmt.Sprintf("%d locked", s.DrawCount())
	}

	widgets := []drawWidget{
		{session.FocusWhite, "White", styles.TokenPrimaryStyle.Render(fmt.Sprintf("%s %d", styles.IconToken, primary))},
		{session.FocusRed, "Red", styles.TokenSecondaryStyle.Render(fmt.Sprintf("%s %d", styles.IconToken, secondary))},
		{session.FocusRandom, "Confused", checkbox(s.RandomMode())},
		{session.FocusForced, "Adrenaline", checkbox(s.ForcedFour())},
		{session.FocusDrawInput, "Draw", drawValue},
	}

	boxes := make([]string, 0, len(widgets)*2)
	x := 0
	for _, w := range widgets {
		st := styles.WidgetStyle
		if w.focus == s.Focus() {
			st = styles.WidgetFocusedStyle
		}

		box := st.Width(widgetWidth).Render(styles.LabelStyle.Render(w.title) + "\n" + w.value)
		bw, bh := lipgloss.Size(box)
		areas.Add(session.Rect{X: x, Y: bodyY, W: bw, H: bh}, session.Target{Kind: session.TargetDrawWidget, Focus: w.focus})

		boxes = append(boxes, box, " ")
		x += bw + 1
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		"",
		label("Pool") + m.poolSummary(),
		label("Drawn") + m.drawnSummary(),
		label("Traits") + m.traitSummary(),
		label("Misfortunes") + m.misfortuneSummary(),
	}

	if last, ok := s.History().Last(); ok {
		lines = append(lines, "", label("Last draw")+outcome(last.Successes(), last.Complications(), last.Risked))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

func (m Model) poolSummary() string {
	primary, secondary := m.s.Counts()
	if n := m.s.PoolLen(); n > 0 {
		return fmt.Sprintf("%d tokens left", n)
	}
	if primary == 0 || secondary == 0 {
		return styles.LabelStyle.Render("set white and red to draw")
	}
	return fmt.Sprintf("%d tokens", primary+secondary)
}

func (m Model) drawnSummary() string {
	drawn := m.s.Drawn()
	if len(drawn) == 0 {
		return styles.LabelStyle.Render("-")
	}

	out := renderTokens(drawn, session.RiskTarget)
	return out + "  " + outcome(
		token.Count(drawn, token.Primary),
		token.Count(drawn, token.Secondary),
		false,
	)
}

func (m Model) traitSummary() string {
	used := m.s.UsedTraits()
	if len(used) == 0 {
		return styles.LabelStyle.Render("-")
	}

	names := make([]string, len(used))
	for i, n := range used {
		names[i] = m.s.Grid().Node(n).Text
	}
	return strings.Join(names, ", ")
}

func (m Model) misfortuneSummary() string {
	lists := m.s.Lists()

	var parts []string
	for i := range lists.Misfortunes {
		if extra := m.s.MisfortuneExtra(i); extra > 0 {
			parts = append(parts, fmt.Sprintf("%s +%d", lists.Misfortunes[i], extra))
		}
	}
	if len(parts) == 0 {
		return styles.LabelStyle.Render("-")
	}
	return styles.ItemActiveStyle.Render(strings.Join(parts, ", "))
}

func outcome(successes, complications int, risked bool) string {
	out := fmt.Sprintf("%d successes, %d complications", successes, complications)
	if risked {
		out += " " + styles.StatusStyle.Render(styles.IconRisk+" risked")
	}
	return out
}
