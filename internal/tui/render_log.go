package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/internal/core/token"
)

const timeFormat = "2006-01-02 15:04:05"

// renderLog lists the draw history newest first, scrolled by the
// session's log offset.
func (m Model) renderLog(width, height int) string {
	h := m.s.History()
	if h.Len() == 0 {
		return styles.LabelStyle.Render("No draws yet.")
	}

	lines := make([]string, 0, h.Len()*session.LogEntryLines)
	for i := h.Len() - 1; i >= 0; i-- {
		lines = append(lines, m.logEntry(i+1, h.At(i), width)...)
	}

	offset := min(m.s.LogScroll(), len(lines))
	lines = lines[offset:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// logEntry renders one record as exactly session.LogEntryLines lines.
func (m Model) logEntry(n int, r history.Record, width int) []string {
	risk := "no"
	if r.Risked {
		risk = styles.StatusStyle.Render(styles.IconRisk + " yes")
	}

	lines := []string{
		styles.LogHeaderStyle.Render(fmt.Sprintf("#%d", n)) + "  " + styles.LogMetaStyle.Render(r.Time.Local().Format(timeFormat)),
		label("Pool") + fmt.Sprintf("%d white, %d red", r.Primary, r.Secondary),
		label("Traits") + m.traitNames(r.Traits),
		label("Misfortunes") + misfortuneExtras(r.Misfortunes),
		label("Confused") + yesNo(r.Confused),
		label("Adrenaline") + yesNo(r.Adrenalined),
		label("First draw") + tokensOrDash(r.FirstDraw),
		label("Risked") + risk,
		label("Risk draw") + tokensOrDash(r.RiskDraw),
		label("Successes") + styles.TokenPrimaryStyle.Render(fmt.Sprint(r.Successes())),
		label("Complications") + styles.TokenSecondaryStyle.Render(fmt.Sprint(r.Complications())),
		styles.LogMetaStyle.Render(r.ID),
		styles.DividerStyle.Render(strings.Repeat("─", max(width, 1))),
	}
	return lines[:session.LogEntryLines]
}

func (m Model) traitNames(traits []int) string {
	if len(traits) == 0 {
		return "-"
	}
	names := make([]string, len(traits))
	for i, n := range traits {
		names[i] = m.s.Grid().Node(n).Text
		if names[i] == "" {
			names[i] = fmt.Sprintf("node %d", n)
		}
	}
	return strings.Join(names, ", ")
}

func misfortuneExtras(extras [history.MisfortuneSlots]int) string {
	parts := make([]string, len(extras))
	for i, e := range extras {
		parts[i] = fmt.Sprintf("+%d", e)
	}
	return strings.Join(parts, " ")
}

func tokensOrDash(ts []token.Kind) string {
	if len(ts) == 0 {
		return "-"
	}
	return renderTokens(ts, 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
