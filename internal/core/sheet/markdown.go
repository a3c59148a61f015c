package sheet

import (
	"fmt"
	"strings"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
)

// Markdown renders the sheet as a markdown document.
func (sh Sheet) Markdown() string {
	var b strings.Builder

	name := sh.Character.Name
	if name == "" {
		name = "Unnamed character"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	if sh.Character.Objective != "" {
		fmt.Fprintf(&b, "_Objective:_ %s\n\n", sh.Character.Objective)
	}

	b.WriteString("## Traits\n\n")
	b.WriteString("| # | Kind | Text |\n|---|------|------|\n")
	for i, text := range sh.Nodes {
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i, hexgrid.KindOf(i), escapeCell(text))
	}
	b.WriteString("\n")

	b.WriteString("## Misfortunes\n\n")
	for i, m := range sh.Lists.Misfortunes {
		if m == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s (difficulty %d)\n", m, sh.Lists.Difficulty(i))
	}
	b.WriteString("\n")

	writeList(&b, "Resources", sh.Lists.Resources[:])
	writeList(&b, "Lessons", sh.Lists.Lessons[:])

	if sh.Lists.Notes != "" {
		fmt.Fprintf(&b, "## Notes\n\n%s\n", sh.Lists.Notes)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, it := range items {
		if it == "" {
			continue
		}
		fmt.Fprintf(b, "- %s\n", strings.ReplaceAll(it, "\n", " "))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
