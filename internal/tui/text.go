package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// chunkLines splits s into lines of at most width cells. Explicit
// newlines always break. Long lines are cut at the cell boundary rather
// than at word boundaries so that scroll offsets map to fixed rune spans.
func chunkLines(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var out []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}

		var (
			line strings.Builder
			w    int
		)
		for _, r := range para {
			rw := runewidth.RuneWidth(r)
			if w+rw > width && w > 0 {
				out = append(out, line.String())
				line.Reset()
				w = 0
			}
			line.WriteRune(r)
			w += rw
		}
		out = append(out, line.String())
	}
	return out
}

// viewport returns exactly height lines of s chunked to width, starting at
// line offset. Every line is padded to width cells.
func viewport(s string, width, height, offset int) []string {
	lines := chunkLines(s, width)
	if offset > len(lines) {
		offset = len(lines)
	}
	if offset < 0 {
		offset = 0
	}
	lines = lines[offset:]

	out := make([]string, height)
	for i := range out {
		var l string
		if i < len(lines) {
			l = lines[i]
		}
		out[i] = fit(l, width)
	}
	return out
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// tail returns the last width cells of s, used to keep the edit cursor in
// view on single-line fields.
func tail(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	rs := []rune(s)
	w := 0
	i := len(rs)
	for i > 0 {
		rw := runewidth.RuneWidth(rs[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return string(rs[i:])
}
