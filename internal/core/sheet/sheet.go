// Package sheet holds the persistent character sheet: the character's
// name and objective, the honeycomb node texts and the list sections.
package sheet

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/sections"
)

// Field identifies one of the character's base text fields.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldObjective
)

// FieldMaxLen is the maximum rune length of the name and the objective.
const FieldMaxLen = 50

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldObjective:
		return "Objective"
	default:
		return "None"
	}
}

// Next toggles between the name and the objective. From FieldNone it
// selects the name.
func (f Field) Next() Field {
	if f == FieldName {
		return FieldObjective
	}
	return FieldName
}

// Character is the base info block.
type Character struct {
	Name      string
	Objective string
}

// Get returns the value of f.
func (c Character) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldObjective:
		return c.Objective
	default:
		return ""
	}
}

// Set writes v to f. FieldNone is ignored.
func (c *Character) Set(f Field, v string) {
	v = Truncate(v, FieldMaxLen)
	switch f {
	case FieldName:
		c.Name = v
	case FieldObjective:
		c.Objective = v
	}
}

// Lists is the text of every list section.
type Lists struct {
	Misfortunes           [history.MisfortuneSlots]string
	MisfortunesDifficulty [history.MisfortuneSlots]string
	Resources             [10]string
	Notes                 string
	Lessons               [3]string
}

// Get returns the text at p. Positions outside a section return "".
func (l *Lists) Get(p sections.Position) string {
	if ptr := l.slot(p); ptr != nil {
		return *ptr
	}
	return ""
}

// Set writes v at p, truncated to the section's maximum length.
func (l *Lists) Set(p sections.Position, v string) {
	if ptr := l.slot(p); ptr != nil {
		*ptr = Truncate(v, p.Section.MaxLen())
	}
}

func (l *Lists) slot(p sections.Position) *string {
	if p.Item < 0 || p.Item >= p.Section.Items() {
		return nil
	}
	switch p.Section {
	case sections.Misfortunes:
		return &l.Misfortunes[p.Item]
	case sections.MisfortunesDifficulty:
		return &l.MisfortunesDifficulty[p.Item]
	case sections.Resources:
		return &l.Resources[p.Item]
	case sections.Notes:
		return &l.Notes
	case sections.Lessons:
		return &l.Lessons[p.Item]
	default:
		return nil
	}
}

// Difficulty returns the parsed difficulty of misfortune i. Empty or
// unparseable values are 0.
func (l *Lists) Difficulty(i int) int {
	if i < 0 || i >= len(l.MisfortunesDifficulty) {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(l.MisfortunesDifficulty[i]), 10, 8)
	if err != nil {
		return 0
	}
	return int(n)
}

// Sheet is the full persisted document.
type Sheet struct {
	Character Character
	Nodes     [hexgrid.Size]string
	Lists     Lists
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
