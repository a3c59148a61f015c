// Package sections implements the cursor over the character sheet's list
// sections.
package sections

// Section identifies one list on the character sheet.
type Section int

const (
	Misfortunes Section = iota
	MisfortunesDifficulty
	Resources
	Notes
	Lessons
)

// All lists the sections in cycle order.
var All = []Section{Misfortunes, MisfortunesDifficulty, Resources, Notes, Lessons}

type sectionInfo struct {
	name      string
	items     int
	maxLen    int
	multiline bool
}

var info = map[Section]sectionInfo{
	Misfortunes:           {"Misfortunes", 4, 50, false},
	MisfortunesDifficulty: {"Difficulty", 4, 2, false},
	Resources:             {"Resources", 10, 75, false},
	Notes:                 {"Notes", 1, 1000, true},
	Lessons:               {"Lessons", 3, 500, true},
}

func (s Section) String() string { return info[s].name }

// Items returns the fixed number of items in the section.
func (s Section) Items() int { return info[s].items }

// MaxLen returns the maximum rune length of one item's text.
func (s Section) MaxLen() int { return info[s].maxLen }

// Multiline reports whether items accept newlines.
func (s Section) Multiline() bool { return info[s].multiline }

// Next returns the following section in the cycle.
func (s Section) Next() Section { return All[(int(s)+1)%len(All)] }

// Prev returns the preceding section in the cycle.
func (s Section) Prev() Section { return All[(int(s)+len(All)-1)%len(All)] }

// Paired returns the section that vertical movement switches to. Only the
// misfortune texts and their difficulties are paired; other sections
// return themselves.
func (s Section) Paired() Section {
	switch s {
	case Misfortunes:
		return MisfortunesDifficulty
	case MisfortunesDifficulty:
		return Misfortunes
	default:
		return s
	}
}

// Scrolls reports whether vertical movement scrolls the item's text
// instead of changing the selection.
func (s Section) Scrolls() bool { return s.Paired() == s }
