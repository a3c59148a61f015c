package session

import (
	"github.com/colonyops/hexsys/internal/core/sections"
	"github.com/colonyops/hexsys/internal/core/sheet"
)

// Rect is a screen rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// TargetKind is the kind of widget a hit region belongs to.
type TargetKind int

const (
	TargetTab TargetKind = iota
	TargetDrawWidget
	TargetNode
	TargetListItem
	TargetField
)

// Target identifies what a click on a region selects. Only the field
// matching Kind is meaningful.
type Target struct {
	Kind  TargetKind
	Tab   Tab
	Focus Focus
	Node  int
	Item  sections.Position
	Field sheet.Field
}

type region struct {
	rect   Rect
	target Target
}

// Areas is the registry of clickable regions. The renderer resets and
// refills it on every frame; clicks are hit-tested against the regions of
// the last frame.
type Areas struct {
	regions []region
}

// NewAreas returns an empty registry.
func NewAreas() *Areas { return &Areas{} }

// Reset drops every region.
func (a *Areas) Reset() { a.regions = a.regions[:0] }

// Add registers r as the clickable region of t.
func (a *Areas) Add(r Rect, t Target) {
	a.regions = append(a.regions, region{rect: r, target: t})
}

// Len returns the number of registered regions.
func (a *Areas) Len() int { return len(a.regions) }

// Hit returns the target of the first region containing (x, y).
func (a *Areas) Hit(x, y int) (Target, bool) {
	for _, r := range a.regions {
		if r.rect.Contains(x, y) {
			return r.target, true
		}
	}
	return Target{}, false
}

// ViewportWidth returns the text width of list item p, or 0 when the item
// has not been rendered.
func (a *Areas) ViewportWidth(p sections.Position) int {
	for _, r := range a.regions {
		if r.target.Kind == TargetListItem && r.target.Item == p {
			return r.rect.W
		}
	}
	return 0
}

// Click selects whatever lies under (x, y). Clicks are ignored while
// editing or while a popup is open.
func (s *Session) Click(x, y int) {
	if s.mode != ModeNavigating {
		return
	}

	t, ok := s.areas.Hit(x, y)
	if !ok {
		return
	}

	switch t.Kind {
	case TargetTab:
		s.tab = t.Tab
	case TargetDrawWidget:
		s.focus = t.Focus
	case TargetNode:
		s.grid.Select(t.Node)
		s.field = sheet.FieldNone
	case TargetListItem:
		s.cursor.Set(t.Item)
	case TargetField:
		s.field = t.Field
	}
}
