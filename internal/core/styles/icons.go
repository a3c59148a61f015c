package styles

// Token and widget glyphs.
var (
	IconToken     = "●"
	IconTokenSlot = "○"
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconRisk      = "⚠"
	IconCursor    = "▌"
)
