// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// TUI chrome.
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	HelpStyle        lipgloss.Style
	StatusStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style

	// Draw tab.
	WidgetStyle         lipgloss.Style
	WidgetFocusedStyle  lipgloss.Style
	TokenPrimaryStyle   lipgloss.Style
	TokenSecondaryStyle lipgloss.Style
	LabelStyle          lipgloss.Style

	// Honeycomb nodes.
	NodeStyle         lipgloss.Style
	NodeSelectedStyle lipgloss.Style
	NodeTraitStyle    lipgloss.Style
	NodeEmptyStyle    lipgloss.Style

	// Lists and text fields.
	SectionTitleStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	ItemActiveStyle   lipgloss.Style
	EditingStyle      lipgloss.Style

	// Log tab.
	LogHeaderStyle lipgloss.Style
	LogMetaStyle   lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TabActiveStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorSurface).
		Foreground(ColorForeground).
		Bold(true)
	TabInactiveStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	WidgetStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	WidgetFocusedStyle = WidgetStyle.
		BorderForeground(ColorWarning)
	TokenPrimaryStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	TokenSecondaryStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	LabelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	NodeStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Foreground(ColorForeground)
	NodeSelectedStyle = NodeStyle.
		BorderForeground(ColorWarning).
		Bold(true)
	NodeTraitStyle = NodeStyle.
		BorderForeground(ColorSuccess).
		Foreground(ColorSuccess)
	NodeEmptyStyle = NodeStyle.
		Foreground(ColorMuted)

	SectionTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Underline(true)
	ItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ItemSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorWarning)
	ItemActiveStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	EditingStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSuccess)

	LogHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	LogMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorWarning).
		Foreground(ColorBackground).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
