package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hexsys/internal/core/styles"
)

// Modal represents a confirmation dialog.
type Modal struct {
	title           string
	message         string
	confirmLabel    string
	cancelLabel     string
	visible         bool
	confirmSelected bool // true = confirm button selected, false = cancel button selected
}

// NewModal creates a new modal with the given title and message.
func NewModal(title, message string) Modal {
	return Modal{
		title:           title,
		message:         message,
		confirmLabel:    "Confirm",
		cancelLabel:     "Cancel",
		visible:         true,
		confirmSelected: true,
	}
}

// WithLabels returns a copy of m with custom button labels.
func (m Modal) WithLabels(confirm, cancel string) Modal {
	m.confirmLabel = confirm
	m.cancelLabel = cancel
	return m
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// Overlay renders the modal centered over an area of the given size. The
// background is replaced.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	confirmBtn := styles.ModalButtonStyle.Render(m.confirmLabel)
	cancelBtn := styles.ModalButtonStyle.Render(m.cancelLabel)
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render(m.confirmLabel)
	} else {
		cancelBtn = styles.ModalButtonSelectedStyle.Render(m.cancelLabel)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  esc cancel"),
	)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content),
	)
}
