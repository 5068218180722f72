package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation dialog
type ConfirmationConfig struct {
	Title       string // Dialog title (optional)
	Message     string // Main confirmation message
	Warning     string // Optional warning text (shown in orange)
	Destructive bool   // If true, Yes renders red and No green
	YesLabel    string // Custom label for Yes (default: "Yes")
	NoLabel     string // Custom label for No (default: "No")
	Width       int    // Dialog width (default 60)
}

// ConfirmationModel gates destructive actions behind an explicit yes/no.
// Only one confirmation can be active at a time per model; showing a new
// one replaces the pending callbacks. Closing is idempotent.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
	if m.config.Width == 0 {
		m.config.Width = 60
	}
}

// Hide deactivates the confirmation without running either callback.
func (m *ConfirmationModel) Hide() {
	m.active = false
	m.onConfirm = nil
	m.onCancel = nil
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events while the confirmation is active.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		onConfirm := m.onConfirm
		m.Hide()
		if onConfirm != nil {
			return onConfirm()
		}
		return nil

	case "n", "N", "esc":
		onCancel := m.onCancel
		m.Hide()
		if onCancel != nil {
			return onCancel()
		}
		return nil
	}

	return nil
}

// View renders the dialog.
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	width := m.config.Width
	contentWidth := width - 6
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var content strings.Builder

	if m.config.Title != "" {
		content.WriteString(center.Render(SectionHeaderStyle.Render(m.config.Title)))
		content.WriteString("\n\n")
	}
	if m.config.Message != "" {
		content.WriteString(center.Render(m.config.Message))
		content.WriteString("\n")
	}
	if m.config.Warning != "" {
		content.WriteString("\n")
		content.WriteString(center.Render(WarningStyle.Render(m.config.Warning)))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	labels := fmt.Sprintf("(%s / %s)",
		strings.ToLower(m.config.YesLabel),
		strings.ToLower(m.config.NoLabel))
	content.WriteString(center.Render(formatConfirmOptions(m.config.Destructive) + "  " + labels))

	return borderStyle.Width(width).Render(content.String())
}

// Overlay centers the dialog inside an area of the given size.
func (m *ConfirmationModel) Overlay(width, height int) string {
	if !m.active {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}

// formatConfirmOptions renders the y/n keys, colored by how dangerous yes is.
func formatConfirmOptions(destructive bool) string {
	if destructive {
		return ErrorStyle.Render("y") + DimStyle.Render(" / ") + SuccessStyle.Render("n")
	}
	return SuccessStyle.Render("y") + DimStyle.Render(" / ") + NormalStyle.Render("n")
}
