package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fstophq/fstop-cli/pkg/models"
)

// interfaceTab toggles which adjustment groups the studio's develop view
// shows. Each toggle merges into the stored visibility map, so groups this
// tab never touched keep whatever the desktop app wrote for them.
type interfaceTab struct {
	controller *settingsController
	cursor     int
}

func newInterfaceTab(controller *settingsController) *interfaceTab {
	return &interfaceTab{controller: controller}
}

func (t *interfaceTab) Editing() bool {
	return false
}

func (t *interfaceTab) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(models.AdjustmentGroups)-1 {
			t.cursor++
		}
	case "enter", " ":
		group := models.AdjustmentGroups[t.cursor]
		visible := t.controller.Current().GroupVisible(group)
		return t.controller.ApplyGroupVisible(group, !visible)
	}
	return nil
}

func (t *interfaceTab) View(width int) string {
	settings := t.controller.Current()

	var b strings.Builder
	b.WriteString(SectionHeaderStyle.Render("ADJUSTMENT PANELS"))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("Panels shown in the studio's develop view"))
	b.WriteString("\n\n")

	for i, group := range models.AdjustmentGroups {
		check := "[ ]"
		if settings.GroupVisible(group) {
			check = SuccessStyle.Render("[x]")
		}
		marker := "  "
		labelStyle := NormalStyle
		if i == t.cursor {
			marker = SelectedStyle.Render("> ")
			labelStyle = SelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, check,
			labelStyle.Render(models.GroupLabel(group))))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ select · space toggle"))
	return b.String()
}
