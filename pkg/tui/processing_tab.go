package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fstophq/fstop-cli/pkg/models"
)

// processingTab edits the processing engine options. Both of its keys are
// restart-gated: changes accumulate in the controller's draft and nothing
// touches the settings file until the user saves and restarts. The tab
// shows the drafted values, so what the user sees is what a restart will
// apply.
type processingTab struct {
	controller *settingsController
	cursor     int
	confirm    *ConfirmationModel
}

const (
	processingFieldEngine = iota
	processingFieldGPU
	processingFieldCount
)

var engines = []string{models.EngineAuto, models.EngineGPU, models.EngineCPU}

func newProcessingTab(controller *settingsController) *processingTab {
	return &processingTab{
		controller: controller,
		confirm:    NewConfirmation(),
	}
}

func (t *processingTab) Editing() bool {
	return t.confirm.Active()
}

func (t *processingTab) Update(msg tea.KeyMsg) tea.Cmd {
	if t.confirm.Active() {
		return t.confirm.Update(msg)
	}

	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < processingFieldCount-1 {
			t.cursor++
		}
	case "enter", " ":
		switch t.cursor {
		case processingFieldEngine:
			return t.controller.Apply(models.KeyProcessingEngine,
				nextChoice(engines, t.controller.DraftEngine()))
		case processingFieldGPU:
			return t.controller.Apply(models.KeyPreferDiscreteGPU,
				!t.controller.DraftPreferDiscreteGPU())
		}
	case "ctrl+s":
		if !t.controller.RestartPending() {
			return nil
		}
		t.confirm.Show(ConfirmationConfig{
			Title:    "Save & Restart",
			Message:  "Save the processing changes and restart now?",
			Warning:  "The studio relaunches immediately.",
			YesLabel: "Restart",
			NoLabel:  "Cancel",
		}, func() tea.Cmd {
			return t.controller.SaveDraftCmd()
		}, nil)
	}
	return nil
}

func (t *processingTab) View(width int) string {
	var b strings.Builder
	b.WriteString(SectionHeaderStyle.Render("PROCESSING ENGINE"))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("These options take effect after a restart"))
	b.WriteString("\n\n")

	engine := t.controller.DraftEngine()
	gpu := t.controller.DraftPreferDiscreteGPU()

	b.WriteString(renderFieldRow("Engine", t.annotate(models.KeyProcessingEngine, engine),
		t.cursor == processingFieldEngine))
	b.WriteString("\n")
	b.WriteString(renderFieldRow("Prefer discrete GPU", t.annotate(models.KeyPreferDiscreteGPU, onOff(gpu)),
		t.cursor == processingFieldGPU))
	b.WriteString("\n\n")

	if t.controller.RestartPending() {
		b.WriteString(RestartBannerStyle.Render(" Restart required to apply changes "))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("↑/↓ select · enter change · ctrl+s save & restart"))
	} else {
		b.WriteString(HelpStyle.Render("↑/↓ select · enter change"))
	}
	return b.String()
}

// annotate marks a drafted, not-yet-saved value.
func (t *processingTab) annotate(key, value string) string {
	if t.controller.Drafted(key) {
		return fmt.Sprintf("%s %s", value, WarningStyle.Render("(pending restart)"))
	}
	return value
}

// Confirm exposes the tab's dialog for overlay rendering.
func (t *processingTab) Confirm() *ConfirmationModel {
	return t.confirm
}
