package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fstophq/fstop-cli/pkg/models"
)

// generalTab edits the studio's general options. Every field here applies
// immediately: changes go through the classifier straight into the shared
// settings file.
type generalTab struct {
	controller *settingsController
	cursor     int
	editing    bool
	input      textinput.Model
}

const (
	generalFieldTheme = iota
	generalFieldLanguage
	generalFieldCheckUpdates
	generalFieldLastRoot
	generalFieldCount
)

// themes the studio ships with, in cycle order.
var themes = []string{"dark", "light"}

func newGeneralTab(controller *settingsController) *generalTab {
	input := textinput.New()
	input.CharLimit = 255
	input.Width = 40
	return &generalTab{
		controller: controller,
		input:      input,
	}
}

func (t *generalTab) Editing() bool {
	return t.editing
}

func (t *generalTab) Update(msg tea.KeyMsg) tea.Cmd {
	if t.editing {
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(t.input.Value())
			t.stopEditing()
			switch t.cursor {
			case generalFieldLanguage:
				if value == "" {
					return nil
				}
				return t.controller.Apply(models.KeyLanguage, strings.ToLower(value))
			case generalFieldLastRoot:
				return t.controller.Apply(models.KeyLastRootPath, value)
			}
			return nil
		case "esc":
			t.stopEditing()
			return nil
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < generalFieldCount-1 {
			t.cursor++
		}
	case "enter", " ":
		return t.activate()
	}
	return nil
}

func (t *generalTab) activate() tea.Cmd {
	settings := t.controller.Current()
	switch t.cursor {
	case generalFieldTheme:
		return t.controller.Apply(models.KeyTheme, nextChoice(themes, settings.Theme()))
	case generalFieldLanguage:
		t.startEditing(settings.Language())
	case generalFieldCheckUpdates:
		return t.controller.Apply(models.KeyCheckUpdates, !settings.CheckUpdates())
	case generalFieldLastRoot:
		t.startEditing(settings.LastRootPath())
	}
	return nil
}

func (t *generalTab) startEditing(value string) {
	t.editing = true
	t.input.SetValue(value)
	t.input.CursorEnd()
	t.input.Focus()
}

func (t *generalTab) stopEditing() {
	t.editing = false
	t.input.Blur()
	t.input.SetValue("")
}

func (t *generalTab) View(width int) string {
	settings := t.controller.Current()

	var b strings.Builder
	b.WriteString(SectionHeaderStyle.Render("GENERAL"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Theme", settings.Theme()},
		{"Language", settings.Language()},
		{"Check for updates", onOff(settings.CheckUpdates())},
		{"Last library root", orPlaceholder(settings.LastRootPath(), "(none)")},
	}

	for i, row := range rows {
		if t.editing && i == t.cursor {
			b.WriteString(renderFieldRow(row.label, t.input.View(), true))
		} else {
			b.WriteString(renderFieldRow(row.label, row.value, i == t.cursor))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if t.editing {
		b.WriteString(HelpStyle.Render("enter save · esc cancel"))
	} else {
		b.WriteString(HelpStyle.Render("↑/↓ select · enter change"))
	}
	return b.String()
}

// renderFieldRow lays out one label/value pair, highlighted when selected.
func renderFieldRow(label, value string, selected bool) string {
	marker := "  "
	labelStyle := NormalStyle
	if selected {
		marker = SelectedStyle.Render("> ")
		labelStyle = SelectedStyle
	}
	return fmt.Sprintf("%s%s %s", marker,
		labelStyle.Render(fmt.Sprintf("%-22s", label)),
		ValueStyle.Render(value))
}

// nextChoice cycles through an option list. Unknown current values land on
// the first option.
func nextChoice(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
