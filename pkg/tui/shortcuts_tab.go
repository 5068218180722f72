package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// shortcutsTab is the read-only keyboard-shortcut reference: the studio's
// editing keys plus this console's own. Scrollable, and y copies the whole
// reference as text.
type shortcutsTab struct {
	viewport viewport.Model
	status   *StatusManager
	ready    bool
}

func newShortcutsTab() *shortcutsTab {
	return &shortcutsTab{
		viewport: viewport.New(80, 20),
		status:   NewStatusManager("shortcuts"),
	}
}

func (t *shortcutsTab) Editing() bool {
	return false
}

func (t *shortcutsTab) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = max(height, 5)
	t.viewport.SetContent(t.renderReference(width))
	t.ready = true
}

func (t *shortcutsTab) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "y" {
			if err := clipboard.WriteAll(ShortcutReferenceText()); err != nil {
				return t.status.ShowError("Copy failed: clipboard unavailable")
			}
			return t.status.ShowSuccess("Shortcut reference copied")
		}
		var cmd tea.Cmd
		t.viewport, cmd = t.viewport.Update(msg)
		return cmd
	case statusClearMsg:
		t.status.HandleClear(msg)
	}
	return nil
}

func (t *shortcutsTab) renderReference(width int) string {
	var b strings.Builder
	b.WriteString(SectionHeaderStyle.Render("KEYBOARD SHORTCUTS"))
	b.WriteString("  ")
	b.WriteString(DimStyle.Render("(" + GetOSName() + ")"))
	b.WriteString("\n")

	for _, section := range studioShortcuts {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(section.Title))
		b.WriteString("\n")
		for _, entry := range section.Entries {
			line := fmt.Sprintf("  %s%s",
				ValueStyle.Render(padKey(entry.Key.Get())),
				NormalStyle.Render(entry.Description))
			b.WriteString(wordwrap.String(line, max(width-2, 20)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t *shortcutsTab) View(width int) string {
	if !t.ready {
		t.SetSize(width, 20)
	}

	var b strings.Builder
	b.WriteString(t.viewport.View())
	b.WriteString("\n")
	if line, ok := t.status.Status(); ok {
		b.WriteString(statusStyle(t.status.Kind()).Render(line))
	} else {
		b.WriteString(HelpStyle.Render("↑/↓ scroll · y copy to clipboard"))
	}
	return b.String()
}
