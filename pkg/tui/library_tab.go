package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fstophq/fstop-cli/pkg/models"
)

// libraryFocus selects which part of the library tab has the keyboard.
type libraryFocus int

const (
	focusShortcutInput libraryFocus = iota
	focusShortcutList
	focusActions
)

// libraryTab combines the tagging-shortcut editor with the destructive
// maintenance actions and the catalog statistics they operate on.
type libraryTab struct {
	controller  *settingsController
	backend     Backend
	maintenance *maintenanceModel
	confirm     *ConfirmationModel
	spin        spinner.Model

	focus        libraryFocus
	input        textinput.Model
	listCursor   int
	actionCursor int

	explicitRoot string
	stats        models.LibraryStats
	statsLoaded  bool
}

func newLibraryTab(controller *settingsController, backend Backend, explicitRoot string) *libraryTab {
	input := textinput.New()
	input.Placeholder = "new shortcut tag"
	input.CharLimit = 50
	input.Width = 30
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &libraryTab{
		controller:   controller,
		backend:      backend,
		maintenance:  newMaintenanceModel(backend),
		confirm:      NewConfirmation(),
		spin:         spin,
		input:        input,
		explicitRoot: explicitRoot,
	}
}

// effectiveRoot resolves the library root actions run against: the root
// given on the command line wins, otherwise the one the studio last had
// open. Empty keeps root-scoped actions disabled.
func (t *libraryTab) effectiveRoot() string {
	return models.EffectiveRoot(t.explicitRoot, t.controller.Current())
}

// Editing reports whether this tab must see every key: while the shortcut
// input has focus or a dialog is open, global keys like q stay out of the
// way.
func (t *libraryTab) Editing() bool {
	return t.confirm.Active() || t.focus == focusShortcutInput
}

// Confirm exposes the tab's dialog for overlay rendering.
func (t *libraryTab) Confirm() *ConfirmationModel {
	return t.confirm
}

// LoadStats re-reads the catalog statistics off the event loop.
func (t *libraryTab) LoadStats() tea.Cmd {
	backend := t.backend
	root := t.effectiveRoot()
	return func() tea.Msg {
		stats, err := backend.Stats(context.Background(), root)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (t *libraryTab) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)
	case actionResultMsg:
		return t.maintenance.HandleResult(msg)
	case actionClearMsg:
		t.maintenance.HandleClear(msg)
	case statsLoadedMsg:
		if msg.err == nil {
			t.stats = msg.stats
			t.statsLoaded = true
		}
	case spinner.TickMsg:
		if t.anyActionRunning() {
			var cmd tea.Cmd
			t.spin, cmd = t.spin.Update(msg)
			return cmd
		}
	}
	return nil
}

func (t *libraryTab) anyActionRunning() bool {
	for _, a := range maintenanceActions {
		if t.maintenance.Running(a) {
			return true
		}
	}
	return false
}

func (t *libraryTab) handleKey(msg tea.KeyMsg) tea.Cmd {
	if t.confirm.Active() {
		return t.confirm.Update(msg)
	}

	if msg.String() == "tab" {
		t.cycleFocus()
		return nil
	}

	switch t.focus {
	case focusShortcutInput:
		return t.handleInputKey(msg)
	case focusShortcutList:
		return t.handleListKey(msg)
	case focusActions:
		return t.handleActionKey(msg)
	}
	return nil
}

func (t *libraryTab) cycleFocus() {
	switch t.focus {
	case focusShortcutInput:
		t.input.Blur()
		if len(t.shortcuts()) > 0 {
			t.focus = focusShortcutList
		} else {
			t.focus = focusActions
		}
	case focusShortcutList:
		t.focus = focusActions
	case focusActions:
		t.focus = focusShortcutInput
		t.input.Focus()
	}
}

func (t *libraryTab) shortcuts() []string {
	return models.NormalizeShortcuts(t.controller.Current().TaggingShortcuts())
}

// handleInputKey drives the add path. Enter submits whatever is typed; the
// field clears either way, accepted or not.
func (t *libraryTab) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		t.input.Blur()
		t.focus = focusActions
		return nil
	}
	if msg.String() == "enter" {
		raw := t.input.Value()
		t.input.SetValue("")
		list, changed := models.AddShortcut(t.shortcuts(), raw)
		if !changed {
			return nil
		}
		return t.controller.Apply(models.KeyTaggingShortcuts, list)
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *libraryTab) handleListKey(msg tea.KeyMsg) tea.Cmd {
	list := t.shortcuts()
	if t.listCursor >= len(list) {
		t.listCursor = max(0, len(list)-1)
	}
	switch msg.String() {
	case "up", "k":
		if t.listCursor > 0 {
			t.listCursor--
		}
	case "down", "j":
		if t.listCursor < len(list)-1 {
			t.listCursor++
		}
	case "d", "x", "backspace", "delete":
		if len(list) == 0 {
			return nil
		}
		next := models.RemoveShortcut(list, list[t.listCursor])
		if t.listCursor >= len(next) {
			t.listCursor = max(0, len(next)-1)
		}
		return t.controller.Apply(models.KeyTaggingShortcuts, next)
	}
	return nil
}

func (t *libraryTab) handleActionKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if t.actionCursor > 0 {
			t.actionCursor--
		}
	case "down", "j":
		if t.actionCursor < len(maintenanceActions)-1 {
			t.actionCursor++
		}
	case "enter", " ":
		return t.requestAction(maintenanceActions[t.actionCursor])
	}
	return nil
}

// requestAction opens the confirmation for one maintenance action. A
// disabled action (no root, or already running) opens nothing.
func (t *libraryTab) requestAction(action maintenanceAction) tea.Cmd {
	root := t.effectiveRoot()
	if action.needsRoot() && root == "" {
		return nil
	}
	if t.maintenance.Running(action) {
		return nil
	}

	t.confirm.Show(ConfirmationConfig{
		Title:       action.confirmTitle(),
		Message:     action.confirmMessage(root),
		Warning:     action.confirmWarning(),
		Destructive: true,
	}, func() tea.Cmd {
		return tea.Batch(t.maintenance.Run(action, root), t.spin.Tick)
	}, nil)
	return nil
}

func (t *libraryTab) View(width int) string {
	var b strings.Builder

	b.WriteString(SectionHeaderStyle.Render("TAGGING SHORTCUTS"))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("One-key tags offered while culling"))
	b.WriteString("\n\n")
	b.WriteString("  " + t.input.View())
	b.WriteString("\n\n")
	b.WriteString(t.viewShortcuts())
	b.WriteString("\n")

	b.WriteString(SectionHeaderStyle.Render("MAINTENANCE"))
	b.WriteString("\n")
	root := t.effectiveRoot()
	if root == "" {
		b.WriteString(WarningStyle.Render("No library root known; root-scoped actions are disabled"))
	} else {
		b.WriteString(DimStyle.Render("Library root: " + root))
	}
	b.WriteString("\n\n")
	b.WriteString(t.viewActions(root))
	b.WriteString("\n")
	b.WriteString(t.viewStats())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab switch section · esc leave input · enter run · d remove shortcut"))
	return b.String()
}

func (t *libraryTab) viewShortcuts() string {
	list := t.shortcuts()
	if len(list) == 0 {
		return DimStyle.Render("  (no shortcuts yet)") + "\n"
	}
	var b strings.Builder
	for i, tag := range list {
		marker := "  "
		style := NormalStyle
		if t.focus == focusShortcutList && i == t.listCursor {
			marker = SelectedStyle.Render("> ")
			style = SelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, style.Render("#"+tag)))
	}
	return b.String()
}

func (t *libraryTab) viewActions(root string) string {
	var b strings.Builder
	for i, action := range maintenanceActions {
		state := t.maintenance.State(action)
		disabled := action.needsRoot() && root == ""

		marker := "  "
		style := NormalStyle
		if disabled {
			style = DisabledStyle
		}
		if t.focus == focusActions && i == t.actionCursor {
			marker = SelectedStyle.Render("> ")
			if !disabled {
				style = SelectedStyle
			}
		}

		line := fmt.Sprintf("%s%s", marker, style.Render(action.label()))
		if state.running {
			line += "  " + t.spin.View() + " " + DimStyle.Render(state.message)
		} else if state.message != "" {
			line += "  " + statusStyle(state.kind).Render(state.message)
		} else if disabled {
			line += "  " + DimStyle.Render("(needs library root)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (t *libraryTab) viewStats() string {
	if !t.statsLoaded {
		return ""
	}
	s := t.stats
	return DimStyle.Render(fmt.Sprintf(
		"Catalog: %d photos · %d user tags · %d AI tags · %d sidecars · %d thumbnails (%s)",
		s.Photos, s.UserTags, s.AITags, s.Sidecars, s.ThumbnailCount,
		formatBytes(s.ThumbnailBytes))) + "\n"
}

func statusStyle(kind StatusType) lipgloss.Style {
	switch kind {
	case StatusTypeSuccess:
		return SuccessStyle
	case StatusTypeWarning:
		return WarningStyle
	case StatusTypeError:
		return ErrorStyle
	default:
		return DimStyle
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
