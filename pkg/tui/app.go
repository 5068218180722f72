// Package tui is the interactive settings console for the F/Stop studio.
// Everything runs on one bubbletea event loop: settings edits, destructive
// maintenance actions, the connector probe, and the watcher that follows
// external changes to the shared settings file.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type tabID int

const (
	tabGeneral tabID = iota
	tabInterface
	tabProcessing
	tabLibrary
	tabAI
	tabShortcuts
	tabCount
)

var tabNames = []string{"General", "Interface", "Processing", "Library", "AI", "Shortcuts"}

type App struct {
	controller *settingsController
	backend    Backend
	logger     *zap.Logger
	watcher    *settingsWatcher

	activeTab  tabID
	general    *generalTab
	iface      *interfaceTab
	processing *processingTab
	library    *libraryTab
	ai         *aiTab
	shortcuts  *shortcutsTab

	status *StatusManager

	width      int
	height     int
	loadedOnce bool
}

// NewApp wires the console. explicitRoot is the --root override; empty
// means maintenance actions fall back to the root saved in settings.
func NewApp(backend Backend, io SettingsIO, logger *zap.Logger, explicitRoot string) *App {
	controller := newSettingsController(io)

	a := &App{
		controller: controller,
		backend:    backend,
		logger:     logger,
		general:    newGeneralTab(controller),
		iface:      newInterfaceTab(controller),
		processing: newProcessingTab(controller),
		library:    newLibraryTab(controller, backend, explicitRoot),
		ai:         newAITab(controller, backend),
		shortcuts:  newShortcutsTab(),
		status:     NewStatusManager("app"),
	}

	// The watch is best effort: without it external edits only show up on
	// the next launch.
	if path, err := io.Path(); err == nil {
		if w, werr := newSettingsWatcher(path); werr == nil {
			a.watcher = w
		} else {
			logger.Warn("settings watch unavailable", zap.Error(werr))
		}
	}

	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.controller.Load()}
	if a.watcher != nil {
		cmds = append(cmds, a.watcher.Wait())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.shortcuts.SetSize(msg.Width-4, msg.Height-6)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case settingsLoadedMsg:
		return a.handleLoaded(msg)

	case settingsSavedMsg:
		return a.handleSaved(msg)

	case settingsFileChangedMsg:
		cmds := []tea.Cmd{a.controller.Load()}
		if a.watcher != nil {
			cmds = append(cmds, a.watcher.Wait())
		}
		return a, tea.Batch(cmds...)

	case watcherErrMsg:
		a.logger.Warn("settings watcher error", zap.Error(msg.err))
		if a.watcher != nil {
			return a, a.watcher.Wait()
		}
		return a, nil

	case statusClearMsg:
		a.status.HandleClear(msg)
		return a, a.shortcuts.Update(msg)

	case actionResultMsg, actionClearMsg, statsLoadedMsg, spinner.TickMsg:
		return a, a.library.Update(msg)

	case libraryChangedMsg:
		return a, a.library.LoadStats()

	case connectionResultMsg, connectionClearMsg, modelsListedMsg:
		return a, a.ai.Update(msg)

	case relaunchFailedMsg:
		a.logger.Error("relaunch failed", zap.Error(msg.err))
		return a, a.status.ShowError("Restart failed; please relaunch manually")
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a.quit()
	}

	// Tab switching stays available unless the active tab is mid-edit or
	// has a dialog open.
	if !a.activeTabEditing() {
		switch msg.String() {
		case "q":
			return a.quit()
		case "1", "2", "3", "4", "5", "6":
			a.activeTab = tabID(msg.String()[0] - '1')
			return a, nil
		case "[":
			a.activeTab = (a.activeTab - 1 + tabCount) % tabCount
			return a, nil
		case "]":
			a.activeTab = (a.activeTab + 1) % tabCount
			return a, nil
		}
	}

	switch a.activeTab {
	case tabGeneral:
		return a, a.general.Update(msg)
	case tabInterface:
		return a, a.iface.Update(msg)
	case tabProcessing:
		return a, a.processing.Update(msg)
	case tabLibrary:
		return a, a.library.Update(msg)
	case tabAI:
		return a, a.ai.Update(msg)
	case tabShortcuts:
		return a, a.shortcuts.Update(msg)
	}
	return a, nil
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	if a.watcher != nil {
		a.watcher.Close()
	}
	return a, tea.Quit
}

func (a *App) activeTabEditing() bool {
	switch a.activeTab {
	case tabGeneral:
		return a.general.Editing()
	case tabProcessing:
		return a.processing.Editing()
	case tabLibrary:
		return a.library.Editing()
	case tabAI:
		return a.ai.Editing()
	default:
		return false
	}
}

func (a *App) handleLoaded(msg settingsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("settings load failed", zap.Error(msg.err))
		return a, a.status.ShowError("Could not read settings file")
	}

	external := a.loadedOnce && !sameDocument(msg.settings, a.controller.Current())
	if !a.loadedOnce || external {
		// An external change is authoritative: the snapshot is replaced
		// and any pending restart-gated edits are discarded with it.
		a.controller.SetSnapshot(msg.settings)
	}

	var cmds []tea.Cmd
	if !a.loadedOnce {
		a.loadedOnce = true
		cmds = append(cmds, a.library.LoadStats())
	} else if external {
		cmds = append(cmds, a.status.ShowInfo("Settings reloaded (changed outside this console)"))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("settings save failed", zap.Error(msg.err))
		return a, a.status.ShowError("Could not save settings")
	}

	a.controller.AdoptOwnSave(msg.settings)
	if !msg.restart {
		return a, nil
	}

	backend := a.backend
	if a.watcher != nil {
		a.watcher.Close()
	}
	return a, func() tea.Msg {
		if err := backend.Relaunch(); err != nil {
			return relaunchFailedMsg{err: err}
		}
		return tea.QuitMsg{}
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if dialog := a.activeDialog(); dialog != nil && dialog.Active() {
		return dialog.Overlay(a.width, a.height)
	}

	var b strings.Builder
	b.WriteString(a.renderTabBar())
	b.WriteString("\n\n")

	var content string
	switch a.activeTab {
	case tabGeneral:
		content = a.general.View(a.width)
	case tabInterface:
		content = a.iface.View(a.width)
	case tabProcessing:
		content = a.processing.View(a.width)
	case tabLibrary:
		content = a.library.View(a.width)
	case tabAI:
		content = a.ai.View(a.width)
	case tabShortcuts:
		content = a.shortcuts.View(a.width)
	}
	b.WriteString(content)

	if a.controller.RestartPending() && a.activeTab != tabProcessing {
		b.WriteString("\n")
		b.WriteString(RestartBannerStyle.Render(" Restart pending — see Processing tab "))
	}

	if line, ok := a.status.Status(); ok {
		b.WriteString("\n")
		b.WriteString(StatusBarStyle.Render(line))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (a *App) activeDialog() *ConfirmationModel {
	switch a.activeTab {
	case tabProcessing:
		return a.processing.Confirm()
	case tabLibrary:
		return a.library.Confirm()
	default:
		return nil
	}
}

func (a *App) renderTabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tabID(i) == a.activeTab {
			parts = append(parts, TabActiveStyle.Render(name))
		} else {
			parts = append(parts, TabInactiveStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
