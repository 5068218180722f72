package tui

import (
	"github.com/fstophq/fstop-cli/pkg/models"
)

// Messages passed between models. Timer-driven clears carry the sequence
// number of the status they were armed for, so a tick left over from an
// earlier status can never wipe a newer one.

// settingsLoadedMsg delivers the settings snapshot read at startup.
type settingsLoadedMsg struct {
	settings models.Settings
	err      error
}

// settingsSavedMsg reports a completed settings write. The saved document
// becomes the new shared snapshot for every tab. restart marks the
// save-and-restart path: once the write has landed, the app relaunches.
type settingsSavedMsg struct {
	settings models.Settings
	restart  bool
	err      error
}

// settingsFileChangedMsg fires when the settings file changes on disk.
// The desktop studio and this tool share the file, so edits from the other
// side arrive through here.
type settingsFileChangedMsg struct{}

// watcherErrMsg reports a settings watcher failure. The watch is best
// effort: the error is logged and the app keeps running without it.
type watcherErrMsg struct {
	err error
}

// statusClearMsg clears a transient status if it is still the one the
// timer was armed for.
type statusClearMsg struct {
	owner string
	seq   int
}

// actionResultMsg reports one finished maintenance action.
type actionResultMsg struct {
	action   maintenanceAction
	count    int
	hasCount bool
	err      error
}

// actionClearMsg resets a maintenance action's status line.
type actionClearMsg struct {
	action maintenanceAction
	seq    int
}

// libraryChangedMsg is the refresh hook fired exactly once after each
// successful maintenance action, so library views re-read their data.
type libraryChangedMsg struct{}

// statsLoadedMsg delivers fresh catalog statistics to the library tab.
type statsLoadedMsg struct {
	stats models.LibraryStats
	err   error
}

// connectionResultMsg reports a finished connector probe.
type connectionResultMsg struct {
	err error
}

// connectionClearMsg resets the connection tester to idle.
type connectionClearMsg struct {
	seq int
}

// modelsListedMsg delivers the connector's model list to the AI tab.
type modelsListedMsg struct {
	models []string
	err    error
}

// relaunchFailedMsg reports that the replacement process could not start.
// On success there is no message: the app quits.
type relaunchFailedMsg struct {
	err error
}
