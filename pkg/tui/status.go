package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusClearAfter is how long transient statuses stay on screen.
const statusClearAfter = 3 * time.Second

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusManager manages one owner's transient status line. Every Show bumps
// a sequence number and arms a clear timer stamped with it; a timer from an
// overwritten status arrives with a stale stamp and is ignored. The last
// writer always wins, and a status can never be wiped by an older timer.
type StatusManager struct {
	owner    string
	message  string
	icon     string
	kind     StatusType
	seq      int
	duration time.Duration
}

// NewStatusManager creates a status manager. The owner tag keeps clear
// messages from other models' managers from being taken as ours.
func NewStatusManager(owner string) *StatusManager {
	return &StatusManager{
		owner:    owner,
		duration: statusClearAfter,
	}
}

// ShowFeedback displays a status message and returns the command that
// clears it after the display duration.
func (sm *StatusManager) ShowFeedback(icon, message string, kind StatusType) tea.Cmd {
	sm.message = message
	sm.icon = icon
	sm.kind = kind
	sm.seq++

	seq := sm.seq
	owner := sm.owner
	return tea.Tick(sm.duration, func(time.Time) tea.Msg {
		return statusClearMsg{owner: owner, seq: seq}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback("✓", message, StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback("⚠", message, StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback("×", message, StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback("ℹ", message, StatusTypeInfo)
}

// HandleClear processes a clear message, wiping the status only when the
// stamp matches the currently shown one.
func (sm *StatusManager) HandleClear(msg statusClearMsg) {
	if msg.owner != sm.owner || msg.seq != sm.seq {
		return
	}
	sm.message = ""
	sm.icon = ""
}

// Clear removes the current status immediately.
func (sm *StatusManager) Clear() {
	sm.message = ""
	sm.icon = ""
	sm.seq++
}

// Active reports whether a status is currently showing.
func (sm *StatusManager) Active() bool {
	return sm.message != ""
}

// Status returns the rendered status line if one is showing.
func (sm *StatusManager) Status() (string, bool) {
	if sm.message == "" {
		return "", false
	}
	return fmt.Sprintf("%s %s", sm.icon, sm.message), true
}

// Kind returns the current status type.
func (sm *StatusManager) Kind() StatusType {
	return sm.kind
}
