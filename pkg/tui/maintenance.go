package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maintenanceAction identifies one destructive library operation.
type maintenanceAction int

const (
	actionClearSidecars maintenanceAction = iota
	actionClearAITags
	actionClearAllTags
	actionClearThumbnails
)

// maintenanceActions lists the actions in display order.
var maintenanceActions = []maintenanceAction{
	actionClearSidecars,
	actionClearAITags,
	actionClearAllTags,
	actionClearThumbnails,
}

func (a maintenanceAction) label() string {
	switch a {
	case actionClearSidecars:
		return "Clear all edit sidecars"
	case actionClearAITags:
		return "Clear AI tags"
	case actionClearAllTags:
		return "Clear all tags"
	case actionClearThumbnails:
		return "Clear thumbnail cache"
	default:
		return "Unknown action"
	}
}

// needsRoot reports whether the action operates on a library root. Root
// scoped actions stay disabled until an effective root is known.
func (a maintenanceAction) needsRoot() bool {
	return a != actionClearThumbnails
}

func (a maintenanceAction) confirmTitle() string {
	switch a {
	case actionClearSidecars:
		return "Clear Edit Sidecars"
	case actionClearAITags:
		return "Clear AI Tags"
	case actionClearAllTags:
		return "Clear All Tags"
	case actionClearThumbnails:
		return "Clear Thumbnail Cache"
	default:
		return ""
	}
}

func (a maintenanceAction) confirmMessage(root string) string {
	switch a {
	case actionClearSidecars:
		return fmt.Sprintf("Delete every .fsx edit sidecar under %s?", root)
	case actionClearAITags:
		return fmt.Sprintf("Remove all AI-generated tags from photos under %s?", root)
	case actionClearAllTags:
		return fmt.Sprintf("Remove ALL tags, yours and AI's, from photos under %s?", root)
	case actionClearThumbnails:
		return "Drop the rendered thumbnail cache? Thumbnails re-render on demand."
	default:
		return ""
	}
}

func (a maintenanceAction) confirmWarning() string {
	switch a {
	case actionClearSidecars:
		return "All edits stored in sidecars will be lost."
	case actionClearAllTags:
		return "This cannot be undone."
	default:
		return ""
	}
}

func (a maintenanceAction) runningMessage() string {
	switch a {
	case actionClearSidecars:
		return "Clearing sidecars..."
	case actionClearAITags:
		return "Clearing AI tags..."
	case actionClearAllTags:
		return "Clearing tags..."
	case actionClearThumbnails:
		return "Clearing thumbnail cache..."
	default:
		return "Working..."
	}
}

// successMessage interpolates the count returned by count-returning
// operations.
func (a maintenanceAction) successMessage(count int, hasCount bool) string {
	switch a {
	case actionClearSidecars:
		return fmt.Sprintf("Removed %d sidecar file(s)", count)
	case actionClearAITags:
		return fmt.Sprintf("Removed %d AI tag(s)", count)
	case actionClearAllTags:
		return fmt.Sprintf("Removed %d tag(s)", count)
	case actionClearThumbnails:
		return "Thumbnail cache cleared"
	default:
		if hasCount {
			return fmt.Sprintf("Done (%d)", count)
		}
		return "Done"
	}
}

// actionState is one action's transient status. Every run bumps seq; the
// clear timer armed when the run finishes carries that stamp, so a timer
// belonging to a superseded run cannot wipe a newer status.
type actionState struct {
	running bool
	message string
	kind    StatusType
	seq     int
}

// maintenanceModel is the confirmed-action executor: it owns an
// independent status per destructive action and drives each one through
// run, report, and timed clear. Confirmation itself lives with the tab
// that renders the dialog; by the time Run is called the user has already
// said yes.
type maintenanceModel struct {
	backend    Backend
	states     map[maintenanceAction]*actionState
	clearAfter time.Duration
}

func newMaintenanceModel(backend Backend) *maintenanceModel {
	states := make(map[maintenanceAction]*actionState, len(maintenanceActions))
	for _, a := range maintenanceActions {
		states[a] = &actionState{}
	}
	return &maintenanceModel{
		backend:    backend,
		states:     states,
		clearAfter: statusClearAfter,
	}
}

// State returns the status for one action.
func (m *maintenanceModel) State(a maintenanceAction) actionState {
	return *m.states[a]
}

// Running reports whether the action is currently executing. The tab uses
// it to keep the triggering control disabled, so one action can never run
// twice concurrently while two different actions can.
func (m *maintenanceModel) Running(a maintenanceAction) bool {
	return m.states[a].running
}

// Run starts a confirmed action: exactly one backend call per confirm.
func (m *maintenanceModel) Run(a maintenanceAction, root string) tea.Cmd {
	st := m.states[a]
	if st.running {
		return nil
	}
	st.running = true
	st.message = a.runningMessage()
	st.kind = StatusTypeInfo
	st.seq++

	backend := m.backend
	return func() tea.Msg {
		ctx := context.Background()
		switch a {
		case actionClearSidecars:
			count, err := backend.ClearAllSidecars(ctx, root)
			return actionResultMsg{action: a, count: count, hasCount: err == nil, err: err}
		case actionClearAITags:
			count, err := backend.ClearAITags(ctx, root)
			return actionResultMsg{action: a, count: count, hasCount: err == nil, err: err}
		case actionClearAllTags:
			count, err := backend.ClearAllTags(ctx, root)
			return actionResultMsg{action: a, count: count, hasCount: err == nil, err: err}
		case actionClearThumbnails:
			err := backend.ClearThumbnailCache(ctx)
			return actionResultMsg{action: a, err: err}
		default:
			return actionResultMsg{action: a, err: fmt.Errorf("unknown action %d", a)}
		}
	}
}

// HandleResult records the outcome and arms the clear timer. The timer
// always fires, success or failure. On success the library-refresh
// notification goes out exactly once so dependent views re-read their
// data; a failure refreshes nothing.
func (m *maintenanceModel) HandleResult(msg actionResultMsg) tea.Cmd {
	st := m.states[msg.action]
	st.running = false

	if msg.err != nil {
		st.message = fmt.Sprintf("Failed: %v", msg.err)
		st.kind = StatusTypeError
	} else {
		st.message = msg.action.successMessage(msg.count, msg.hasCount)
		st.kind = StatusTypeSuccess
	}

	action := msg.action
	seq := st.seq
	clear := tea.Tick(m.clearAfter, func(time.Time) tea.Msg {
		return actionClearMsg{action: action, seq: seq}
	})

	if msg.err != nil {
		return clear
	}
	return tea.Batch(clear, func() tea.Msg {
		return libraryChangedMsg{}
	})
}

// HandleClear resets an action's status, unless the stamp shows the timer
// belongs to a run that has since been superseded.
func (m *maintenanceModel) HandleClear(msg actionClearMsg) {
	st := m.states[msg.action]
	if msg.seq != st.seq || st.running {
		return
	}
	st.message = ""
	st.kind = StatusTypeInfo
}
