package tui

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunReportsInterpolatedCount(t *testing.T) {
	backend := &fakeBackend{sidecarCount: 42}
	m := newMaintenanceModel(backend)
	m.clearAfter = time.Millisecond

	msgs := collectMsgs(m.Run(actionClearSidecars, "/photos"))
	if !m.State(actionClearSidecars).running {
		// Run flips running synchronously, before the backend call.
		t.Error("running flag not set while the action is in flight")
	}
	if backend.sidecarCalls != 1 {
		t.Fatalf("backend called %d times, want exactly 1", backend.sidecarCalls)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}

	result, ok := msgs[0].(actionResultMsg)
	if !ok {
		t.Fatalf("message = %T, want actionResultMsg", msgs[0])
	}

	followUps := collectMsgs(m.HandleResult(result))
	state := m.State(actionClearSidecars)
	if state.running {
		t.Error("running flag still set after completion")
	}
	if !strings.Contains(state.message, "42") {
		t.Errorf("status %q does not interpolate the returned count", state.message)
	}

	refreshes := 0
	var clear *actionClearMsg
	for _, msg := range followUps {
		switch msg := msg.(type) {
		case libraryChangedMsg:
			refreshes++
		case actionClearMsg:
			clear = &msg
		}
	}
	if refreshes != 1 {
		t.Errorf("library-refresh fired %d times, want exactly 1", refreshes)
	}
	if clear == nil {
		t.Fatal("no clear timer armed after completion")
	}

	m.HandleClear(*clear)
	state = m.State(actionClearSidecars)
	if state.running || state.message != "" {
		t.Errorf("status after clear = %+v, want idle", state)
	}
}

func TestFailureReportsErrorAndSkipsRefresh(t *testing.T) {
	backend := &fakeBackend{failWith: errors.New("disk on fire")}
	m := newMaintenanceModel(backend)
	m.clearAfter = time.Millisecond

	msgs := collectMsgs(m.Run(actionClearAITags, "/photos"))
	followUps := collectMsgs(m.HandleResult(msgs[0].(actionResultMsg)))

	state := m.State(actionClearAITags)
	if state.running {
		t.Error("running flag still set after failure")
	}
	if !strings.Contains(state.message, "disk on fire") {
		t.Errorf("status %q does not summarize the failure", state.message)
	}
	if state.kind != StatusTypeError {
		t.Errorf("status kind = %v, want error", state.kind)
	}

	var clear *actionClearMsg
	for _, msg := range followUps {
		switch msg := msg.(type) {
		case libraryChangedMsg:
			t.Error("library-refresh fired on failure")
		case actionClearMsg:
			clear = &msg
		}
	}
	// The clear timer fires regardless of outcome.
	if clear == nil {
		t.Fatal("no clear timer armed after failure")
	}
	m.HandleClear(*clear)
	if state := m.State(actionClearAITags); state.message != "" {
		t.Errorf("status after clear = %q, want empty", state.message)
	}
}

func TestStaleClearCannotWipeNewerStatus(t *testing.T) {
	backend := &fakeBackend{tagCount: 7}
	m := newMaintenanceModel(backend)
	m.clearAfter = time.Millisecond

	// First run completes; capture its clear message but do not deliver it.
	msgs := collectMsgs(m.Run(actionClearAllTags, "/photos"))
	followUps := collectMsgs(m.HandleResult(msgs[0].(actionResultMsg)))
	var staleClear actionClearMsg
	for _, msg := range followUps {
		if clear, ok := msg.(actionClearMsg); ok {
			staleClear = clear
		}
	}

	// A second run starts and finishes inside the first run's window.
	msgs = collectMsgs(m.Run(actionClearAllTags, "/photos"))
	collectMsgs(m.HandleResult(msgs[0].(actionResultMsg)))

	m.HandleClear(staleClear)
	if state := m.State(actionClearAllTags); state.message == "" {
		t.Error("a stale timer wiped the newer run's status")
	}
}

func TestClearIgnoredWhileRunning(t *testing.T) {
	backend := &fakeBackend{}
	m := newMaintenanceModel(backend)

	m.Run(actionClearThumbnails, "")
	seq := m.State(actionClearThumbnails).seq
	m.HandleClear(actionClearMsg{action: actionClearThumbnails, seq: seq})

	if state := m.State(actionClearThumbnails); state.message == "" {
		t.Error("clear removed the in-progress message of a running action")
	}
}

func TestRunWhileRunningIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	m := newMaintenanceModel(backend)

	first := m.Run(actionClearSidecars, "/photos")
	if first == nil {
		t.Fatal("first run returned no command")
	}
	if second := m.Run(actionClearSidecars, "/photos"); second != nil {
		t.Error("second run of the same action started while the first was in flight")
	}
}

func TestIndependentActionsRunConcurrently(t *testing.T) {
	backend := &fakeBackend{}
	m := newMaintenanceModel(backend)

	if m.Run(actionClearSidecars, "/photos") == nil {
		t.Fatal("first action did not start")
	}
	if m.Run(actionClearThumbnails, "") == nil {
		t.Error("a different action was blocked by an unrelated in-flight action")
	}
}
