package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/fstophq/fstop-cli/pkg/models"
)

func newTestAITab(backend *fakeBackend, settings models.Settings) *aiTab {
	controller := newSettingsController(newFakeSettingsIO(settings))
	controller.SetSnapshot(settings)
	tab := newAITab(controller, backend)
	tab.clearAfter = time.Millisecond
	return tab
}

func TestConnectionTestEmptyAddressIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	tab := newTestAITab(backend, models.NewSettings())

	if cmd := tab.test(); cmd != nil {
		t.Error("test with empty address returned a command")
	}
	if backend.testCalls != 0 {
		t.Errorf("backend probed %d times, want 0", backend.testCalls)
	}
	if tab.conn.testing || tab.conn.message != "" || tab.conn.success != nil {
		t.Errorf("connection state changed: %+v", tab.conn)
	}
}

func TestConnectionTestSuccess(t *testing.T) {
	backend := &fakeBackend{}
	settings := models.NewSettings().With(models.KeyConnectorAddress, "http://localhost:11434/v1")
	tab := newTestAITab(backend, settings)

	cmd := tab.test()
	if cmd == nil {
		t.Fatal("test returned no command")
	}
	if !tab.conn.testing {
		t.Error("testing flag not set synchronously")
	}

	msgs := collectMsgs(cmd)
	if backend.testCalls != 1 {
		t.Fatalf("backend probed %d times, want 1", backend.testCalls)
	}
	if backend.testAddress != "http://localhost:11434/v1" {
		t.Errorf("probed address = %q", backend.testAddress)
	}

	followUps := collectMsgs(tab.handleResult(msgs[0].(connectionResultMsg)))
	if tab.conn.testing {
		t.Error("testing flag still set after result")
	}
	if tab.conn.success == nil || !*tab.conn.success {
		t.Error("success not recorded")
	}
	if tab.conn.message != "Connected" {
		t.Errorf("message = %q, want Connected", tab.conn.message)
	}

	// The armed timer resets the tester to idle.
	if len(followUps) != 1 {
		t.Fatalf("got %d follow-up messages, want 1", len(followUps))
	}
	tab.Update(followUps[0])
	if tab.conn.testing || tab.conn.success != nil || tab.conn.message != "" {
		t.Errorf("state after clear = %+v, want idle", tab.conn)
	}
}

func TestConnectionTestFailureHidesDetail(t *testing.T) {
	backend := &fakeBackend{failWith: errors.New("connection refused to 10.0.0.1")}
	settings := models.NewSettings().With(models.KeyConnectorAddress, "http://10.0.0.1/v1")
	tab := newTestAITab(backend, settings)

	msgs := collectMsgs(tab.test())
	collectMsgs(tab.handleResult(msgs[0].(connectionResultMsg)))

	if tab.conn.success == nil || *tab.conn.success {
		t.Error("failure not recorded")
	}
	// The detail goes to the log, never the screen.
	if tab.conn.message != "Connection failed" {
		t.Errorf("message = %q, want the generic failure text", tab.conn.message)
	}
}

func TestConnectionTestWhileTestingIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	settings := models.NewSettings().With(models.KeyConnectorAddress, "http://localhost:1234/v1")
	tab := newTestAITab(backend, settings)

	if tab.test() == nil {
		t.Fatal("first test did not start")
	}
	if tab.test() != nil {
		t.Error("second test started while the first was in flight")
	}
}

func TestStaleConnectionClearIgnored(t *testing.T) {
	backend := &fakeBackend{}
	settings := models.NewSettings().With(models.KeyConnectorAddress, "http://localhost:1234/v1")
	tab := newTestAITab(backend, settings)

	msgs := collectMsgs(tab.test())
	first := collectMsgs(tab.handleResult(msgs[0].(connectionResultMsg)))
	staleClear := first[0].(connectionClearMsg)

	// A second probe completes before the first clear fires.
	msgs = collectMsgs(tab.test())
	collectMsgs(tab.handleResult(msgs[0].(connectionResultMsg)))

	tab.Update(staleClear)
	if tab.conn.message == "" {
		t.Error("a stale timer wiped the newer probe's result")
	}
}
