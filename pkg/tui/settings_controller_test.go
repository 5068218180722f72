package tui

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fstophq/fstop-cli/pkg/models"
)

func TestApplyImmediateKeySavesRightAway(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	cmd := c.Apply(models.KeyTheme, "light")
	if cmd == nil {
		t.Fatal("immediate key returned no save command")
	}
	collectMsgs(cmd)

	if len(io.saved) != 1 {
		t.Fatalf("saved %d documents, want 1", len(io.saved))
	}
	if got := io.saved[0].Theme(); got != "light" {
		t.Errorf("saved theme = %q, want light", got)
	}
	if c.RestartPending() {
		t.Error("immediate key set the restart flag")
	}
	if got := c.Current().Theme(); got != "light" {
		t.Errorf("snapshot theme = %q, want light (optimistic adopt)", got)
	}
}

func TestApplyGatedKeyNeverTouchesStore(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	for _, key := range models.RestartGatedKeys() {
		var value any = "cpu"
		if key == models.KeyPreferDiscreteGPU {
			value = false
		}
		if cmd := c.Apply(key, value); cmd != nil {
			t.Errorf("gated key %s returned a save command", key)
		}
	}

	if len(io.saved) != 0 {
		t.Fatalf("gated edits wrote %d documents, want 0", len(io.saved))
	}
	if !c.RestartPending() {
		t.Error("gated edits did not set the restart flag")
	}
	// The saved snapshot still answers with the old values.
	if got := c.Current().ProcessingEngine(); got != models.EngineAuto {
		t.Errorf("snapshot engine = %q, want auto", got)
	}
	// The draft answers with the pending ones.
	if got := c.DraftEngine(); got != models.EngineCPU {
		t.Errorf("draft engine = %q, want cpu", got)
	}
	if c.DraftPreferDiscreteGPU() {
		t.Error("draft GPU flag = true, want false")
	}
}

func TestGatedKeyBackToSavedValueUndrafts(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	c.Apply(models.KeyProcessingEngine, models.EngineGPU)
	if !c.RestartPending() {
		t.Fatal("drafting a change did not set the restart flag")
	}

	// auto is the saved (default) value, so the draft entry goes away.
	c.Apply(models.KeyProcessingEngine, models.EngineAuto)
	if c.RestartPending() {
		t.Error("reverting to the saved value left the restart flag set")
	}
}

func TestExternalSnapshotDiscardsDraft(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	c.Apply(models.KeyProcessingEngine, models.EngineGPU)
	if !c.RestartPending() {
		t.Fatal("draft not pending before external change")
	}

	external := models.NewSettings().With(models.KeyTheme, "light")
	c.SetSnapshot(external)

	if c.RestartPending() {
		t.Error("external snapshot did not clear the restart flag")
	}
	if got := c.DraftEngine(); got != models.EngineAuto {
		t.Errorf("draft engine after external change = %q, want auto", got)
	}
}

func TestAdoptOwnSaveKeepsDraft(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	c.Apply(models.KeyProcessingEngine, models.EngineCPU)
	c.AdoptOwnSave(c.Current().With(models.KeyTheme, "light"))

	if !c.RestartPending() {
		t.Error("our own save discarded the pending draft")
	}
}

func TestCommitDraftMergesEveryGatedEdit(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings().With(models.KeyTheme, "light"))

	c.Apply(models.KeyProcessingEngine, models.EngineGPU)
	c.Apply(models.KeyPreferDiscreteGPU, false)

	merged := c.CommitDraft()
	if got := merged.ProcessingEngine(); got != models.EngineGPU {
		t.Errorf("merged engine = %q, want gpu", got)
	}
	if merged.PreferDiscreteGPU() {
		t.Error("merged GPU flag = true, want false")
	}
	if got := merged.Theme(); got != "light" {
		t.Errorf("merge dropped unrelated key: theme = %q, want light", got)
	}
}

func TestSaveDraftCmdWritesMergedDocument(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings())

	c.Apply(models.KeyProcessingEngine, models.EngineCPU)
	msgs := collectMsgs(c.SaveDraftCmd())

	if len(io.saved) != 1 {
		t.Fatalf("saved %d documents, want 1", len(io.saved))
	}
	if got := io.saved[0].ProcessingEngine(); got != models.EngineCPU {
		t.Errorf("saved engine = %q, want cpu", got)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	saved, ok := msgs[0].(settingsSavedMsg)
	if !ok {
		t.Fatalf("message = %T, want settingsSavedMsg", msgs[0])
	}
	if !saved.restart {
		t.Error("save-and-restart message missing the restart mark")
	}
}

func TestApplyOnDecodedDocumentKeepsSiblings(t *testing.T) {
	// Snapshot straight out of yaml.Unmarshal, the shape the load path hands
	// the controller. Editing one key must not disturb siblings or keys only
	// the desktop app knows about.
	raw := "general:\n  theme: dark\n  last_root_path: /photos\ndevelop:\n  histogram: luminance\n"
	var loaded models.Settings
	if err := yaml.Unmarshal([]byte(raw), &loaded); err != nil {
		t.Fatal(err)
	}

	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(loaded)

	if got := c.Current().LastRootPath(); got != "/photos" {
		t.Fatalf("loaded snapshot resolves LastRootPath() = %q, want /photos", got)
	}

	collectMsgs(c.Apply(models.KeyTheme, "light"))

	if len(io.saved) != 1 {
		t.Fatalf("saved %d documents, want 1", len(io.saved))
	}
	saved := io.saved[0]
	if got := saved.Theme(); got != "light" {
		t.Errorf("saved theme = %q, want light", got)
	}
	if got := saved.LastRootPath(); got != "/photos" {
		t.Errorf("saved LastRootPath() = %q, want /photos (sibling lost)", got)
	}
	if v, ok := saved.Get("develop.histogram"); !ok || v != "luminance" {
		t.Errorf("unknown key after save = %v, want luminance", v)
	}
}

func TestApplyGroupVisibleMergesIntoStoredMap(t *testing.T) {
	io := newFakeSettingsIO(nil)
	c := newSettingsController(io)
	c.SetSnapshot(models.NewSettings().WithGroupVisible(models.GroupChromaticAberration, true))

	collectMsgs(c.ApplyGroupVisible(models.GroupGrain, false))

	got := c.Current()
	if !got.GroupVisible(models.GroupChromaticAberration) {
		t.Error("toggling grain lost the stored chromatic_aberration entry")
	}
	if got.GroupVisible(models.GroupGrain) {
		t.Error("grain still visible after toggle")
	}
}
