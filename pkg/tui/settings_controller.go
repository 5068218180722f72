package tui

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/fstophq/fstop-cli/pkg/models"
)

// settingsController owns the shared settings snapshot and classifies every
// write. Restart-gated keys are held in a local draft until the user saves
// and restarts the studio; every other key is merged into the full document
// and saved immediately. A settings change arriving from outside (the
// desktop app, another instance) replaces the snapshot and throws the draft
// away, restart flag included.
type settingsController struct {
	io      SettingsIO
	current models.Settings
	draft   map[string]any
}

func newSettingsController(io SettingsIO) *settingsController {
	return &settingsController{
		io:      io,
		current: models.NewSettings(),
		draft:   map[string]any{},
	}
}

// Load reads the settings file off the event loop.
func (c *settingsController) Load() tea.Cmd {
	io := c.io
	return func() tea.Msg {
		settings, err := io.Load()
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

// SetSnapshot installs an externally produced settings document as the new
// truth. Pending restart-gated edits are discarded: the external writer
// won, and the restart flag resets with them.
func (c *settingsController) SetSnapshot(s models.Settings) {
	c.current = s
	c.draft = map[string]any{}
}

// Current returns the settings snapshot all reads go through.
func (c *settingsController) Current() models.Settings {
	return c.current
}

// Apply routes one settings change. For an immediate key it merges the
// change into the document, adopts it optimistically, and returns the save
// command. For a restart-gated key it only updates the draft and returns
// nil: nothing hits the file until CommitDraft. Setting a gated key back to
// its saved value un-drafts it.
func (c *settingsController) Apply(key string, value any) tea.Cmd {
	if models.RestartRequired(key) {
		saved, _ := c.current.Get(key)
		if gatedEqual(saved, value, key, c.current) {
			delete(c.draft, key)
		} else {
			c.draft[key] = value
		}
		return nil
	}

	next := c.current.With(key, value)
	c.current = next
	return c.saveCmd(next)
}

// ApplyGroupVisible merges one adjustment group toggle and saves. The
// merge preserves the stored entries for every other group.
func (c *settingsController) ApplyGroupVisible(group string, visible bool) tea.Cmd {
	next := c.current.WithGroupVisible(group, visible)
	c.current = next
	return c.saveCmd(next)
}

func (c *settingsController) saveCmd(next models.Settings) tea.Cmd {
	io := c.io
	return func() tea.Msg {
		if err := io.Save(next); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{settings: next}
	}
}

// gatedEqual compares a drafted value against the saved one, resolving the
// saved side through the key's documented default when it is absent.
func gatedEqual(saved, value any, key string, s models.Settings) bool {
	if saved == nil {
		switch key {
		case models.KeyProcessingEngine:
			saved = s.ProcessingEngine()
		case models.KeyPreferDiscreteGPU:
			saved = s.PreferDiscreteGPU()
		}
	}
	return reflect.DeepEqual(saved, value)
}

// RestartPending reports whether any gated edits await a restart.
func (c *settingsController) RestartPending() bool {
	return len(c.draft) > 0
}

// Drafted reports whether key has an unsaved drafted value.
func (c *settingsController) Drafted(key string) bool {
	_, ok := c.draft[key]
	return ok
}

// DraftEngine returns the processing engine as the user currently sees it:
// the drafted value if one exists, otherwise the saved one.
func (c *settingsController) DraftEngine() string {
	if v, ok := c.draft[models.KeyProcessingEngine].(string); ok {
		return v
	}
	return c.current.ProcessingEngine()
}

// DraftPreferDiscreteGPU is DraftEngine's counterpart for the GPU flag.
func (c *settingsController) DraftPreferDiscreteGPU() bool {
	if v, ok := c.draft[models.KeyPreferDiscreteGPU].(bool); ok {
		return v
	}
	return c.current.PreferDiscreteGPU()
}

// CommitDraft folds every drafted value into the document and returns it
// for the save-and-restart path. The draft itself stays until the saved
// document comes back through SetSnapshot.
func (c *settingsController) CommitDraft() models.Settings {
	merged := c.current
	for key, value := range c.draft {
		merged = merged.With(key, value)
	}
	return merged
}

// AdoptOwnSave installs a document this instance just wrote itself. Unlike
// SetSnapshot it leaves the draft alone: only an external change discards
// pending restart-gated edits.
func (c *settingsController) AdoptOwnSave(s models.Settings) {
	c.current = s
}

// SaveDraftCmd writes the document with every drafted value folded in.
// The resulting settingsSavedMsg carries the restart mark so the app
// relaunches once the write has landed.
func (c *settingsController) SaveDraftCmd() tea.Cmd {
	merged := c.CommitDraft()
	io := c.io
	return func() tea.Msg {
		if err := io.Save(merged); err != nil {
			return settingsSavedMsg{err: err, restart: true}
		}
		return settingsSavedMsg{settings: merged, restart: true}
	}
}

// sameDocument compares two settings documents by their serialized form,
// so a []string written by us and the []any it decodes back to compare
// equal. The watcher uses it to tell our own writes from external ones.
func sameDocument(a, b models.Settings) bool {
	ab, errA := yaml.Marshal(a)
	bb, errB := yaml.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ab) == string(bb)
}
