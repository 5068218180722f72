package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fstophq/fstop-cli/pkg/connector"
	"github.com/fstophq/fstop-cli/pkg/library"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// fakeBackend records calls and answers with configured results.
type fakeBackend struct {
	sidecarCount int
	aiTagCount   int
	tagCount     int
	failWith     error

	sidecarCalls   int
	aiTagCalls     int
	tagCalls       int
	thumbnailCalls int
	testCalls      int
	testAddress    string
	relaunched     bool
}

func (f *fakeBackend) ClearAllSidecars(ctx context.Context, root string) (int, error) {
	f.sidecarCalls++
	return f.sidecarCount, f.failWith
}

func (f *fakeBackend) ClearAITags(ctx context.Context, root string) (int, error) {
	f.aiTagCalls++
	return f.aiTagCount, f.failWith
}

func (f *fakeBackend) ClearAllTags(ctx context.Context, root string) (int, error) {
	f.tagCalls++
	return f.tagCount, f.failWith
}

func (f *fakeBackend) ClearThumbnailCache(ctx context.Context) error {
	f.thumbnailCalls++
	return f.failWith
}

func (f *fakeBackend) TestConnection(ctx context.Context, address, apiKey string) error {
	f.testCalls++
	f.testAddress = address
	return f.failWith
}

func (f *fakeBackend) ListModels(ctx context.Context, cfg connector.Config) ([]string, error) {
	return []string{"gpt-4o-mini", "llava"}, f.failWith
}

func (f *fakeBackend) Scan(ctx context.Context, root string) (library.ScanResult, error) {
	return library.ScanResult{}, f.failWith
}

func (f *fakeBackend) Stats(ctx context.Context, root string) (models.LibraryStats, error) {
	return models.LibraryStats{Photos: 3}, f.failWith
}

func (f *fakeBackend) LogFilePath() string { return "/tmp/fstop.log" }
func (f *fakeBackend) Reveal(path string) error {
	return nil
}
func (f *fakeBackend) Relaunch() error {
	f.relaunched = true
	return nil
}

// fakeSettingsIO keeps the settings document in memory and records every
// save.
type fakeSettingsIO struct {
	settings models.Settings
	saved    []models.Settings
	loadErr  error
	saveErr  error
}

func newFakeSettingsIO(settings models.Settings) *fakeSettingsIO {
	if settings == nil {
		settings = models.NewSettings()
	}
	return &fakeSettingsIO{settings: settings}
}

func (f *fakeSettingsIO) Load() (models.Settings, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.settings, nil
}

func (f *fakeSettingsIO) Save(s models.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = s
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeSettingsIO) Path() (string, error) {
	return "", errors.New("fake settings have no path")
}

// collectMsgs executes a command tree and returns every message it
// produces, expanding batches. Tick commands block until their timer
// fires, so tests shorten the clear window before calling this.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, collectMsgs(sub)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
