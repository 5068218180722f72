package tui

import (
	"context"

	"github.com/fstophq/fstop-cli/pkg/connector"
	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/library"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// Backend is the slice of studio-side actions the TUI drives. The backend
// package provides the real implementation; tests substitute fakes.
type Backend interface {
	ClearAllSidecars(ctx context.Context, root string) (int, error)
	ClearAITags(ctx context.Context, root string) (int, error)
	ClearAllTags(ctx context.Context, root string) (int, error)
	ClearThumbnailCache(ctx context.Context) error
	TestConnection(ctx context.Context, address, apiKey string) error
	ListModels(ctx context.Context, cfg connector.Config) ([]string, error)
	Scan(ctx context.Context, root string) (library.ScanResult, error)
	Stats(ctx context.Context, root string) (models.LibraryStats, error)
	LogFilePath() string
	Reveal(path string) error
	Relaunch() error
}

// SettingsIO abstracts the shared settings file so tests never touch the
// real config directory.
type SettingsIO interface {
	Load() (models.Settings, error)
	Save(settings models.Settings) error
	Path() (string, error)
}

// FileSettingsIO is the real settings file, as the files package locates it.
type FileSettingsIO struct{}

func (FileSettingsIO) Load() (models.Settings, error) { return files.ReadSettings() }
func (FileSettingsIO) Save(s models.Settings) error   { return files.WriteSettings(s) }
func (FileSettingsIO) Path() (string, error)          { return files.SettingsPath() }
