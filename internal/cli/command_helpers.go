package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fstophq/fstop-cli/internal/logging"
	"github.com/fstophq/fstop-cli/pkg/backend"
	"github.com/fstophq/fstop-cli/pkg/catalog"
	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// CommandContext carries the pieces most subcommands need: the settings
// snapshot and, on demand, an open backend. Commands that never touch the
// catalog never pay for opening it.
type CommandContext struct {
	Settings models.Settings

	store  *catalog.Store
	logger *zap.Logger
	svc    *backend.Service
}

// NewCommandContext loads the shared settings. A missing settings file is
// fine: reads resolve to defaults.
func NewCommandContext() (*CommandContext, error) {
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	return &CommandContext{Settings: settings}, nil
}

// EffectiveRoot resolves the library root for root-scoped commands: the
// --root flag wins, otherwise the root the studio last had open.
func (c *CommandContext) EffectiveRoot(explicit string) (string, error) {
	root := models.EffectiveRoot(explicit, c.Settings)
	if root == "" {
		return "", fmt.Errorf("no library root: pass --root or open a folder in the studio first")
	}
	return root, nil
}

// Backend opens the catalog and log-backed action gateway. Call Close when
// done.
func (c *CommandContext) Backend() (*backend.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	logPath, err := files.LogPath()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFileLogger(logPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	catalogPath, err := files.CatalogPath()
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	c.store = store
	c.logger = logger
	c.svc = backend.New(store, logPath, logger)
	return c.svc, nil
}

// SaveSettings writes a full settings document back to the shared file.
func (c *CommandContext) SaveSettings(settings models.Settings) error {
	if err := files.WriteSettings(settings); err != nil {
		return err
	}
	c.Settings = settings
	return nil
}

// Close releases the catalog and flushes the log.
func (c *CommandContext) Close() {
	if c.store != nil {
		c.store.Close()
		c.store = nil
	}
	logging.Sync(c.logger)
	c.svc = nil
}
