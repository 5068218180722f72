// Package backend bundles the studio-side actions the settings console can
// trigger: library maintenance, connector probes, and system integration.
package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/fstophq/fstop-cli/pkg/catalog"
	"github.com/fstophq/fstop-cli/pkg/connector"
	"github.com/fstophq/fstop-cli/pkg/library"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// Service is the concrete action gateway. The TUI consumes it through its
// own interface so tests can substitute a fake.
type Service struct {
	store   *catalog.Store
	logPath string
	logger  *zap.Logger
}

// New builds a Service on an open catalog store.
func New(store *catalog.Store, logPath string, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		logPath: logPath,
		logger:  logger,
	}
}

// ClearAllSidecars deletes every edit sidecar under root and returns the
// number of files removed.
func (s *Service) ClearAllSidecars(ctx context.Context, root string) (int, error) {
	count, err := library.ClearSidecars(ctx, root)
	if err != nil {
		s.logger.Error("sidecar clear failed",
			zap.String("root", root),
			zap.Int("removed_before_failure", count),
			zap.Error(err))
		return count, err
	}
	s.logger.Info("sidecars cleared", zap.String("root", root), zap.Int("count", count))
	return count, nil
}

// ClearAITags removes AI-generated tags from every photo under root and
// returns the number of tags removed.
func (s *Service) ClearAITags(ctx context.Context, root string) (int, error) {
	count, err := s.store.ClearAITags(ctx, root)
	if err != nil {
		s.logger.Error("AI tag clear failed", zap.String("root", root), zap.Error(err))
		return 0, err
	}
	s.logger.Info("AI tags cleared", zap.String("root", root), zap.Int("count", count))
	return count, nil
}

// ClearAllTags removes every tag, user and AI alike, from photos under root
// and returns the number of tags removed.
func (s *Service) ClearAllTags(ctx context.Context, root string) (int, error) {
	count, err := s.store.ClearAllTags(ctx, root)
	if err != nil {
		s.logger.Error("tag clear failed", zap.String("root", root), zap.Error(err))
		return 0, err
	}
	s.logger.Info("tags cleared", zap.String("root", root), zap.Int("count", count))
	return count, nil
}

// ClearThumbnailCache drops the studio's rendered thumbnail cache. The
// studio re-renders thumbnails on demand, so this only costs time.
func (s *Service) ClearThumbnailCache(ctx context.Context) error {
	bytes, err := s.store.ClearThumbnails(ctx)
	if err != nil {
		s.logger.Error("thumbnail cache clear failed", zap.Error(err))
		return err
	}
	s.logger.Info("thumbnail cache cleared", zap.Int64("bytes", bytes))
	return nil
}

// TestConnection probes an AI connector address.
func (s *Service) TestConnection(ctx context.Context, address, apiKey string) error {
	client, err := connector.NewForAddress(address, apiKey, s.logger)
	if err != nil {
		return err
	}
	return client.Test(ctx)
}

// ListModels lists the models offered by the configured AI provider.
func (s *Service) ListModels(ctx context.Context, cfg connector.Config) ([]string, error) {
	client, err := connector.New(cfg, s.logger)
	if err != nil {
		return nil, err
	}
	return client.Models(ctx)
}

// Scan indexes the photos under root into the catalog.
func (s *Service) Scan(ctx context.Context, root string) (library.ScanResult, error) {
	result, err := library.Scan(ctx, root, s.store)
	if err != nil {
		s.logger.Error("library scan failed", zap.String("root", root), zap.Error(err))
		return result, err
	}
	s.logger.Info("library scanned",
		zap.String("root", root),
		zap.Int("indexed", result.Indexed),
		zap.Int("tags_imported", result.TagsImported))
	return result, nil
}

// Stats summarizes the catalog and sidecar state for root. Sidecar
// counting needs the root on disk; when it is gone the catalog numbers
// still come back.
func (s *Service) Stats(ctx context.Context, root string) (models.LibraryStats, error) {
	stats, err := s.store.Stats(ctx, root)
	if err != nil {
		return stats, err
	}
	if sidecars, err := library.CountSidecars(ctx, root); err == nil {
		stats.Sidecars = sidecars
	}
	return stats, nil
}

// LogFilePath returns where the log file lives.
func (s *Service) LogFilePath() string {
	return s.logPath
}

// Reveal opens the platform file manager with path selected.
func (s *Service) Reveal(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	case "linux":
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	case "windows":
		cmd = exec.Command("explorer", "/select,"+path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// Relaunch starts a replacement instance of this binary with the same
// arguments and detaches from it. The caller shuts the current instance
// down immediately afterwards; from the user's point of view the app
// restarts.
func (s *Service) Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("get executable path: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start replacement process: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release replacement process: %w", err)
	}

	s.logger.Info("relaunching", zap.String("exe", exe))
	return nil
}
