package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fstophq/fstop-cli/pkg/models"
)

const (
	AppDir       = "fstop"
	SettingsFile = "settings.yaml"
	CatalogFile  = "catalog.db"
	LogFile      = "fstop.log"

	// SidecarExt is the extension of the per-image edit sidecars the studio
	// writes next to each photo.
	SidecarExt = ".fsx"
)

// EnvAppHome overrides the app directory when set. Tests point it at a
// temp dir; users can point it at a synced folder.
const EnvAppHome = "FSTOP_DIR"

// AppHome returns the directory holding the settings file, catalog, and
// log. It is shared with the desktop studio, so both sides see the same
// settings document.
func AppHome() (string, error) {
	if dir := os.Getenv(EnvAppHome); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// EnsureAppHome creates the app directory if needed and returns it.
func EnsureAppHome() (string, error) {
	dir, err := AppHome()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app directory %s: %w", dir, err)
	}
	return dir, nil
}

func SettingsPath() (string, error) {
	dir, err := AppHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

func CatalogPath() (string, error) {
	dir, err := AppHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CatalogFile), nil
}

func LogPath() (string, error) {
	dir, err := AppHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

// ReadSettings loads the shared settings document. A missing file is not an
// error: it resolves to an empty document, and every read against that
// falls back to the documented defaults.
func ReadSettings() (models.Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var settings models.Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}
	if settings == nil {
		settings = models.NewSettings()
	}
	return settings, nil
}

// WriteSettings replaces the settings file with the given document. The
// write goes through a temp file and a rename so the desktop app never
// observes a half-written file.
func WriteSettings(settings models.Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), SettingsFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set settings permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace settings %s: %w", path, err)
	}
	return nil
}

// ReadSidecar parses a .fsx edit sidecar.
func ReadSidecar(path string) (*models.Sidecar, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidecar %s: %w", path, err)
	}
	var sc models.Sidecar
	if err := yaml.Unmarshal(content, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse sidecar YAML %s: %w", path, err)
	}
	return &sc, nil
}

// WriteSidecar writes a .fsx edit sidecar next to its image.
func WriteSidecar(path string, sc *models.Sidecar) error {
	content, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal sidecar to YAML: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write sidecar %s: %w", path, err)
	}
	return nil
}

// SidecarPath returns the sidecar path for an image file.
func SidecarPath(imagePath string) string {
	return imagePath + SidecarExt
}
