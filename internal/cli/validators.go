package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateRootDir checks that a library root exists and is a directory.
func ValidateRootDir(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("library root does not exist: %s", path)
		}
		return fmt.Errorf("error accessing library root: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("library root is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}
