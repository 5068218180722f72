// Package library works on a photo library on disk: the image files the
// studio manages and the .fsx edit sidecars it writes next to them.
package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/models"
)

// imageExts are the file extensions the studio imports.
var imageExts = map[string]struct{}{
	".arw":  {},
	".cr2":  {},
	".cr3":  {},
	".nef":  {},
	".raf":  {},
	".orf":  {},
	".rw2":  {},
	".dng":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".heic": {},
}

// IsImageFile reports whether path has an extension the studio imports.
func IsImageFile(path string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Cataloger is the slice of the catalog store a scan needs.
type Cataloger interface {
	AddPhoto(ctx context.Context, root, path string) (models.Photo, error)
	TagPhoto(ctx context.Context, photoID, name, source string) error
}

// ScanResult summarizes one library scan.
type ScanResult struct {
	Indexed      int
	TagsImported int
}

// Scan walks root and indexes every recognized image file into the catalog.
// Tags found in existing sidecars are imported as user tags. Rescanning is
// idempotent.
func Scan(ctx context.Context, root string, store Cataloger) (ScanResult, error) {
	var result ScanResult

	err := walkRoot(ctx, root, func(path string, d fs.DirEntry) error {
		if !IsImageFile(path) {
			return nil
		}
		photo, err := store.AddPhoto(ctx, root, path)
		if err != nil {
			return err
		}
		result.Indexed++

		scPath := files.SidecarPath(path)
		if _, err := os.Stat(scPath); err != nil {
			return nil
		}
		sc, err := files.ReadSidecar(scPath)
		if err != nil {
			return fmt.Errorf("failed to import sidecar for %s: %w", path, err)
		}
		for _, tag := range sc.Tags {
			if err := store.TagPhoto(ctx, photo.ID, tag, models.TagSourceUser); err != nil {
				return err
			}
			result.TagsImported++
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// ClearSidecars removes every .fsx sidecar under root and returns how many
// files were deleted. The walk aborts on the first unreadable directory or
// failed deletion so a partial clear is reported as an error.
func ClearSidecars(ctx context.Context, root string) (int, error) {
	count := 0
	err := walkRoot(ctx, root, func(path string, d fs.DirEntry) error {
		if !strings.EqualFold(filepath.Ext(path), files.SidecarExt) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove sidecar %s: %w", path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

// CountSidecars reports how many .fsx sidecars exist under root.
func CountSidecars(ctx context.Context, root string) (int, error) {
	count := 0
	err := walkRoot(ctx, root, func(path string, d fs.DirEntry) error {
		if strings.EqualFold(filepath.Ext(path), files.SidecarExt) {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func walkRoot(ctx context.Context, root string, fn func(path string, d fs.DirEntry) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to open library root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library root %s is not a directory", root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories hold app state, not photos.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path, d)
	})
}
