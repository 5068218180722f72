package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fstophq/fstop-cli/pkg/files"
	"github.com/fstophq/fstop-cli/pkg/models"
)

type fakeCatalog struct {
	photos map[string]models.Photo
	tags   map[string][]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		photos: make(map[string]models.Photo),
		tags:   make(map[string][]string),
	}
}

func (f *fakeCatalog) AddPhoto(ctx context.Context, root, path string) (models.Photo, error) {
	if existing, ok := f.photos[path]; ok {
		return existing, nil
	}
	photo := models.Photo{ID: path, Path: path, Root: root}
	f.photos[path] = photo
	return photo, nil
}

func (f *fakeCatalog) TagPhoto(ctx context.Context, photoID, name, source string) error {
	f.tags[photoID] = append(f.tags[photoID], models.NormalizeTag(name))
	return nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func writeSidecar(t *testing.T, imagePath string, tags []string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(imagePath), 0755))
	require.NoError(t, files.WriteSidecar(files.SidecarPath(imagePath), &models.Sidecar{
		Version: 1,
		Tags:    tags,
	}))
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/lib/a.arw", true},
		{"/lib/a.ARW", true},
		{"/lib/a.jpg", true},
		{"/lib/a.dng", true},
		{"/lib/a.fsx", false},
		{"/lib/a.txt", false},
		{"/lib/noext", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageFile(tt.path), tt.path)
	}
}

func TestScanIndexesImagesAndSidecarTags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.arw"))
	writeFile(t, filepath.Join(root, "sub", "b.jpg"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeSidecar(t, filepath.Join(root, "a.arw"), []string{"Portrait", "keeper"})

	cat := newFakeCatalog()
	result, err := Scan(context.Background(), root, cat)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 2, result.TagsImported)
	assert.Len(t, cat.photos, 2)
	assert.ElementsMatch(t, []string{"portrait", "keeper"}, cat.tags[filepath.Join(root, "a.arw")])
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.arw"))
	writeFile(t, filepath.Join(root, ".cache", "b.arw"))

	cat := newFakeCatalog()
	result, err := Scan(context.Background(), root, cat)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
}

func TestScanMissingRoot(t *testing.T) {
	cat := newFakeCatalog()
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), cat)
	assert.Error(t, err)
}

func TestClearSidecars(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.arw"))
	writeSidecar(t, filepath.Join(root, "a.arw"), nil)
	writeSidecar(t, filepath.Join(root, "sub", "b.jpg"), nil)
	writeFile(t, filepath.Join(root, "keep.txt"))

	count, err := ClearSidecars(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Images and unrelated files survive, sidecars are gone.
	_, err = os.Stat(filepath.Join(root, "a.arw"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "keep.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(files.SidecarPath(filepath.Join(root, "a.arw")))
	assert.True(t, os.IsNotExist(err))

	// Clearing an already clean root reports zero.
	count, err = ClearSidecars(context.Background(), root)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClearSidecarsMissingRoot(t *testing.T) {
	_, err := ClearSidecars(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestClearSidecarsRootIsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "file.txt")
	writeFile(t, path)

	_, err := ClearSidecars(context.Background(), path)
	assert.Error(t, err)
}

func TestCountSidecars(t *testing.T) {
	root := t.TempDir()
	writeSidecar(t, filepath.Join(root, "a.arw"), nil)
	writeSidecar(t, filepath.Join(root, "sub", "b.jpg"), nil)

	count, err := CountSidecars(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.arw"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, root, newFakeCatalog())
	assert.ErrorIs(t, err, context.Canceled)
}
