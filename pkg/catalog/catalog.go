// Package catalog reads and maintains the studio's library catalog, a
// SQLite database shared with the desktop app. The desktop side imports
// photos and renders thumbnails; this side runs maintenance: tag clears,
// thumbnail cache clears, and statistics.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"github.com/fstophq/fstop-cli/pkg/models"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS photos (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    root TEXT NOT NULL,
    added_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_photos_root ON photos(root);

CREATE TABLE IF NOT EXISTS tags (
    photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    source TEXT NOT NULL CHECK (source IN ('user', 'ai')),
    PRIMARY KEY (photo_id, name, source)
);

CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);

CREATE TABLE IF NOT EXISTS thumbnails (
    photo_id TEXT NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    format TEXT NOT NULL,
    data BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (photo_id, width, height)
);
`

// Store is a handle on the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}
	if err := stampSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func stampSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err == sql.ErrNoRows {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("failed to stamp schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("catalog schema version %d is newer than this build supports (%d)", current, schemaVersion)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddPhoto records a photo under a library root. Adding a path that is
// already cataloged returns the existing record, so rescans are idempotent.
func (s *Store) AddPhoto(ctx context.Context, root, path string) (models.Photo, error) {
	existing, err := s.photoByPath(ctx, path)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return models.Photo{}, err
	}

	photo := models.Photo{
		ID:      uuid.NewString(),
		Path:    path,
		Root:    root,
		AddedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO photos (id, path, root, added_at) VALUES (?, ?, ?, ?)",
		photo.ID, photo.Path, photo.Root, photo.AddedAt.UnixNano())
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to add photo %s: %w", path, err)
	}
	return photo, nil
}

func (s *Store) photoByPath(ctx context.Context, path string) (models.Photo, error) {
	var p models.Photo
	var addedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, path, root, added_at FROM photos WHERE path = ?", path).
		Scan(&p.ID, &p.Path, &p.Root, &addedAt)
	if err != nil {
		return models.Photo{}, err
	}
	p.AddedAt = time.Unix(0, addedAt).UTC()
	return p, nil
}

// TagPhoto attaches a tag to a photo. The tag is normalized first and
// duplicate tags are ignored.
func (s *Store) TagPhoto(ctx context.Context, photoID, name, source string) error {
	tag := models.NormalizeTag(name)
	if tag == "" {
		return models.ErrEmptyTagName
	}
	if source != models.TagSourceUser && source != models.TagSourceAI {
		return fmt.Errorf("invalid tag source %q", source)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (photo_id, name, source) VALUES (?, ?, ?)",
		photoID, tag, source)
	if err != nil {
		return fmt.Errorf("failed to tag photo %s: %w", photoID, err)
	}
	return nil
}

// PhotoTags returns a photo's tags, user tags before AI tags, names sorted.
func (s *Store) PhotoTags(ctx context.Context, photoID string) ([]models.PhotoTag, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT photo_id, name, source FROM tags WHERE photo_id = ? ORDER BY source DESC, name", photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for %s: %w", photoID, err)
	}
	defer rows.Close()

	var tags []models.PhotoTag
	for rows.Next() {
		var t models.PhotoTag
		if err := rows.Scan(&t.PhotoID, &t.Name, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// PutThumbnail stores a rendered thumbnail. The desktop app is the usual
// writer; this side only needs it for tests and cache rebuilds.
func (s *Store) PutThumbnail(ctx context.Context, photoID string, width, height int, format string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO thumbnails (photo_id, width, height, format, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (photo_id, width, height) DO UPDATE SET format = excluded.format, data = excluded.data, created_at = excluded.created_at`,
		photoID, width, height, format, data, time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store thumbnail for %s: %w", photoID, err)
	}
	return nil
}

// Stats summarizes the catalog for one library root.
func (s *Store) Stats(ctx context.Context, root string) (models.LibraryStats, error) {
	var stats models.LibraryStats

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM photos WHERE root = ?", root).Scan(&stats.Photos)
	if err != nil {
		return stats, fmt.Errorf("failed to count photos: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT photo_id) FROM tags
		 WHERE photo_id IN (SELECT id FROM photos WHERE root = ?)`, root).Scan(&stats.TaggedPhotos)
	if err != nil {
		return stats, fmt.Errorf("failed to count tagged photos: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT
		   COUNT(CASE WHEN source = 'user' THEN 1 END),
		   COUNT(CASE WHEN source = 'ai' THEN 1 END)
		 FROM tags WHERE photo_id IN (SELECT id FROM photos WHERE root = ?)`, root).
		Scan(&stats.UserTags, &stats.AITags)
	if err != nil {
		return stats, fmt.Errorf("failed to count tags: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM thumbnails").
		Scan(&stats.ThumbnailCount, &stats.ThumbnailBytes)
	if err != nil {
		return stats, fmt.Errorf("failed to measure thumbnail cache: %w", err)
	}

	return stats, nil
}

// ClearAITags deletes every AI-sourced tag for photos under root and
// returns how many tags were removed.
func (s *Store) ClearAITags(ctx context.Context, root string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE source = 'ai'
		 AND photo_id IN (SELECT id FROM photos WHERE root = ?)`, root)
	if err != nil {
		return 0, fmt.Errorf("failed to clear AI tags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared AI tags: %w", err)
	}
	return int(n), nil
}

// ClearAllTags deletes every tag, user and AI alike, for photos under root
// and returns how many tags were removed.
func (s *Store) ClearAllTags(ctx context.Context, root string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tags WHERE photo_id IN (SELECT id FROM photos WHERE root = ?)", root)
	if err != nil {
		return 0, fmt.Errorf("failed to clear tags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared tags: %w", err)
	}
	return int(n), nil
}

// ClearThumbnails drops the whole thumbnail cache and returns how many
// bytes were reclaimed.
func (s *Store) ClearThumbnails(ctx context.Context) (int64, error) {
	var bytes int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(LENGTH(data)), 0) FROM thumbnails").Scan(&bytes)
	if err != nil {
		return 0, fmt.Errorf("failed to measure thumbnail cache: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM thumbnails"); err != nil {
		return 0, fmt.Errorf("failed to clear thumbnail cache: %w", err)
	}
	return bytes, nil
}
