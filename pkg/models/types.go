package models

import "time"

type Photo struct {
	ID      string
	Path    string
	Root    string
	AddedAt time.Time
}

type PhotoTag struct {
	PhotoID string
	Name    string
	Source  string
}

// Sidecar is the .fsx document the studio writes next to each image.
type Sidecar struct {
	Version     int                `yaml:"version"`
	Rating      int                `yaml:"rating,omitempty"`
	ColorLabel  string             `yaml:"color_label,omitempty"`
	Tags        []string           `yaml:"tags,omitempty"`
	Adjustments map[string]float64 `yaml:"adjustments,omitempty"`
	EditedAt    time.Time          `yaml:"edited_at,omitempty"`
}

// LibraryStats summarizes the catalog for one library root.
type LibraryStats struct {
	Photos         int
	TaggedPhotos   int
	UserTags       int
	AITags         int
	Sidecars       int
	ThumbnailCount int
	ThumbnailBytes int64
}
