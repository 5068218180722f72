package models

import (
	"errors"
	"sort"
	"strings"
)

// Tag-related errors
var (
	ErrEmptyTagName        = errors.New("tag name cannot be empty")
	ErrTagNameTooLong      = errors.New("tag name cannot exceed 50 characters")
	ErrInvalidTagCharacter = errors.New("tag name contains invalid characters")
)

// Tag sources in the catalog. User tags come from the keyboard or sidecar
// imports, AI tags from the auto-tagging connector.
const (
	TagSourceUser = "user"
	TagSourceAI   = "ai"
)

// NormalizeTag normalizes a tag for storage: surrounding whitespace is
// dropped and the tag is lowercased. The desktop app applies the same rule,
// so "Portrait " and "portrait" are one tag everywhere.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateTag checks whether a tag is usable after normalization.
func ValidateTag(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}
	if len(name) > 50 {
		return ErrTagNameTooLong
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == ' ') {
			return ErrInvalidTagCharacter
		}
	}
	return nil
}

// AddShortcut normalizes raw and inserts it into the tagging shortcut list,
// keeping the list sorted and duplicate free. It reports whether the list
// changed: empty input and duplicates leave the list alone, so callers can
// skip the settings write entirely.
func AddShortcut(list []string, raw string) ([]string, bool) {
	tag := NormalizeTag(raw)
	if tag == "" {
		return list, false
	}
	for _, existing := range list {
		if existing == tag {
			return list, false
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, tag)
	sort.Strings(out)
	return out, true
}

// RemoveShortcut returns the list without tag. Removing a tag that is not
// present returns an equal list, and callers commit the result either way.
func RemoveShortcut(list []string, tag string) []string {
	tag = NormalizeTag(tag)
	out := make([]string, 0, len(list))
	for _, existing := range list {
		if existing != tag {
			out = append(out, existing)
		}
	}
	return out
}

// NormalizeShortcuts sorts and deduplicates a shortcut list loaded from
// settings, normalizing each entry. Hand-edited files stay usable.
func NormalizeShortcuts(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		tag := NormalizeTag(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
