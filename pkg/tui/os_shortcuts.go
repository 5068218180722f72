package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	switch runtime.GOOS {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// GetOSName returns a friendly name for the current OS
func GetOSName() string {
	switch GetOS() {
	case OSMac:
		return "macOS"
	case OSLinux:
		return "Linux"
	case OSWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// ShortcutKey is a keyboard shortcut with OS-specific variations. The
// studio binds a few chords differently per platform, mostly to stay off
// keys the platform reserves.
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// shortcutEntry pairs a binding with what it does in the studio.
type shortcutEntry struct {
	Key         ShortcutKey
	Description string
}

// shortcutSection groups related studio shortcuts for the reference view.
type shortcutSection struct {
	Title   string
	Entries []shortcutEntry
}

// studioShortcuts is the read-only reference of the desktop studio's
// editing shortcuts, in the order the reference tab shows them.
var studioShortcuts = []shortcutSection{
	{
		Title: "Rating & Labels",
		Entries: []shortcutEntry{
			{ShortcutKey{Default: "1-5"}, "Set star rating"},
			{ShortcutKey{Default: "0"}, "Clear star rating"},
			{ShortcutKey{Default: "6-9"}, "Set color label (red, yellow, green, blue)"},
		},
	},
	{
		Title: "Culling",
		Entries: []shortcutEntry{
			{ShortcutKey{Default: "p"}, "Flag as pick"},
			{ShortcutKey{Default: "x"}, "Flag as reject"},
			{ShortcutKey{Default: "u"}, "Remove flag"},
			{ShortcutKey{Default: "t"}, "Apply tagging shortcut"},
			{ShortcutKey{Default: "caps lock"}, "Auto-advance after flagging"},
		},
	},
	{
		Title: "View",
		Entries: []shortcutEntry{
			{ShortcutKey{Default: "g"}, "Grid view"},
			{ShortcutKey{Default: "e"}, "Loupe view"},
			{ShortcutKey{Default: "d"}, "Develop view"},
			{ShortcutKey{Default: "f"}, "Full screen"},
			{ShortcutKey{Default: "\\"}, "Before / after"},
			{ShortcutKey{Mac: "cmd+i", Default: "ctrl+i"}, "Toggle info overlay"},
		},
	},
	{
		Title: "Editing",
		Entries: []shortcutEntry{
			{ShortcutKey{Mac: "cmd+z", Default: "ctrl+z"}, "Undo"},
			{ShortcutKey{Mac: "cmd+shift+z", Default: "ctrl+y"}, "Redo"},
			{ShortcutKey{Mac: "cmd+c", Default: "ctrl+c"}, "Copy adjustments"},
			{ShortcutKey{Mac: "cmd+v", Default: "ctrl+v"}, "Paste adjustments"},
			{ShortcutKey{Default: "r"}, "Crop and rotate"},
			{ShortcutKey{Default: "w"}, "White balance picker"},
		},
	},
	{
		Title: "Library",
		Entries: []shortcutEntry{
			{ShortcutKey{Mac: "cmd+f", Default: "ctrl+f"}, "Search library"},
			{ShortcutKey{Mac: "cmd+e", Default: "ctrl+e"}, "Export selection"},
			{ShortcutKey{Mac: "cmd+delete", Default: "delete"}, "Remove from library"},
			{ShortcutKey{Mac: "cmd+,", Default: "ctrl+,"}, "Open preferences"},
		},
	},
	{
		Title: "This Console",
		Entries: []shortcutEntry{
			{ShortcutKey{Default: "1-6 or [/]"}, "Switch tab"},
			{ShortcutKey{Default: "y"}, "Copy shortcut reference (this tab)"},
			{ShortcutKey{Default: "ctrl+c"}, "Quit"},
		},
	},
}

// renderShortcutText renders the full reference as plain text, used both
// for the clipboard copy and the CLI's shortcuts command.
func renderShortcutText() string {
	var b strings.Builder
	b.WriteString("F/Stop keyboard shortcuts (" + GetOSName() + ")\n")
	for _, section := range studioShortcuts {
		b.WriteString("\n" + section.Title + "\n")
		for _, entry := range section.Entries {
			b.WriteString("  " + padKey(entry.Key.Get()) + entry.Description + "\n")
		}
	}
	return b.String()
}

// ShortcutReferenceText is the plain-text shortcut reference for the
// current OS.
func ShortcutReferenceText() string {
	return renderShortcutText()
}

func padKey(key string) string {
	const width = 16
	if len(key) >= width {
		return key + " "
	}
	return key + strings.Repeat(" ", width-len(key))
}
