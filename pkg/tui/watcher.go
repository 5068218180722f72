package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// settingsWatcher watches the settings file for writes from the desktop
// studio or another instance. Events arrive on the bubbletea loop as
// settingsFileChangedMsg; the app reloads the snapshot there and decides
// whether the change was really external.
type settingsWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan tea.Msg
}

// newSettingsWatcher starts watching the directory containing path. The
// directory is watched rather than the file because the atomic-rename
// write pattern replaces the inode on every save.
func newSettingsWatcher(path string) (*settingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	sw := &settingsWatcher{
		watcher: w,
		target:  filepath.Base(path),
		events:  make(chan tea.Msg, 8),
	}
	go sw.loop()
	return sw, nil
}

func (sw *settingsWatcher) loop() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				close(sw.events)
				return
			}
			if filepath.Base(event.Name) != sw.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case sw.events <- settingsFileChangedMsg{}:
			default:
				// A change is already queued; one reload covers both.
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				close(sw.events)
				return
			}
			sw.events <- watcherErrMsg{err: err}
		}
	}
}

// Wait returns a command that delivers the next watcher event. The app
// re-arms it after every delivery.
func (sw *settingsWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sw.events
		if !ok {
			return nil
		}
		return msg
	}
}

// Close stops the watch. Outstanding Wait commands resolve to nil.
func (sw *settingsWatcher) Close() error {
	return sw.watcher.Close()
}
