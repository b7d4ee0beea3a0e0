package tui

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/studiowebux/keymapedit/internal/catalog"
)

// folderWatcher reports changes to keymap files in the selected folder. Its
// goroutine only signals; listing happens in Update.
type folderWatcher struct {
	fsw     *fsnotify.Watcher
	logger  *slog.Logger
	changes chan struct{}
	done    chan struct{}
	once    sync.Once

	folder string // Owned by Update
}

func newFolderWatcher(logger *slog.Logger) (*folderWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &folderWatcher{
		fsw:     fsw,
		logger:  logger,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()

	return w, nil
}

// Watch switches the watch to folder; an empty folder stops watching
func (w *folderWatcher) Watch(folder string) {
	if folder == w.folder {
		return
	}
	if w.folder != "" {
		_ = w.fsw.Remove(w.folder)
		w.folder = ""
	}
	if folder == "" {
		return
	}

	if err := w.fsw.Add(folder); err != nil {
		w.logger.Warn("failed to watch folder", "folder", folder, "error", err)
		return
	}
	w.folder = folder
	w.logger.Debug("watching folder", "folder", folder)
}

func (w *folderWatcher) loop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != catalog.Extension {
				continue
			}

			// Debounce: editors and our own writes produce bursts
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceMillis*time.Millisecond, w.notify)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("folder watcher error", "error", err)
		}
	}
}

func (w *folderWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// wait returns a command that blocks until the folder changes
func (w *folderWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changes:
			return folderChangedMsg{}
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher goroutine
func (w *folderWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
