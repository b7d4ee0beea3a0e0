package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keymapedit/internal/keybinds"
)

// New creates a new TUI model
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	m := &Model{
		editor:    opts.Editor,
		journal:   opts.Journal,
		keybinds:  registry,
		logger:    logger,
		mode:      ModeNormal,
		explorer:  NewFileExplorerState(),
		modalView: viewport.New(80, 20), // For scrollable modals
		helpView:  viewport.New(80, 20),
	}

	return m
}

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	m := New(opts)

	watcher, err := newFolderWatcher(m.logger)
	if err != nil {
		// Manual refresh still works
		m.logger.Warn("folder watching disabled", "error", err)
	} else {
		m.watcher = watcher
		m.watcher.Watch(m.editor.Session().Folder())
	}
	defer m.Cleanup()

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
