package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/history"
	"github.com/studiowebux/keymapedit/internal/keybinds"
	"github.com/studiowebux/keymapedit/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeFolderInput
	ModeTemplateInput
	ModeDelete
	ModePreview
	ModeActivity
	ModeHelp
	ModeErrorDetail
)

// Options wires the TUI to the application services
type Options struct {
	Editor   *editor.Editor
	Journal  *history.Manager   // Optional; the activity modal is disabled without it
	Keybinds *keybinds.Registry // Optional; defaults when nil
	Logger   *slog.Logger       // Optional; nil discards
}

// Model represents the TUI state
type Model struct {
	// Core state
	editor   *editor.Editor
	journal  *history.Manager
	keybinds *keybinds.Registry
	logger   *slog.Logger
	watcher  *folderWatcher
	mode     Mode

	// File list
	explorer    *FileExplorerState
	searchInput string // Search query being typed

	// Pending work
	busy         bool            // A file operation is running
	deleteTarget *types.FileInfo // File awaiting delete confirmation

	// Modal content
	preview    *editor.Outcome
	activity   []types.ActivityEntry
	modalView  viewport.Model
	helpView   viewport.Model
	returnMode Mode // Mode to restore when the error modal closes

	// Text input (folder and template paths)
	inputValue  string
	inputCursor int

	// UI state
	width        int
	height       int
	statusMsg    string
	errorMsg     string // Truncated error for footer
	fullErrorMsg string // Full error message for detail modal
}

// Init loads the file list and starts listening for folder changes
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshFiles()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Cleanup stops the folder watcher
func (m *Model) Cleanup() {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warn("failed to stop folder watcher", "error", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case filesLoadedMsg:
		if errors.Is(msg.err, editor.ErrNoFolder) {
			m.explorer.SetFiles(nil)
			m.setStatusMessage("No keymap folder selected, press f to choose one")
			break
		}
		if msg.err != nil {
			m.explorer.SetFiles(nil)
			m.setFailure(msg.err)
			break
		}
		m.explorer.SetFiles(msg.files)
		m.explorer.AdjustScrollOffset(m.getFileListHeight())
		// Re-run the active search on the new listing
		if query, _, _ := m.explorer.GetSearchInfo(); query != "" {
			m.explorer.Search(query, m.getFileListHeight())
		}

	case folderChangedMsg:
		cmds := []tea.Cmd{m.watcher.wait()}
		if !m.busy {
			cmds = append(cmds, m.refreshFiles())
		}
		cmd = tea.Batch(cmds...)

	case transformDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setFailure(msg.err)
			break
		}
		m.errorMsg = ""
		m.fullErrorMsg = ""
		if msg.outcome.Written {
			m.setStatusMessage(fmt.Sprintf("Saved %s: kept %d, removed %d, appended %d",
				msg.outcome.File.DisplayName,
				msg.outcome.Stats.Retained,
				msg.outcome.Stats.Removed,
				msg.outcome.Stats.Appended))
			cmd = m.refreshFiles()
			break
		}
		m.preview = msg.outcome
		m.showModal(ModePreview)

	case deleteDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setFailure(msg.err)
			break
		}
		m.errorMsg = ""
		m.fullErrorMsg = ""
		m.setStatusMessage(fmt.Sprintf("%s deleted", msg.file.DisplayName))
		cmd = m.refreshFiles()

	case activityLoadedMsg:
		if msg.err != nil {
			m.setFailure(msg.err)
			break
		}
		m.activity = msg.entries
		m.showModal(ModeActivity)

	case statusMsg:
		m.errorMsg = ""
		m.fullErrorMsg = ""
		m.setStatusMessage(string(msg))

	case errorMsg:
		m.setErrorMessage(string(msg))
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeDelete:
		return m.renderDeleteModal()
	case ModeFolderInput, ModeTemplateInput:
		return m.renderInputModal()
	case ModePreview:
		return m.renderPreviewModal()
	case ModeActivity:
		return m.renderActivityModal()
	case ModeErrorDetail:
		return m.renderErrorDetailModal()
	default:
		return m.renderMain()
	}
}

// Custom message types
type filesLoadedMsg struct {
	files []types.FileInfo
	err   error
}

type folderChangedMsg struct{}

type transformDoneMsg struct {
	outcome *editor.Outcome
	err     error
}

type deleteDoneMsg struct {
	file types.FileInfo
	err  error
}

type activityLoadedMsg struct {
	entries []types.ActivityEntry
	err     error
}

type statusMsg string

type errorMsg string

// showModal opens a modal for a finished command. A sequence half-typed
// before it appeared is dropped.
func (m *Model) showModal(mode Mode) {
	m.keybinds.CancelSequence(keybinds.ContextNormal)
	m.keybinds.CancelSequence(keybinds.ContextModal)
	m.mode = mode
	m.modalView.GotoTop()
}

// Helper methods for setting messages
func (m *Model) setStatusMessage(msg string) {
	m.statusMsg = truncateMessage(msg)
}

func (m *Model) setErrorMessage(msg string) {
	m.fullErrorMsg = msg
	m.errorMsg = truncateMessage(msg)
}

// setFailure reports an editor failure. Cancelled actions only get a
// status line.
func (m *Model) setFailure(err error) {
	if types.IsCancelled(err) {
		m.setStatusMessage("Cancelled")
		return
	}
	m.logger.Debug("action failed", "error", err)
	m.setErrorMessage(categorizeFailure(err))
}

func truncateMessage(msg string) string {
	runes := []rune(msg)
	if len(runes) > FooterMessageMax {
		return string(runes[:FooterMessageMax-3]) + "..."
	}
	return msg
}
