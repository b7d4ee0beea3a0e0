package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keymapedit/internal/types"
)

// navigateFiles moves the file selection up or down
func (m *Model) navigateFiles(delta int) {
	m.explorer.Navigate(delta, m.getFileListHeight())
}

// refreshFiles re-reads the folder. Listing is a single ReadDir, so it runs
// here in Update where the session is owned; only the result is delivered
// as a message.
func (m *Model) refreshFiles() tea.Cmd {
	files, err := m.editor.Files()
	return func() tea.Msg {
		return filesLoadedMsg{files: files, err: err}
	}
}

// startFileOp marks the model busy and returns the selected file name, or
// false when the action cannot start
func (m *Model) startFileOp() (string, bool) {
	if m.busy {
		m.setStatusMessage("Busy, wait for the current action to finish")
		return "", false
	}
	file := m.explorer.GetCurrentFile()
	if file == nil {
		m.setStatusMessage("No file selected")
		return "", false
	}
	m.busy = true
	return file.Name, true
}

// applyFile inserts the replacement set into the selected file and saves it
func (m *Model) applyFile() tea.Cmd {
	name, ok := m.startFileOp()
	if !ok {
		return nil
	}
	m.setStatusMessage("Applying " + name)

	ed := m.editor
	return func() tea.Msg {
		outcome, err := ed.Apply(name)
		return transformDoneMsg{outcome: outcome, err: err}
	}
}

// previewFile runs the transform without writing
func (m *Model) previewFile() tea.Cmd {
	name, ok := m.startFileOp()
	if !ok {
		return nil
	}

	ed := m.editor
	return func() tea.Msg {
		outcome, err := ed.Preview(name)
		return transformDoneMsg{outcome: outcome, err: err}
	}
}

// deleteFile removes the file confirmed in the delete modal
func (m *Model) deleteFile() tea.Cmd {
	m.mode = ModeNormal
	target := m.deleteTarget
	m.deleteTarget = nil

	if target == nil {
		m.setStatusMessage("No file selected")
		return nil
	}
	if m.busy {
		m.setStatusMessage("Busy, wait for the current action to finish")
		return nil
	}
	m.busy = true

	ed := m.editor
	file := *target
	return func() tea.Msg {
		return deleteDoneMsg{file: file, err: ed.Delete(file.Name)}
	}
}

// selectFolder switches to folder, then watches and lists it
func (m *Model) selectFolder(folder string) tea.Cmd {
	if err := m.editor.SelectFolder(folder); err != nil {
		m.setFailure(err)
		return nil
	}

	folder = m.editor.Session().Folder()
	if m.watcher != nil {
		m.watcher.Watch(folder)
	}
	m.explorer.ClearSearch()
	m.searchInput = ""
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.setStatusMessage("Folder: " + folder)

	return m.refreshFiles()
}

// importTemplate loads a template; the previous one stays on failure
func (m *Model) importTemplate(path string) {
	tmpl, err := m.editor.ImportTemplate(path)
	if err != nil {
		m.setFailure(err)
		return
	}
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.setStatusMessage(fmt.Sprintf("Template %s loaded (%d entries)", tmpl.Name, len(tmpl.Entries)))
}

// copyFolderPath copies the selected folder path to the clipboard
func (m *Model) copyFolderPath() tea.Cmd {
	folder := m.editor.Session().Folder()
	if folder == "" {
		m.setErrorMessage("No keymap folder selected")
		return nil
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(folder); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg("Folder path copied to clipboard")
	}
}

// loadActivity reads the most recent journal entries
func (m *Model) loadActivity() tea.Cmd {
	journal := m.journal
	return func() tea.Msg {
		entries, err := journal.Recent(ActivityLogLimit)
		if err != nil {
			return activityLoadedMsg{err: types.NewFailure(types.FailureIO, "activity log", "", err)}
		}
		return activityLoadedMsg{entries: entries}
	}
}
