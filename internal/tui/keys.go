package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keymapedit/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	// Mode-specific handling
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeFolderInput, ModeTemplateInput:
		return m.handlePathInputKeys(msg)
	case ModeDelete:
		return m.handleDeleteKeys(msg)
	case ModePreview, ModeActivity, ModeHelp:
		return m.handleModalKeys(msg)
	case ModeErrorDetail:
		return m.handleErrorDetailKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keys in normal mode
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	// An error in the footer must be read before enter applies again
	if msg.String() == "enter" && m.fullErrorMsg != "" {
		m.openErrorDetail()
		return nil
	}

	// Match key to action using keybinds registry
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextNormal, msg.String())
	if partial {
		// First 'g' in 'gg' sequence
		return nil
	}
	if !ok {
		return nil
	}

	pageSize := m.getFileListHeight()

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionNavigateUp:
		m.navigateFiles(-1)

	case keybinds.ActionNavigateDown:
		m.navigateFiles(1)

	case keybinds.ActionPageUp:
		m.navigateFiles(-pageSize)

	case keybinds.ActionPageDown:
		m.navigateFiles(pageSize)

	case keybinds.ActionGoToTop:
		m.explorer.GoTo(0, pageSize)

	case keybinds.ActionGoToBottom:
		m.explorer.GoTo(m.explorer.Len()-1, pageSize)

	case keybinds.ActionApply:
		return m.applyFile()

	case keybinds.ActionPreview:
		return m.previewFile()

	case keybinds.ActionDeleteFile:
		if m.busy {
			m.setStatusMessage("Busy, wait for the current action to finish")
			return nil
		}
		file := m.explorer.GetCurrentFile()
		if file == nil {
			m.setStatusMessage("No file selected")
			return nil
		}
		m.deleteTarget = file
		m.mode = ModeDelete

	case keybinds.ActionRefreshFiles:
		m.setStatusMessage("Refreshing file list")
		return m.refreshFiles()

	case keybinds.ActionSelectFolder:
		if m.busy {
			m.setStatusMessage("Busy, wait for the current action to finish")
			return nil
		}
		m.openPathInput(ModeFolderInput, m.editor.Session().Folder())

	case keybinds.ActionImportTemplate:
		if m.busy {
			m.setStatusMessage("Busy, wait for the current action to finish")
			return nil
		}
		current := ""
		if tmpl := m.editor.Session().Template(); tmpl != nil {
			current = tmpl.Path
		}
		m.openPathInput(ModeTemplateInput, current)

	case keybinds.ActionClearTemplate:
		if m.busy {
			m.setStatusMessage("Busy, wait for the current action to finish")
			return nil
		}
		m.editor.ClearTemplate()
		m.setStatusMessage("Using the built-in default set")

	case keybinds.ActionCopyPath:
		return m.copyFolderPath()

	case keybinds.ActionOpenSearch:
		query, _, _ := m.explorer.GetSearchInfo()
		m.searchInput = query
		m.mode = ModeSearch

	case keybinds.ActionSearchNext:
		if !m.explorer.NextSearchMatch(pageSize) {
			m.setStatusMessage("No active search")
		}

	case keybinds.ActionSearchPrev:
		if !m.explorer.PrevSearchMatch(pageSize) {
			m.setStatusMessage("No active search")
		}

	case keybinds.ActionOpenLog:
		if m.journal == nil {
			m.setErrorMessage("Activity log is disabled")
			return nil
		}
		return m.loadActivity()

	case keybinds.ActionOpenHelp:
		m.updateHelpView()
		m.helpView.GotoTop()
		m.mode = ModeHelp
	}

	return nil
}

// handleTextInput handles common text input operations (paste, clear, backspace)
// Returns: modified (bool), shouldContinue (bool)
func handleTextInput(input *string, msg tea.KeyMsg) (modified bool, shouldContinue bool) {
	switch msg.String() {
	case "ctrl+v", "shift+insert", "super+v":
		// Paste from clipboard (Ctrl+V, Shift+Insert, or Cmd+V on macOS)
		if text, err := clipboard.ReadAll(); err == nil {
			*input += text
			return true, true
		}
		// If clipboard read fails, don't block - just return
		return false, true
	case "ctrl+k":
		// Clear input
		if *input != "" {
			*input = ""
			return true, true
		}
		return false, true
	case "backspace":
		// Delete last character
		runes := []rune(*input)
		if len(runes) > 0 {
			*input = string(runes[:len(runes)-1])
			return true, true
		}
		return false, true
	}
	return false, false
}

// handleTextInputWithCursor handles text input with cursor position support.
// The cursor counts runes so non-ASCII folder names edit correctly.
// Returns: modified (bool), shouldContinue (bool)
func handleTextInputWithCursor(input *string, cursorPos *int, msg tea.KeyMsg) (modified bool, shouldContinue bool) {
	runes := []rune(*input)

	// Ensure cursor position is valid
	if *cursorPos < 0 {
		*cursorPos = 0
	}
	if *cursorPos > len(runes) {
		*cursorPos = len(runes)
	}

	switch msg.String() {
	case "left":
		if *cursorPos > 0 {
			*cursorPos--
		}
		return true, true

	case "right":
		if *cursorPos < len(runes) {
			*cursorPos++
		}
		return true, true

	case "home", "ctrl+a":
		*cursorPos = 0
		return true, true

	case "end", "ctrl+e":
		*cursorPos = len(runes)
		return true, true

	case "ctrl+v", "shift+insert", "super+v":
		// Paste from clipboard at cursor position
		if text, err := clipboard.ReadAll(); err == nil {
			insertAtCursor(input, cursorPos, text)
			return true, true
		}
		return false, true

	case "ctrl+k":
		// Clear input
		if *input != "" {
			*input = ""
			*cursorPos = 0
			return true, true
		}
		return false, true

	case "backspace":
		// Delete character before cursor
		if *cursorPos > 0 {
			*input = string(runes[:*cursorPos-1]) + string(runes[*cursorPos:])
			*cursorPos--
			return true, true
		}
		return false, true

	case "delete":
		// Delete character at cursor
		if *cursorPos < len(runes) {
			*input = string(runes[:*cursorPos]) + string(runes[*cursorPos+1:])
			return true, true
		}
		return false, true
	}

	return false, false
}

// insertAtCursor inserts text at the rune position cursorPos and moves the
// cursor past it
func insertAtCursor(input *string, cursorPos *int, text string) {
	runes := []rune(*input)
	inserted := []rune(text)
	*input = string(runes[:*cursorPos]) + text + string(runes[*cursorPos:])
	*cursorPos += len(inserted)
}

// handleSearchKeys handles keys in search mode. The list follows the query
// as it is typed.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextSearch, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.searchInput = ""
			m.explorer.ClearSearch()
			return nil

		case keybinds.ActionTextSubmit:
			m.mode = ModeNormal
			m.performSearch()
			return nil
		}
	}

	if modified, shouldContinue := handleTextInput(&m.searchInput, msg); shouldContinue {
		if modified {
			m.performSearch()
		}
		return nil
	}

	// Printable input (includes multi-byte runes)
	switch msg.Type {
	case tea.KeyRunes:
		m.searchInput += string(msg.Runes)
		m.performSearch()
	case tea.KeySpace:
		m.searchInput += " "
		m.performSearch()
	}

	return nil
}

// performSearch runs the fuzzy search and reports the match count
func (m *Model) performSearch() {
	count, errMsg := m.explorer.Search(m.searchInput, m.getFileListHeight())
	switch {
	case m.searchInput == "":
		m.statusMsg = ""
	case errMsg != "":
		m.setStatusMessage(errMsg)
	default:
		m.setStatusMessage(fmt.Sprintf("%d matching files", count))
	}
}

// openPathInput switches to a path prompt prefilled with value
func (m *Model) openPathInput(mode Mode, value string) {
	m.mode = mode
	m.inputValue = value
	m.inputCursor = len([]rune(value))
}

// handlePathInputKeys handles the folder and template path prompts
func (m *Model) handlePathInputKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.closePathInput()
			m.setStatusMessage("Cancelled")
			return nil

		case keybinds.ActionTextSubmit:
			value := m.inputValue
			mode := m.mode
			m.closePathInput()
			if mode == ModeFolderInput {
				return m.selectFolder(value)
			}
			m.importTemplate(value)
			return nil

		case keybinds.ActionTextPaste:
			if text, err := clipboard.ReadAll(); err == nil {
				insertAtCursor(&m.inputValue, &m.inputCursor, text)
			}
			return nil
		}
	}

	// Handle text input with cursor support
	if _, shouldContinue := handleTextInputWithCursor(&m.inputValue, &m.inputCursor, msg); shouldContinue {
		return nil
	}

	// Insert characters at cursor position
	if msg.Type == tea.KeyRunes {
		insertAtCursor(&m.inputValue, &m.inputCursor, string(msg.Runes))
	} else if msg.Type == tea.KeySpace {
		insertAtCursor(&m.inputValue, &m.inputCursor, " ")
	}

	return nil
}

func (m *Model) closePathInput() {
	m.mode = ModeNormal
	m.inputValue = ""
	m.inputCursor = 0
}

// handleDeleteKeys handles keys in delete confirmation mode
func (m *Model) handleDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCancel:
		m.mode = ModeNormal
		m.deleteTarget = nil
		m.setStatusMessage("Delete cancelled")

	case keybinds.ActionConfirm:
		return m.deleteFile()
	}

	return nil
}

// handleModalKeys scrolls the preview, activity and help modals
func (m *Model) handleModalKeys(msg tea.KeyMsg) tea.Cmd {
	view := &m.modalView
	if m.mode == ModeHelp {
		view = &m.helpView
	}

	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextModal, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
		m.preview = nil
		m.activity = nil

	case keybinds.ActionNavigateDown:
		view.ScrollDown(1)

	case keybinds.ActionNavigateUp:
		view.ScrollUp(1)

	case keybinds.ActionPageDown:
		view.PageDown()

	case keybinds.ActionPageUp:
		view.PageUp()

	case keybinds.ActionGoToTop:
		view.GotoTop()

	case keybinds.ActionGoToBottom:
		view.GotoBottom()
	}

	return nil
}

// openErrorDetail shows the full text of the footer error
func (m *Model) openErrorDetail() {
	m.keybinds.CancelSequence(keybinds.ContextNormal)
	m.returnMode = m.mode
	m.mode = ModeErrorDetail
	m.modalView.SetContent(wrapText(m.fullErrorMsg, m.modalView.Width))
	m.modalView.GotoTop()
}

// handleErrorDetailKeys handles keyboard input in error detail modal
func (m *Model) handleErrorDetailKeys(msg tea.KeyMsg) tea.Cmd {
	// Handle enter specially (closes modal)
	if msg.String() == "enter" {
		m.closeErrorDetail()
		return nil
	}

	action, ok := m.keybinds.Match(keybinds.ContextModal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.closeErrorDetail()

	case keybinds.ActionNavigateDown:
		m.modalView.ScrollDown(1)

	case keybinds.ActionNavigateUp:
		m.modalView.ScrollUp(1)
	}

	return nil
}

// closeErrorDetail dismisses the error once it has been read
func (m *Model) closeErrorDetail() {
	m.mode = m.returnMode
	m.errorMsg = ""
	m.fullErrorMsg = ""
}
