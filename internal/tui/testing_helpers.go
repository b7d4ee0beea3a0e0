package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/history"
	"github.com/studiowebux/keymapedit/internal/session"
)

// CreateTestModel creates a Model with no folder selected and no journal
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
	ed := editor.New(session.New(), store, editor.Options{})

	m := New(Options{Editor: ed})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// CreateTestModelWithFiles creates a Model over a temporary keymap folder
// holding fileContents, with a journal, and the file list loaded
func CreateTestModelWithFiles(t *testing.T, fileContents map[string]string) (*Model, string) {
	t.Helper()

	folder := t.TempDir()
	for filename, content := range fileContents {
		filePath := filepath.Join(folder, filename)
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file %s: %v", filename, err)
		}
	}

	journal, err := history.NewManager(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	store := session.NewStore(filepath.Join(t.TempDir(), "keymap.json"), nil)
	ed := editor.New(session.New(), store, editor.Options{Journal: journal})
	if err := ed.SelectFolder(folder); err != nil {
		t.Fatalf("Failed to select folder: %v", err)
	}

	m := New(Options{Editor: ed, Journal: journal})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(m, m.refreshFiles())

	return m, folder
}

// press sends a key to the model and runs the command it returns
func press(m *Model, key string) {
	drain(m, m.handleKeyPress(keyMsg(key)))
}

// keyMsg builds the tea.KeyMsg whose String() is key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// typeText types text one rune at a time
func typeText(m *Model, text string) {
	for _, r := range text {
		press(m, string(r))
	}
}

// drain runs cmd synchronously and feeds its messages back into Update,
// the way the program loop would. Batches are expanded; quit and watcher
// commands are not run.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
