package session

import (
	"os"

	"github.com/studiowebux/keymapedit/internal/keymap"
)

// Session holds the selected folder and the active template.
//
// A Session is owned by a single goroutine: the running command, or the
// bubbletea Update loop in the TUI. It has no lock.
type Session struct {
	folder   string
	template *keymap.Template
}

// New creates an empty session
func New() *Session {
	return &Session{}
}

// Restore creates a session from the store. A stored folder that no longer
// exists, or is not a directory, is treated as unset.
func Restore(store *Store) *Session {
	s := New()
	folder := store.Load()
	if folder == "" {
		return s
	}

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		store.logger.Debug("stored folder unavailable", "folder", folder)
		return s
	}

	s.folder = folder
	return s
}

// Folder returns the selected folder, "" when none
func (s *Session) Folder() string {
	return s.folder
}

// SetFolder replaces the selected folder
func (s *Session) SetFolder(folder string) {
	s.folder = folder
}

// Template returns the active template, nil when the default set applies
func (s *Session) Template() *keymap.Template {
	return s.template
}

// SetTemplate makes tmpl the active template
func (s *Session) SetTemplate(tmpl *keymap.Template) {
	s.template = tmpl
}

// ClearTemplate reverts to the built-in default set
func (s *Session) ClearTemplate() {
	s.template = nil
}

// TemplateName describes the active replacement set
func (s *Session) TemplateName() string {
	if s.template == nil {
		return "built-in defaults"
	}
	return s.template.Name
}
