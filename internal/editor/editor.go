package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/config"
	"github.com/studiowebux/keymapedit/internal/keymap"
	"github.com/studiowebux/keymapedit/internal/session"
	"github.com/studiowebux/keymapedit/internal/types"
)

// User actions, as reported in failures
const (
	OpSelectFolder   = "select folder"
	OpListFiles      = "list files"
	OpImportTemplate = "import template"
	OpPreview        = "preview"
	OpApply          = "apply"
	OpDelete         = "delete"
	OpInspect        = "inspect"
)

// ErrNoFolder is the cause of the configuration failure raised when no
// folder has been selected yet.
var ErrNoFolder = errors.New("no keymap folder selected")

// Journal records completed actions
type Journal interface {
	Record(entry types.ActivityEntry) (types.ActivityEntry, error)
}

// Options configures an Editor
type Options struct {
	Journal Journal      // Optional; nil disables recording
	Logger  *slog.Logger // Optional; nil discards
}

// Editor runs the user actions against a session. It shares the session's
// single-writer rule: call it from one goroutine.
type Editor struct {
	session *session.Session
	store   *session.Store
	journal Journal
	logger  *slog.Logger
}

// New creates an editor over sess, persisting folder changes through store
func New(sess *session.Session, store *session.Store, opts Options) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Editor{
		session: sess,
		store:   store,
		journal: opts.Journal,
		logger:  logger,
	}
}

// Session returns the session the editor acts on
func (e *Editor) Session() *session.Session {
	return e.session
}

// SelectFolder makes path the folder to edit and persists the choice
func (e *Editor) SelectFolder(path string) error {
	if path == "" {
		return types.Cancelled(OpSelectFolder)
	}

	path, err := config.ExpandPath(path)
	if err != nil {
		return types.NewFailure(types.FailureIO, OpSelectFolder, path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.NewFailure(types.FailureIO, OpSelectFolder, path, err)
	}
	if !info.IsDir() {
		return types.NewFailure(types.FailureIO, OpSelectFolder, path, fmt.Errorf("not a directory"))
	}

	if err := e.store.Save(path); err != nil {
		return types.NewFailure(types.FailureIO, OpSelectFolder, e.store.Path(), err)
	}

	e.session.SetFolder(path)
	e.logger.Info("folder selected", "folder", path)
	e.record(types.ActivityEntry{Operation: types.OperationSelectFolder, Folder: path})

	return nil
}

// Files lists the editable keymap files of the selected folder
func (e *Editor) Files() ([]types.FileInfo, error) {
	folder := e.session.Folder()
	if folder == "" {
		return nil, types.NewFailure(types.FailureConfig, OpListFiles, "", ErrNoFolder)
	}

	files, err := catalog.List(folder)
	if err != nil {
		return nil, types.NewFailure(types.FailureIO, OpListFiles, folder, err)
	}

	return files, nil
}

// ImportTemplate loads path and makes it the active template. On failure
// the previous template stays active.
func (e *Editor) ImportTemplate(path string) (*keymap.Template, error) {
	if path == "" {
		return nil, types.Cancelled(OpImportTemplate)
	}

	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, types.NewFailure(types.FailureIO, OpImportTemplate, path, err)
	}

	tmpl, err := keymap.LoadTemplate(path)
	if err != nil {
		kind := types.FailureIO
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			kind = types.FailureValidation
		}
		e.logger.Warn("template rejected", "path", path, "error", err)
		e.record(types.ActivityEntry{
			Operation: types.OperationImportTemplate,
			Template:  filepath.Base(path),
			Error:     err.Error(),
		})
		return nil, types.NewFailure(kind, OpImportTemplate, path, err)
	}

	e.session.SetTemplate(tmpl)
	e.logger.Info("template imported", "path", path, "entries", len(tmpl.Entries))
	e.record(types.ActivityEntry{
		Operation: types.OperationImportTemplate,
		Template:  tmpl.Name,
		Appended:  len(tmpl.Entries),
	})

	return tmpl, nil
}

// ClearTemplate reverts to the built-in default set
func (e *Editor) ClearTemplate() {
	if e.session.Template() != nil {
		e.logger.Info("template cleared", "template", e.session.Template().Name)
	}
	e.session.ClearTemplate()
}

// resolve finds name among the listed files of the selected folder
func (e *Editor) resolve(op, name string) (types.FileInfo, error) {
	if name == "" {
		return types.FileInfo{}, types.Cancelled(op)
	}

	files, err := e.Files()
	if err != nil {
		var f *types.Failure
		if errors.As(err, &f) {
			f.Op = op
		}
		return types.FileInfo{}, err
	}

	file, err := catalog.Resolve(files, name)
	if err != nil {
		return types.FileInfo{}, types.NewFailure(types.FailureIO, op, filepath.Join(e.session.Folder(), name), err)
	}

	return file, nil
}

func (e *Editor) record(entry types.ActivityEntry) {
	if e.journal == nil {
		return
	}
	if entry.Folder == "" {
		entry.Folder = e.session.Folder()
	}
	if _, err := e.journal.Record(entry); err != nil {
		e.logger.Warn("failed to record activity", "operation", entry.Operation, "error", err)
	}
}
