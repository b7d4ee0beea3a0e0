package editor

import (
	"errors"
	"fmt"
	"os"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/filter"
	"github.com/studiowebux/keymapedit/internal/keymap"
	"github.com/studiowebux/keymapedit/internal/types"
)

// Outcome describes one transform, applied or previewed
type Outcome struct {
	File     types.FileInfo `json:"file" yaml:"file"`
	Template string         `json:"template,omitempty" yaml:"template,omitempty"` // Empty when the default set was used
	Stats    keymap.Stats   `json:"stats" yaml:"stats"`
	Removed  []string       `json:"removed" yaml:"removed"`   // Labels of the purged entries
	Appended []string       `json:"appended" yaml:"appended"` // Labels of the inserted entries
	Written  bool           `json:"written" yaml:"written"`

	result *keymap.Document
}

// Document returns the transformed document
func (o *Outcome) Document() *keymap.Document {
	return o.result
}

// Preview runs the transform on name without writing anything
func (e *Editor) Preview(name string) (*Outcome, error) {
	file, err := e.resolve(OpPreview, name)
	if err != nil {
		return nil, err
	}
	return e.transform(OpPreview, file)
}

// Apply transforms name and writes it back in place. The whole document is
// encoded before the file is opened for writing; there is no backup.
func (e *Editor) Apply(name string) (*Outcome, error) {
	file, err := e.resolve(OpApply, name)
	if err != nil {
		return nil, err
	}

	outcome, err := e.transform(OpApply, file)
	if err != nil {
		e.record(types.ActivityEntry{
			Operation: types.OperationApply,
			File:      file.Name,
			Template:  e.templateName(),
			Error:     err.Error(),
		})
		return nil, err
	}

	if err := writeInPlace(file.Path, outcome.result.Encode()); err != nil {
		e.logger.Error("write failed", "path", file.Path, "error", err)
		e.record(types.ActivityEntry{
			Operation: types.OperationApply,
			File:      file.Name,
			Template:  outcome.Template,
			Error:     err.Error(),
		})
		return nil, types.NewFailure(types.FailureIO, OpApply, file.Path, err)
	}
	outcome.Written = true

	e.logger.Info("keymap updated",
		"path", file.Path,
		"retained", outcome.Stats.Retained,
		"removed", outcome.Stats.Removed,
		"appended", outcome.Stats.Appended,
	)
	e.record(types.ActivityEntry{
		Operation: types.OperationApply,
		File:      file.Name,
		Template:  outcome.Template,
		Retained:  outcome.Stats.Retained,
		Removed:   outcome.Stats.Removed,
		Appended:  outcome.Stats.Appended,
	})

	return outcome, nil
}

func (e *Editor) transform(op string, file types.FileInfo) (*Outcome, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, types.NewFailure(types.FailureIO, op, file.Path, err)
	}

	doc, err := keymap.ParseDocument(data)
	if err != nil {
		return nil, types.NewFailure(types.FailureValidation, op, file.Path, err)
	}

	replacement := keymap.BuildReplacement(e.session.Template())
	result, stats, err := keymap.ApplyTransform(doc, replacement)
	if err != nil {
		return nil, types.NewFailure(types.FailureValidation, op, file.Path, err)
	}

	outcome := &Outcome{
		File:     file,
		Template: e.templateName(),
		Stats:    stats,
		Removed:  []string{},
		Appended: labels(replacement),
		result:   result,
	}
	for _, entry := range doc.Keymaps() {
		if x, y := entry.WorkPosition(); keymap.ExclusionRegion.Contains(x, y) {
			outcome.Removed = append(outcome.Removed, entry.Label())
		}
	}

	return outcome, nil
}

// templateName is the name recorded for the replacement set; an empty
// template falls back to the defaults and is reported as such.
func (e *Editor) templateName() string {
	tmpl := e.session.Template()
	if tmpl == nil || len(tmpl.Entries) == 0 {
		return ""
	}
	return tmpl.Name
}

// writeInPlace overwrites path keeping its permission bits
func writeInPlace(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write keymap file: %w", err)
	}
	return nil
}

func labels(entries []keymap.Entry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Label()
	}
	return out
}

// Delete removes name from the selected folder. Confirmation is the
// caller's job; there is no undo.
func (e *Editor) Delete(name string) error {
	file, err := e.resolve(OpDelete, name)
	if err != nil {
		return err
	}

	if err := catalog.Delete(e.session.Folder(), file.Name); err != nil {
		e.record(types.ActivityEntry{Operation: types.OperationDelete, File: file.Name, Error: err.Error()})
		return types.NewFailure(types.FailureIO, OpDelete, file.Path, err)
	}

	e.logger.Info("keymap deleted", "path", file.Path)
	e.record(types.ActivityEntry{Operation: types.OperationDelete, File: file.Name})

	return nil
}

// Inspect returns name as indented JSON, or the result of a JMESPath query
// over it when query is set.
func (e *Editor) Inspect(name, query string) (string, error) {
	file, err := e.resolve(OpInspect, name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return "", types.NewFailure(types.FailureIO, OpInspect, file.Path, err)
	}

	doc, err := keymap.ParseDocument(data)
	if err != nil {
		return "", types.NewFailure(types.FailureValidation, OpInspect, file.Path, err)
	}

	if query == "" {
		return string(doc.Encode()), nil
	}

	out, err := filter.Apply(doc.Raw(), query)
	if err != nil {
		return "", types.NewFailure(types.FailureValidation, OpInspect, file.Path, err)
	}
	return out, nil
}

// IsNotFound reports whether err is a request for a file that is not listed
func IsNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}
