package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/config"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/history"
	"github.com/studiowebux/keymapedit/internal/keymap"
	"github.com/studiowebux/keymapedit/internal/types"
)

// ErrJournalDisabled is returned by the log command when journaling is off
var ErrJournalDisabled = errors.New("activity journal is disabled (set journal: true)")

// App runs the one-shot commands against an editor
type App struct {
	Editor  *editor.Editor
	Journal *history.Manager // nil when the journal is disabled
	Output  string           // text, json or yaml

	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader

	// Interactive reports whether prompts and pickers may be shown
	Interactive func() bool
	// Color reports whether Out accepts ANSI colors
	Color func() bool
}

// New creates an App bound to the process's standard streams
func New(ed *editor.Editor, journal *history.Manager, output string) *App {
	return &App{
		Editor:      ed,
		Journal:     journal,
		Output:      output,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		In:          os.Stdin,
		Interactive: isInteractive,
		Color:       func() bool { return isTerminal(os.Stdout) },
	}
}

// ApplyOptions tunes the apply command
type ApplyOptions struct {
	Template string // Template file to import first; empty keeps the default set
	DryRun   bool
}

// List prints the catalog of the selected folder
func (a *App) List() error {
	files, err := a.Editor.Files()
	if err != nil {
		return err
	}

	if a.Output != config.OutputText {
		return a.encode(files)
	}

	if len(files) == 0 {
		fmt.Fprintf(a.ErrOut, "No keymap files in %s\n", a.Editor.Session().Folder())
		return nil
	}

	renderFiles(a.Out, files)
	return nil
}

// Folder prints the selected folder, or selects path when it is set
func (a *App) Folder(path string) error {
	if path == "" {
		folder := a.Editor.Session().Folder()
		if folder == "" {
			return types.NewFailure(types.FailureConfig, editor.OpSelectFolder, "", editor.ErrNoFolder)
		}
		fmt.Fprintln(a.Out, folder)
		return nil
	}

	if err := a.Editor.SelectFolder(path); err != nil {
		return err
	}
	fmt.Fprintf(a.ErrOut, "Folder set to %s\n", a.Editor.Session().Folder())
	return nil
}

// Apply transforms one file. Without a name, an interactive terminal gets
// a picker.
func (a *App) Apply(name string, opts ApplyOptions) error {
	if opts.Template != "" {
		if _, err := a.Editor.ImportTemplate(opts.Template); err != nil {
			return err
		}
	}

	if name == "" {
		picked, err := a.pick(editor.OpApply)
		if err != nil {
			return err
		}
		name = picked
	}

	var (
		outcome *editor.Outcome
		err     error
	)
	if opts.DryRun {
		outcome, err = a.Editor.Preview(name)
	} else {
		outcome, err = a.Editor.Apply(name)
	}
	if err != nil {
		return err
	}

	if a.Output != config.OutputText {
		return a.encode(outcome)
	}

	renderOutcome(a.Out, outcome)
	return nil
}

// Delete removes one file after a y/N prompt, unless yes is set
func (a *App) Delete(name string, yes bool) error {
	if name == "" {
		picked, err := a.pick(editor.OpDelete)
		if err != nil {
			return err
		}
		name = picked
	}

	files, err := a.Editor.Files()
	if err != nil {
		return err
	}
	file, err := catalog.Resolve(files, name)
	if err != nil {
		return types.NewFailure(types.FailureIO, editor.OpDelete, filepath.Join(a.Editor.Session().Folder(), name), err)
	}

	if !yes {
		ok, err := confirm(a.In, a.ErrOut, fmt.Sprintf("Delete %s? This cannot be undone.", file.DisplayName))
		if err != nil {
			return err
		}
		if !ok {
			return types.Cancelled(editor.OpDelete)
		}
	}

	if err := a.Editor.Delete(file.Name); err != nil {
		return err
	}
	fmt.Fprintf(a.ErrOut, "%s deleted\n", file.DisplayName)
	return nil
}

// Show prints a file, or the result of a JMESPath query over it
func (a *App) Show(name, query string) error {
	out, err := a.Editor.Inspect(name, query)
	if err != nil {
		return err
	}

	if a.Color() {
		if err := highlightJSON(a.Out, out); err == nil {
			fmt.Fprintln(a.Out)
			return nil
		}
	}
	fmt.Fprintln(a.Out, out)
	return nil
}

// CheckTemplate validates a template file without importing it
func (a *App) CheckTemplate(path string) error {
	path, err := config.ExpandPath(path)
	if err != nil {
		return types.NewFailure(types.FailureIO, editor.OpImportTemplate, path, err)
	}

	tmpl, err := keymap.LoadTemplate(path)
	if err != nil {
		kind := types.FailureIO
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			kind = types.FailureValidation
		}
		return types.NewFailure(kind, editor.OpImportTemplate, path, err)
	}

	if a.Output != config.OutputText {
		return a.encode(map[string]interface{}{
			"name":    tmpl.Name,
			"path":    tmpl.Path,
			"entries": len(tmpl.Entries),
		})
	}

	fmt.Fprintf(a.Out, "%s: valid template with %d entries\n", tmpl.Name, len(tmpl.Entries))
	if len(tmpl.Entries) == 0 {
		fmt.Fprintln(a.Out, "The list is empty, so the built-in defaults would be used instead.")
	} else {
		renderEntries(a.Out, tmpl.Entries)
	}
	return nil
}

// Defaults prints the built-in replacement set
func (a *App) Defaults() error {
	entries := keymap.DefaultSet()

	switch a.Output {
	case config.OutputJSON:
		data, err := templateJSON(entries)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, string(data))
		return nil
	case config.OutputYAML:
		data, err := templateJSON(entries)
		if err != nil {
			return err
		}
		return a.encodeRawYAML(data)
	}

	renderEntries(a.Out, entries)
	return nil
}

// Log prints the latest journal rows, or clears the journal
func (a *App) Log(limit int, clearAll bool) error {
	if a.Journal == nil {
		return types.NewFailure(types.FailureConfig, "log", "", ErrJournalDisabled)
	}

	if clearAll {
		if err := a.Journal.Clear(); err != nil {
			return types.NewFailure(types.FailureIO, "log", config.DatabasePath, err)
		}
		fmt.Fprintln(a.ErrOut, "Activity journal cleared")
		return nil
	}

	entries, err := a.Journal.Recent(limit)
	if err != nil {
		return types.NewFailure(types.FailureIO, "log", config.DatabasePath, err)
	}

	if a.Output != config.OutputText {
		return a.encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.ErrOut, "No activity recorded yet")
		return nil
	}
	renderActivity(a.Out, entries, a.Color())
	return nil
}

// Manual prints the usage manual
func (a *App) Manual() error {
	fmt.Fprint(a.Out, ManualText)
	return nil
}

// pick asks for a file with the list picker
func (a *App) pick(op string) (string, error) {
	if !a.Interactive() {
		return "", types.NewFailure(types.FailureConfig, op, "", errors.New("no file given and the terminal is not interactive"))
	}

	files, err := a.Editor.Files()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", types.NewFailure(types.FailureIO, op, a.Editor.Session().Folder(), errors.New("no keymap files in folder"))
	}

	name, err := pickFile(files, fmt.Sprintf("Select a keymap to %s", op))
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", types.Cancelled(op)
	}
	return name, nil
}

// Report prints err for the user and returns the process exit code.
// Cancelled actions are not errors.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if types.IsCancelled(err) {
		fmt.Fprintln(w, "Cancelled.")
		return 0
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
