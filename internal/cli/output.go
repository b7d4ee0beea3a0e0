package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/studiowebux/keymapedit/internal/config"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/keymap"
	"github.com/studiowebux/keymapedit/internal/types"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
)

const timeLayout = "2006-01-02 15:04:05"

// encode writes v in the json or yaml output format
func (a *App) encode(v interface{}) error {
	return formatOutput(a.Out, v, a.Output)
}

func formatOutput(w io.Writer, v interface{}, format string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// encodeRawYAML re-renders a JSON document as block YAML, keeping key order
func (a *App) encodeRawYAML(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert to yaml: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(a.Out)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

// templateJSON renders entries as an importable template document
func templateJSON(entries []keymap.Entry) ([]byte, error) {
	data, err := json.Marshal(struct {
		Keymaps []keymap.Entry `json:"keymaps"`
	}{Keymaps: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to encode entries: %w", err)
	}
	out := pretty.PrettyOptions(data, &pretty.Options{Width: 80, Indent: "  "})
	return bytes.TrimRight(out, "\n"), nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderFiles(w io.Writer, files []types.FileInfo) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Label", "File", "Size", "Modified"})
	for i, f := range files {
		t.AppendRow(table.Row{i + 1, f.DisplayName, f.Name, formatSize(f.Size), f.ModifiedTime.Format(timeLayout)})
	}
	t.Render()
	fmt.Fprintf(w, "(%d files)\n", len(files))
}

func renderEntries(w io.Writer, entries []keymap.Entry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Key", "Type", "X", "Y"})
	for i, e := range entries {
		x, y := e.WorkPosition()
		t.AppendRow(table.Row{i + 1, e.KeyText(), e.Kind(), fmt.Sprintf("%.4f", x), fmt.Sprintf("%.4f", y)})
	}
	t.Render()
}

func renderOutcome(w io.Writer, o *editor.Outcome) {
	verb := "Preview of"
	if o.Written {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s %s", verb, o.File.Name)
	if o.File.DisplayName != o.File.Name {
		fmt.Fprintf(w, " (%s)", o.File.DisplayName)
	}
	fmt.Fprintln(w)

	tmpl := o.Template
	if tmpl == "" {
		tmpl = "built-in defaults"
	}
	fmt.Fprintf(w, "  template: %s\n", tmpl)
	fmt.Fprintf(w, "  kept %d, removed %d, appended %d\n", o.Stats.Retained, o.Stats.Removed, o.Stats.Appended)
	if len(o.Removed) > 0 {
		fmt.Fprintf(w, "  removed: %s\n", strings.Join(o.Removed, ", "))
	}
	if len(o.Appended) > 0 {
		fmt.Fprintf(w, "  appended: %s\n", strings.Join(o.Appended, ", "))
	}
}

func renderActivity(w io.Writer, entries []types.ActivityEntry, color bool) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Time", "Operation", "File", "Template", "Kept", "Removed", "Added", "Status"})
	for _, e := range entries {
		status := "ok"
		if !e.Succeeded() {
			status = e.Error
		}
		if color {
			if e.Succeeded() {
				status = colorGreen + status + colorReset
			} else {
				status = colorRed + status + colorReset
			}
		}
		t.AppendRow(table.Row{
			e.Timestamp.Format(timeLayout),
			e.Operation,
			e.File,
			e.Template,
			e.Retained,
			e.Removed,
			e.Appended,
			status,
		})
	}
	t.Render()
}

// formatSize formats bytes to human-readable size
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
