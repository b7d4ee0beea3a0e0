package keymap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/keymapedit/internal/types"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// Template is a user-supplied replacement set
type Template struct {
	Name    string // Base name of the file it came from
	Path    string
	Entries []Entry // Appended verbatim, never validated further
}

// ParseTemplate validates a template file: it must be a JSON object whose
// keymaps field is a list. The list elements are not inspected.
func ParseTemplate(data []byte) ([]Entry, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, &types.ValidationError{Reason: "template is not valid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &types.ValidationError{Reason: "template is not a JSON object"}
	}

	if countFields(root, KeymapsField) > 1 {
		return nil, &types.ValidationError{Reason: `template "keymaps" appears more than once`}
	}

	field := root.Get(KeymapsField)
	if !field.Exists() {
		return nil, &types.ValidationError{Reason: `template has no "keymaps" field`}
	}
	if !field.IsArray() {
		return nil, &types.ValidationError{Reason: `template "keymaps" is not a list`}
	}

	return collectEntries(field), nil
}

// LoadTemplate reads and validates a template file. Files ending in .jsonc
// may carry comments and trailing commas.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		data = jsonc.ToJSON(data)
	}

	entries, err := ParseTemplate(data)
	if err != nil {
		return nil, err
	}

	return &Template{
		Name:    filepath.Base(path),
		Path:    path,
		Entries: entries,
	}, nil
}
