package keymap

import (
	"bytes"
	"encoding/json"

	"github.com/studiowebux/keymapedit/internal/types"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// KeymapsField is the top-level field holding the mapping entries
const KeymapsField = "keymaps"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodeOptions mirror the emulator's own files: two-space indent, key order
// kept, every array element on its own line.
var encodeOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Document is a keymap file held in memory. The original bytes are kept so
// every top-level field other than keymaps can be written back unchanged.
type Document struct {
	raw     []byte
	keymaps []Entry
}

// ParseDocument parses a keymap file. The top level must be a JSON object;
// a missing keymaps field reads as an empty list, any other non-array value
// is a validation error. A repeated keymaps key is rejected: readers
// disagree on which copy wins, so an edit to one could go unseen.
func ParseDocument(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, &types.ValidationError{Reason: "file is not valid JSON"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &types.ValidationError{Reason: "top level is not a JSON object"}
	}

	if countFields(root, KeymapsField) > 1 {
		return nil, &types.ValidationError{Reason: `"keymaps" appears more than once`}
	}

	doc := &Document{raw: bytes.Clone(data), keymaps: []Entry{}}

	field := root.Get(KeymapsField)
	if field.Exists() {
		if !field.IsArray() {
			return nil, &types.ValidationError{Reason: `"keymaps" is not a list`}
		}
		doc.keymaps = collectEntries(field)
	}

	return doc, nil
}

// countFields counts top-level keys equal to name after unescaping
func countFields(root gjson.Result, name string) int {
	n := 0
	root.ForEach(func(key, _ gjson.Result) bool {
		if key.String() == name {
			n++
		}
		return true
	})
	return n
}

// Keymaps returns the mapping entries in file order
func (d *Document) Keymaps() []Entry {
	out := make([]Entry, len(d.keymaps))
	copy(out, d.keymaps)
	return out
}

// Raw returns a copy of the document bytes as they will be encoded
func (d *Document) Raw() []byte {
	return bytes.Clone(d.raw)
}

// FieldNames returns the top-level keys in file order
func (d *Document) FieldNames() []string {
	var names []string
	gjson.ParseBytes(d.raw).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	return names
}

// Field returns the raw bytes of a top-level field. The name is matched
// exactly, without gjson path syntax.
func (d *Document) Field(name string) (json.RawMessage, bool) {
	var raw json.RawMessage
	found := false
	gjson.ParseBytes(d.raw).ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			raw = json.RawMessage(value.Raw)
			found = true
			return false
		}
		return true
	})
	return raw, found
}

// Encode renders the document for writing: UTF-8, two-space indentation
// and a trailing newline. Strings are written as they appear in the file,
// so literal non-ASCII text stays literal and \uXXXX escapes stay escaped.
func (d *Document) Encode() []byte {
	return pretty.PrettyOptions(d.raw, encodeOptions)
}
