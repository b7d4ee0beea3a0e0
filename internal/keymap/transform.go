package keymap

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Stats summarizes one transform
type Stats struct {
	Retained int `json:"retained" yaml:"retained"`
	Removed  int `json:"removed" yaml:"removed"`
	Appended int `json:"appended" yaml:"appended"`
}

// FilterExcluded drops every entry whose work position lies inside
// ExclusionRegion and keeps the rest in order.
func FilterExcluded(entries []Entry) []Entry {
	retained := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		x, y := entry.WorkPosition()
		if ExclusionRegion.Contains(x, y) {
			continue
		}
		retained = append(retained, entry)
	}
	return retained
}

// BuildReplacement returns the entries to append: the template's own
// entries when a non-empty template is loaded, the default set otherwise.
func BuildReplacement(tmpl *Template) []Entry {
	if tmpl != nil && len(tmpl.Entries) > 0 {
		out := make([]Entry, len(tmpl.Entries))
		copy(out, tmpl.Entries)
		return out
	}
	return DefaultSet()
}

// ApplyTransform returns a new document whose keymaps are the retained
// entries of doc followed by replacement. Nothing is deduplicated. Every
// other top-level field keeps its original bytes.
func ApplyTransform(doc *Document, replacement []Entry) (*Document, Stats, error) {
	retained := FilterExcluded(doc.keymaps)

	keymaps := make([]Entry, 0, len(retained)+len(replacement))
	keymaps = append(keymaps, retained...)
	keymaps = append(keymaps, replacement...)

	arr, err := encodeEntries(keymaps)
	if err != nil {
		return nil, Stats{}, err
	}

	raw, err := sjson.SetRawBytes(doc.raw, KeymapsField, arr)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to replace keymaps: %w", err)
	}

	stats := Stats{
		Retained: len(retained),
		Removed:  len(doc.keymaps) - len(retained),
		Appended: len(replacement),
	}

	return &Document{raw: raw, keymaps: keymaps}, stats, nil
}

// encodeEntries joins entries into a compact JSON array
func encodeEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, entry := range entries {
		if !gjson.ValidBytes(entry) {
			return nil, fmt.Errorf("entry %d is not valid JSON", i)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(entry)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
