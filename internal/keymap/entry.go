package keymap

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// Entry is one mapped control kept as raw JSON, so fields this package
// never reads survive a rewrite untouched.
type Entry json.RawMessage

// MarshalJSON returns the entry bytes unchanged
func (e Entry) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON stores a copy of data
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("keymap.Entry: UnmarshalJSON on nil pointer")
	}
	*e = append((*e)[0:0], data...)
	return nil
}

// WorkPosition returns rel_work_position.rel_x and rel_y. A missing object,
// a missing coordinate or a non-numeric value reads as 0.
func (e Entry) WorkPosition() (x, y float64) {
	pos := gjson.GetBytes(e, "rel_work_position")
	if !pos.IsObject() {
		return 0, 0
	}
	return number(pos.Get("rel_x")), number(pos.Get("rel_y"))
}

// KeyText returns key.text, e.g. "Shift"
func (e Entry) KeyText() string {
	return gjson.GetBytes(e, "key.text").String()
}

// Kind returns the entry type, e.g. "Click" or "Macro"
func (e Entry) Kind() string {
	return gjson.GetBytes(e, "type").String()
}

// Label is a short human description used by listings
func (e Entry) Label() string {
	key := e.KeyText()
	if key == "" {
		key = "?"
	}
	if kind := e.Kind(); kind != "" {
		return key + " (" + kind + ")"
	}
	return key
}

func (e Entry) clone() Entry {
	out := make(Entry, len(e))
	copy(out, e)
	return out
}

func number(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	return r.Float()
}

// collectEntries copies the elements of a gjson array into entries
func collectEntries(arr gjson.Result) []Entry {
	entries := make([]Entry, 0)
	arr.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, Entry(value.Raw))
		return true
	})
	return entries
}
