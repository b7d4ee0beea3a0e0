package keymap

import (
	_ "embed"
	"fmt"

	"github.com/tidwall/gjson"
)

// defaultSetJSON is the built-in control layout, in insertion order:
// Shift speed toggle, D/S drag macros, Q click, Space pause, W/E clicks,
// A drag macro, R one-tap restart, Ctrl auto-fire, Alt auto mode.
//
//go:embed defaults.json
var defaultSetJSON []byte

var defaultSet = mustParseEntries(defaultSetJSON)

// DefaultSet returns a fresh copy of the built-in replacement entries
func DefaultSet() []Entry {
	out := make([]Entry, len(defaultSet))
	for i, entry := range defaultSet {
		out[i] = entry.clone()
	}
	return out
}

func mustParseEntries(data []byte) []Entry {
	if !gjson.ValidBytes(data) {
		panic("keymap: embedded default set is not valid JSON")
	}
	arr := gjson.ParseBytes(data)
	if !arr.IsArray() {
		panic(fmt.Sprintf("keymap: embedded default set is %s, want array", arr.Type))
	}
	return collectEntries(arr)
}
