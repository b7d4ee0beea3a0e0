package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jmespath/go-jmespath"
)

// Presets are named queries accepted wherever an expression is
var Presets = map[string]string{
	"keys":     "keymaps[].key.text",
	"count":    "length(keymaps)",
	"excluded": "keymaps[?rel_work_position.rel_x > `0.67` && rel_work_position.rel_y > `0.79`].key.text",
	"macros":   "keymaps[?type == 'Macro'].key.text",
	"fields":   "keys(@)",
}

// Expand returns the preset expression for name, or name itself
func Expand(expression string) string {
	if preset, ok := Presets[strings.TrimSpace(expression)]; ok {
		return preset
	}
	return expression
}

// PresetNames returns the preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs a JMESPath expression (or preset name) over a JSON document
// and returns the result as indented JSON.
func Apply(body []byte, expression string) (string, error) {
	if strings.TrimSpace(expression) == "" {
		return "", fmt.Errorf("empty query")
	}
	return applyJMESPath(body, Expand(expression))
}

// applyJMESPath applies a JMESPath expression to a JSON document
func applyJMESPath(body []byte, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

// IsValidJMESPath checks if an expression (or preset name) is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(Expand(expression))
	return err == nil
}
