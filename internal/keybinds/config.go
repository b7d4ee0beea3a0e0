package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Unbound as an action removes the key
const Unbound = "none"

// Config represents the user's keybinding configuration. Each section maps
// a key to an action name.
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	Normal    map[string]string `json:"normal,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Modal     map[string]string `json:"modal,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextSearch:    c.Search,
		ContextModal:     c.Modal,
		ContextTextInput: c.TextInput,
		ContextConfirm:   c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// For every action a section names, the user's keys replace the default
// keys of that action in that context. Mapping a key to "none" unbinds it.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		if len(bindings) == 0 {
			continue
		}

		keys := make([]string, 0, len(bindings))
		for key := range bindings {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		// Validate everything before touching the registry
		for _, key := range keys {
			if err := ValidateKey(key); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			if err := ValidateAction(bindings[key]); err != nil {
				return fmt.Errorf("%s: key %q: %w", context, key, err)
			}
		}

		replaced := make(map[Action]bool)
		for _, key := range keys {
			actionStr := bindings[key]
			if actionStr == Unbound {
				registry.Unbind(context, key)
				continue
			}
			action := Action(actionStr)
			if !replaced[action] {
				registry.UnbindAction(context, action)
				replaced[action] = true
			}
			registry.Register(context, key, action)
		}
	}

	return nil
}

// LoadOrDefault applies the user's keybinds.json over the defaults. A
// missing file yields the defaults. A file that leaves a mode without an
// exit key, or binds keys that can never fire, is rejected.
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}
	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("keybinds.json: %w", err)
	}
	if conflicts := FindConflicts(registry); len(conflicts) > 0 {
		return nil, fmt.Errorf("keybinds.json: %w (%d conflicts)", &conflicts[0], len(conflicts))
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings as a config, so users
// can see what can be customized
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	sections := map[Context]*map[string]string{
		ContextGlobal:    &config.Global,
		ContextNormal:    &config.Normal,
		ContextSearch:    &config.Search,
		ContextModal:     &config.Modal,
		ContextTextInput: &config.TextInput,
		ContextConfirm:   &config.Confirm,
	}

	for context, section := range sections {
		bindings := registry.bindings[context]
		if len(bindings) == 0 {
			continue
		}
		*section = make(map[string]string, len(bindings))
		for key, action := range bindings {
			(*section)[key] = string(action)
		}
	}

	return config
}
