package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides, e.g. KEYMAPEDIT_LOG_LEVEL
const EnvPrefix = "KEYMAPEDIT_"

// Output formats accepted by the output setting
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// LogToStderr as log_file sends the log to stderr instead of a file
const LogToStderr = "-"

// Settings holds the user-tunable options
type Settings struct {
	FolderConfig string `koanf:"folder_config"`
	Journal      bool   `koanf:"journal"`
	LogLevel     string `koanf:"log_level"`
	LogFile      string `koanf:"log_file"`
	Output       string `koanf:"output"`
}

// settingsFileUsed records the YAML file the last load read, if any
var settingsFileUsed string

// DefaultSettings returns the settings used when nothing overrides them.
// Initialize must have run so the paths are set.
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"folder_config": DefaultFolderConfigPath(),
		"journal":       true,
		"log_level":     "info",
		"log_file":      LogFile,
		"output":        OutputText,
	}
}

// LoadSettings loads settings from defaults, the YAML file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > settings file > defaults
func LoadSettings(cfgFile string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(DefaultSettings(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Settings file: an explicit path must exist, the default one may not
	settingsFileUsed = ""
	if cfgFile != "" {
		settingsFileUsed = cfgFile
	} else if SettingsFile != "" {
		if _, err := os.Stat(SettingsFile); err == nil {
			settingsFileUsed = SettingsFile
		}
	}
	if settingsFileUsed != "" {
		if err := k.Load(file.Provider(settingsFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsFileUsed, err)
		}
	}

	// 3. Environment: KEYMAPEDIT_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	folderConfig, err := ExpandPath(s.FolderConfig)
	if err != nil {
		return nil, err
	}
	s.FolderConfig = folderConfig

	if s.LogFile != LogToStderr {
		logFile, err := ExpandPath(s.LogFile)
		if err != nil {
			return nil, err
		}
		s.LogFile = logFile
	}

	return &s, nil
}

// Validate checks enumerated settings
func (s *Settings) Validate() error {
	switch s.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q (want text, json or yaml)", s.Output)
	}

	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}

	if s.FolderConfig == "" {
		return fmt.Errorf("folder_config must not be empty")
	}

	return nil
}

// SettingsFileUsed returns the YAML file read by the last LoadSettings call
func SettingsFileUsed() string {
	return settingsFileUsed
}
