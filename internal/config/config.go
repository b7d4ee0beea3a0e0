package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

// windowsFolderConfig is where the original tool kept the folder setting on Windows
const windowsFolderConfig = `C:\ProgramData\keymap.json`

var (
	// ConfigDir is the global configuration directory (~/.keymapedit)
	ConfigDir string

	// SettingsFile is the optional YAML settings file
	SettingsFile string

	// DatabasePath is the SQLite activity journal
	DatabasePath string

	// LogFile receives the application log while the TUI owns the terminal
	LogFile string

	// KeybindsFile holds user key binding overrides
	KeybindsFile string
)

// Initialize sets up the global paths and creates ~/.keymapedit/ if it
// doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".keymapedit")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "journal.db")
	LogFile = filepath.Join(ConfigDir, "keymapedit.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// DefaultFolderConfigPath returns where the selected folder is stored when
// no folder_config setting overrides it.
func DefaultFolderConfigPath() string {
	if runtime.GOOS == "windows" {
		return windowsFolderConfig
	}
	return filepath.Join(ConfigDir, "keymap.json")
}

// ExpandPath expands a leading ~/ to the home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") && path != "~" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}
