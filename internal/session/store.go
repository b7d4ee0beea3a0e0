package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/studiowebux/keymapedit/internal/config"
)

// folderConfig is the on-disk shape: {"folder_path": "..."}
type folderConfig struct {
	FolderPath string `json:"folder_path"`
}

// Store persists the selected folder in a small JSON file
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store backed by path
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored folder path, or "" when the file is missing or
// cannot be parsed.
func (s *Store) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("folder config unreadable", "path", s.path, "error", err)
		}
		return ""
	}

	var cfg folderConfig
	if err := json.Unmarshal(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), &cfg); err != nil {
		s.logger.Debug("folder config corrupt", "path", s.path, "error", err)
		return ""
	}

	return cfg.FolderPath
}

// Save writes the folder path, creating parent directories as needed
func (s *Store) Save(folder string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(folderConfig{FolderPath: folder}); err != nil {
		return fmt.Errorf("failed to marshal folder config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write folder config: %w", err)
	}

	s.logger.Debug("folder config saved", "path", s.path, "folder", folder)
	return nil
}
