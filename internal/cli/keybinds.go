package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/studiowebux/keymapedit/internal/keybinds"
	"github.com/studiowebux/keymapedit/internal/types"
)

const opKeybinds = "keybinds"

// ExportKeybinds writes the default TUI key bindings to path so they can
// be edited. An existing file is kept unless force is set.
func (a *App) ExportKeybinds(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return types.NewFailure(types.FailureConfig, opKeybinds, path, errors.New("file exists (use --force to overwrite)"))
	}

	if err := keybinds.SaveConfig(keybinds.ExportDefaults(), path); err != nil {
		return types.NewFailure(types.FailureIO, opKeybinds, path, err)
	}
	fmt.Fprintf(a.ErrOut, "Default key bindings written to %s\n", path)
	return nil
}

// CheckKeybinds validates the key bindings file at path
func (a *App) CheckKeybinds(path string) error {
	cfg, err := keybinds.LoadConfig(path)
	if err != nil {
		kind := types.FailureValidation
		if errors.Is(err, os.ErrNotExist) {
			kind = types.FailureIO
		}
		return types.NewFailure(kind, opKeybinds, path, err)
	}

	result := keybinds.NewValidator().ValidateConfig(cfg)
	fmt.Fprintln(a.Out, result.String())
	if result.HasErrors() {
		return types.NewFailure(types.FailureValidation, opKeybinds, path, fmt.Errorf("%d invalid bindings", len(result.Errors)))
	}
	return nil
}
