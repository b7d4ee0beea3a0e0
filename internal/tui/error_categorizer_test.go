package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/types"
)

func TestCategorizeFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantPrefix string
	}{
		{
			name:       "nil error",
			err:        nil,
			wantPrefix: "",
		},
		{
			name:       "no folder",
			err:        types.NewFailure(types.FailureConfig, editor.OpListFiles, "", editor.ErrNoFolder),
			wantPrefix: "No keymap folder selected",
		},
		{
			name:       "unlisted file",
			err:        types.NewFailure(types.FailureIO, editor.OpApply, "x.json", catalog.ErrNotFound),
			wantPrefix: "File is no longer listed",
		},
		{
			name:       "missing path",
			err:        types.NewFailure(types.FailureIO, editor.OpSelectFolder, "/nope", fs.ErrNotExist),
			wantPrefix: "File or folder not found",
		},
		{
			name:       "permission",
			err:        types.NewFailure(types.FailureIO, editor.OpApply, "a.json", fs.ErrPermission),
			wantPrefix: "Permission denied",
		},
		{
			name:       "validation cause",
			err:        types.NewFailure(types.FailureValidation, editor.OpApply, "a.json", &types.ValidationError{Reason: "keymaps is not an array"}),
			wantPrefix: "Invalid keymap document - keymaps is not an array",
		},
		{
			name:       "validation kind",
			err:        types.NewFailure(types.FailureValidation, editor.OpImportTemplate, "t.json", errors.New("bad json")),
			wantPrefix: "Invalid keymap document:",
		},
		{
			name:       "config kind",
			err:        types.NewFailure(types.FailureConfig, "keybinds", "k.json", errors.New("file exists")),
			wantPrefix: "Configuration problem:",
		},
		{
			name:       "disk full",
			err:        types.NewFailure(types.FailureIO, editor.OpApply, "a.json", errors.New("write a.json: no space left on device")),
			wantPrefix: "Disk full",
		},
		{
			name:       "wrapped not a directory",
			err:        fmt.Errorf("select: %w", types.NewFailure(types.FailureIO, editor.OpSelectFolder, "/f", errors.New("not a directory"))),
			wantPrefix: "Not a folder",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantPrefix: "Action failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeFailure(tt.err)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("categorizeFailure() = %q, want prefix %q", got, tt.wantPrefix)
			}
		})
	}
}
