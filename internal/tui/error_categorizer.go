package tui

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/studiowebux/keymapedit/internal/catalog"
	"github.com/studiowebux/keymapedit/internal/editor"
	"github.com/studiowebux/keymapedit/internal/types"
)

// categorizeFailure turns an action error into an actionable footer message.
// The full error stays available in the error detail modal.
func categorizeFailure(err error) string {
	if err == nil {
		return ""
	}

	// Specific causes first, they carry the best hint
	switch {
	case errors.Is(err, editor.ErrNoFolder):
		return "No keymap folder selected - press f to choose one"
	case errors.Is(err, catalog.ErrNotFound):
		return "File is no longer listed - refresh with r: " + err.Error()
	case errors.Is(err, fs.ErrNotExist):
		return "File or folder not found - it may have been moved or deleted: " + err.Error()
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied - check file permissions: " + err.Error()
	}

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return "Invalid keymap document - " + verr.Reason
	}

	switch types.KindOf(err) {
	case types.FailureConfig:
		return "Configuration problem: " + err.Error()
	case types.FailureValidation:
		return "Invalid keymap document: " + err.Error()
	case types.FailureIO:
		return categorizeIOError(err.Error())
	case types.FailureCancelled:
		return "Cancelled"
	}

	return "Action failed: " + err.Error()
}

// categorizeIOError inspects error strings the os package does not expose
// as sentinel errors
func categorizeIOError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "no space left") {
		return "Disk full - free some space and retry: " + errStr
	}
	if strings.Contains(errLower, "read-only file system") {
		return "Folder is read-only - pick a writable folder: " + errStr
	}
	if strings.Contains(errLower, "not a directory") {
		return "Not a folder - enter a directory path: " + errStr
	}

	return "File operation failed: " + errStr
}
