package types

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Failure
		want string
	}{
		{
			name: "with path",
			err:  NewFailure(FailureIO, "apply", "/k/a.json", errors.New("disk full")),
			want: "apply /k/a.json: disk full",
		},
		{
			name: "without path",
			err:  NewFailure(FailureConfig, "list files", "", errors.New("no keymap folder selected")),
			want: "list files: no keymap folder selected",
		},
		{
			name: "cancelled",
			err:  Cancelled("delete"),
			want: "delete: cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	failure := NewFailure(FailureValidation, "import template", "t.json", &ValidationError{Reason: "keymaps is not an array"})

	assert.Equal(t, FailureValidation, KindOf(failure))
	assert.Equal(t, FailureValidation, KindOf(fmt.Errorf("wrapped: %w", failure)))
	assert.Equal(t, FailureKind(0), KindOf(errors.New("plain")))
	assert.Equal(t, FailureKind(0), KindOf(nil))

	var verr *ValidationError
	assert.True(t, errors.As(failure, &verr))
	assert.Equal(t, "keymaps is not an array", verr.Reason)
}

func TestFailure_UnwrapsCause(t *testing.T) {
	err := NewFailure(FailureIO, "delete", "a.json", &fs.PathError{Op: "remove", Path: "a.json", Err: fs.ErrNotExist})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(Cancelled("apply")))
	assert.True(t, IsCancelled(fmt.Errorf("picker: %w", ErrCancelled)))
	assert.False(t, IsCancelled(NewFailure(FailureIO, "apply", "", errors.New("boom"))))
	assert.False(t, IsCancelled(nil))
}

func TestFailureKind_String(t *testing.T) {
	assert.Equal(t, "configuration", FailureConfig.String())
	assert.Equal(t, "validation", FailureValidation.String())
	assert.Equal(t, "io", FailureIO.String())
	assert.Equal(t, "cancelled", FailureCancelled.String())
	assert.Equal(t, "unknown", FailureKind(42).String())
}
