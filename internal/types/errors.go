package types

import (
	"errors"
	"fmt"
)

// FailureKind tags why a user action did not complete
type FailureKind int

const (
	// FailureConfig covers a missing or unusable persisted configuration
	FailureConfig FailureKind = iota + 1
	// FailureValidation covers documents and templates with the wrong shape
	FailureValidation
	// FailureIO covers read, write, delete and listing errors
	FailureIO
	// FailureCancelled means the user chose nothing; it is not an error to report
	FailureCancelled
)

// String returns a short name for the kind
func (k FailureKind) String() string {
	switch k {
	case FailureConfig:
		return "configuration"
	case FailureValidation:
		return "validation"
	case FailureIO:
		return "io"
	case FailureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrCancelled is the cause carried by cancelled failures
var ErrCancelled = errors.New("cancelled")

// Failure is the error returned by every user action
type Failure struct {
	Kind FailureKind
	Op   string // User action, e.g. "apply" or "import template"
	Path string // File or folder involved, if any
	Err  error
}

func (f *Failure) Error() string {
	if f.Path != "" {
		return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a tagged failure
func NewFailure(kind FailureKind, op, path string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Path: path, Err: err}
}

// Cancelled builds a cancelled failure for op
func Cancelled(op string) *Failure {
	return &Failure{Kind: FailureCancelled, Op: op, Err: ErrCancelled}
}

// KindOf returns the failure kind of err, or 0 when err carries none
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

// IsCancelled reports whether err is a cancelled selection
func IsCancelled(err error) bool {
	return KindOf(err) == FailureCancelled || errors.Is(err, ErrCancelled)
}

// ValidationError marks a shape problem found while parsing a document or template
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
