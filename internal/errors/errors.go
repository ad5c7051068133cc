package errors

import "fmt"

// Error kinds returned by the action layer
var (
	ErrPathUnsafe          = fmt.Errorf("PATH_UNSAFE")
	ErrNotFound            = fmt.Errorf("NOT_FOUND")
	ErrNotADirectory       = fmt.Errorf("NOT_A_DIRECTORY")
	ErrNotAFile            = fmt.Errorf("NOT_A_FILE")
	ErrDestinationRequired = fmt.Errorf("DESTINATION_REQUIRED")
	ErrUnsupportedFileKind = fmt.Errorf("UNSUPPORTED_FILE_KIND")
	ErrPermissionDenied    = fmt.Errorf("PERMISSION_DENIED")
	ErrTimeout             = fmt.Errorf("TIMEOUT")
	ErrPartialFailure      = fmt.Errorf("PARTIAL_FAILURE")
	ErrUnknownAction       = fmt.Errorf("UNKNOWN_ACTION")
)

// PathError wraps errors that name a specific filesystem path
type PathError struct {
	Op     string
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s: %v (%s)", e.Op, e.Path, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError builds a PathError around one of the sentinel kinds
func NewPathError(op, path, reason string, kind error) *PathError {
	return &PathError{Op: op, Path: path, Reason: reason, Err: kind}
}

// BatchError reports a batch action that finished with per-file failures.
// It is informational rather than fatal: the successes already happened.
type BatchError struct {
	Op        string
	Succeeded int
	Failed    int
	Failures  []string
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s completed with %d succeeded, %d failed: %v", e.Op, e.Succeeded, e.Failed, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
