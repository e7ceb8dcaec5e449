package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// Process exit codes. User mistakes exit 1, environment and filesystem
// failures exit 2, matching what the shell completion and scripts expect.
const (
	ExitSuccess = 0
	ExitUser    = 1
	ExitSystem  = 2
)

var (
	// ErrMissingName reports an operation that needs a backup name but ran
	// without one, typically off-terminal where prompting is impossible.
	ErrMissingName = crdberrors.New("name is required")

	// ErrInvalidConfig reports a loaded configuration that failed validation.
	ErrInvalidConfig = crdberrors.New("invalid configuration")

	// ErrIO marks unclassified filesystem failures. Mark keeps the cause
	// chain intact, so main can map any marked error to ExitSystem while
	// callers still see the original os error.
	ErrIO = crdberrors.New("filesystem operation failed")
)

// ExitError attaches a process exit code to an error, plus an optional
// one-line suggestion that main prints under the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with an exit code and no suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError wraps err as a user mistake, with a suggestion telling the
// user what to do about it.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewConfigError wraps a configuration problem and points the user at the
// doctor command.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: ersm doctor")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error to Is and As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
