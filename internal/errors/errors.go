package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrFileNotFound indicates the input markdown file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedFrontMatter indicates the front matter block could not be
	// parsed: an opening fence without a matching close, or content that is
	// not a YAML mapping.
	ErrMalformedFrontMatter = errors.New("malformed front matter")

	// ErrMissingCredential indicates the API credential environment variable
	// is not set.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrCompletionRequestFailed indicates the completion request could not
	// be completed (network, auth, or rate-limit failure).
	ErrCompletionRequestFailed = errors.New("completion request failed")

	// ErrInvalidCompletionResponse indicates the completion endpoint answered
	// but the response could not be decoded into a description and keywords.
	ErrInvalidCompletionResponse = errors.New("invalid completion response")
)

// Re-exported helpers from cockroachdb/errors so callers need a single
// errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
