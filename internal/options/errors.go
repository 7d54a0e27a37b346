package options

import (
	"errors"
	"strings"
)

var ErrCoverage = errors.New("coverage sink unavailable")

// A request to terminate the process.
//
// Returned by [Parser.Parse] when a flag asks for output and exit (help,
// version, engine help) or when the coverage file cannot be opened. Message
// is printed verbatim to standard output before exiting with Code.
//
// A coverage open failure exits with code 0, the same as a help request.
// This keeps the established exit status although a non-zero code would be
// more accurate.
type Exit struct {
	Code    int    // Process exit code.
	Message string // Text for standard output, including any trailing newline.
	Err     error  // Underlying cause, if the exit reports a failure.
}

// Implements the error interface.
func (e *Exit) Error() string {
	msg := strings.TrimSpace(e.Message)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Returns the underlying cause.
func (e *Exit) Unwrap() error {
	return e.Err
}
