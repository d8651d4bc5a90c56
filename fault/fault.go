// Package fault defines the error kinds shared by the corpus generator and
// the benchmark harness. Call sites wrap one of the sentinels with
// fmt.Errorf("%w: ...") and callers classify with errors.Is.
package fault

import "errors"

var (
	// ErrInvalidArgument is returned for bad numeric parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when the tool binary or dataset is missing.
	ErrNotFound = errors.New("not found")

	// ErrExternalProcess is returned when an invoked command exits non-zero.
	ErrExternalProcess = errors.New("external process failed")

	// ErrIO is returned for filesystem failures.
	ErrIO = errors.New("i/o failure")
)

// Exit codes used by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrNotFound):
		return ExitUsage
	default:
		return ExitFailure
	}
}
