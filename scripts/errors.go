package scripts

import (
	"context"
	"errors"
	"fmt"
)

// SetupError means the entry file could not be read or compiled; nothing was traced
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("cannot run file %q: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// ExitError is returned by the exit builtin; the run counts as finished normally
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

var ErrAborted = errors.New("aborted")

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitSetup   = 2
	ExitAborted = 130
)

// ExitCode maps a Run result to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return ExitOK
	}
	var setup *SetupError
	if errors.As(err, &setup) {
		return ExitSetup
	}
	if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
		return ExitAborted
	}
	return ExitFailure
}

var (
	errBadDuration   = errors.New("duration must be a non-negative number")
	errEmptyRange    = errors.New("empty range")
	errEmptySequence = errors.New("empty sequence")
)
