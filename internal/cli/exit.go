package cli

import (
	"errors"

	"github.com/rshade/registrar/internal/backend"
)

// Process exit codes.
const (
	ExitCodeOK           = 0
	ExitCodeError        = 1
	ExitCodeUnauthorized = 3
	ExitCodeNotFound     = 4
	ExitCodeIncompatible = 5
)

// ExitError carries a specific process exit code with the error that caused it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to the process exit code: an ExitError's own code, a
// code derived from a backend sentinel, or 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeOK
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, backend.ErrUnauthorized):
		return ExitCodeUnauthorized
	case errors.Is(err, backend.ErrNotFound):
		return ExitCodeNotFound
	case errors.Is(err, backend.ErrIncompatibleBackend):
		return ExitCodeIncompatible
	default:
		return ExitCodeError
	}
}
