package cli

import (
	"errors"

	"github.com/yaklabco/fmtwriter/pkg/runner"
	"github.com/yaklabco/fmtwriter/pkg/script"
)

// Exit codes for fmtwriter, following sysexits(3) where one applies.
const (
	// ExitSuccess indicates every target is up to date or was written.
	ExitSuccess = 0

	// ExitCheckFailed indicates --check found targets that would change.
	ExitCheckFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates an invalid configuration file or malformed script.
	ExitConfigError = 65

	// ExitInternalError indicates a writer contract violation.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrCheckFailed is returned when --check finds out-of-date targets.
var ErrCheckFailed = errors.New("targets are out of date")

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withExitCode wraps err so ExitCode reports code for it.
func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if errors.Is(err, ErrCheckFailed) {
		return ExitCheckFailed
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code for a finished run. Internal
// errors take precedence over I/O errors, which take precedence over
// malformed scripts. With check set, pending changes fail the run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	code := ExitSuccess
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		switch {
		case file.Internal:
			return ExitInternalError
		case errors.Is(file.Error, script.ErrMalformed):
			if code == ExitSuccess {
				code = ExitConfigError
			}
		default:
			code = ExitIOError
		}
	}
	if code != ExitSuccess {
		return code
	}

	if check && result.HasChanges() {
		return ExitCheckFailed
	}
	return ExitSuccess
}
