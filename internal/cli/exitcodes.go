package cli

import (
	"errors"

	"github.com/yaklabco/gozen/pkg/abbrev"
	"github.com/yaklabco/gozen/pkg/fsutil"
	"github.com/yaklabco/gozen/pkg/zen"
)

// Exit codes for gozen.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a generic failure.
	ExitFailure = 1

	// ExitCancelled indicates the user abandoned an interactive prompt.
	ExitCancelled = 2

	// ExitInvalidUsage indicates invalid command-line usage or input.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, zen.ErrCancelled):
		return ExitCancelled
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified),
		errors.Is(err, ErrDetectFailed):
		return ExitIOError
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrInvalidEdit),
		errors.Is(err, ErrNothingAtPosition),
		errors.Is(err, ErrUnknownResource),
		errors.Is(err, abbrev.ErrInvalidAbbreviation):
		return ExitInvalidUsage
	default:
		return ExitFailure
	}
}
