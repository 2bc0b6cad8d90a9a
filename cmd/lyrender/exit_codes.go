package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-lyrender"
	"github.com/alnah/go-lyrender/internal/config"
	"github.com/alnah/go-lyrender/internal/logging"
)

// Exit codes for lyrender CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error, cancellation
	ExitUsage   = 2 // Invalid flags, config, or input selection
	ExitIO      = 3 // File not found, permission denied, workspace errors
	ExitTool    = 4 // External tool failed, missing, or timed out
	ExitParse   = 5 // Tool output could not be interpreted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, lyrender.ErrToolFailed) ||
		errors.Is(err, lyrender.ErrToolNotFound) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitTool
	}

	// Tool output errors (exit 5)
	if errors.Is(err, lyrender.ErrMissingGeometry) ||
		errors.Is(err, lyrender.ErrPageLimit) ||
		errors.Is(err, lyrender.ErrMissingMIDI) ||
		errors.Is(err, lyrender.ErrAudioTruncate) {
		return ExitParse
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, lyrender.ErrNoInput) ||
		errors.Is(err, lyrender.ErrAmbiguousInput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, lyrender.ErrSourceNotFound) ||
		errors.Is(err, lyrender.ErrSampleBankMissing) ||
		errors.Is(err, lyrender.ErrWorkspace) ||
		errors.Is(err, config.ErrSampleBankNotFound) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteResult) {
		return ExitIO
	}

	return ExitGeneral
}
