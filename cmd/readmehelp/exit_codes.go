package main

import (
	"errors"
	"os"

	readmehelp "github.com/alnah/go-readmehelp"
	"github.com/alnah/go-readmehelp/internal/config"
	"github.com/alnah/go-readmehelp/internal/modules"
)

// Exit codes for the readmehelp CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, failed conversions
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidModule) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, modules.ErrEmptyDir) ||
		errors.Is(err, modules.ErrInvalidURL) ||
		errors.Is(err, readmehelp.ErrStyleNotFound) ||
		errors.Is(err, readmehelp.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidAssignment) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnknownModule) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
