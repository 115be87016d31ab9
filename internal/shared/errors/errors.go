package errors

import "errors"

// Domain errors
var (
	// Discovery errors
	ErrNotFound            = errors.New("executable not found")
	ErrExecutionFailed     = errors.New("command failed or empty output")
	ErrTimeout             = errors.New("command timed out")
	ErrNoInstallLocation   = errors.New("no install location found")
	ErrNoMatch             = errors.New("no matching file found")
	ErrUnsupportedPlatform = errors.New("not supported on this platform")

	// Feature query errors
	ErrPermissionDenied = errors.New("insufficient privilege to query feature state")
	ErrUnknownState     = errors.New("feature state could not be determined")

	// Result/report errors
	ErrNoResults        = errors.New("no results found")
	ErrInvalidFormat    = errors.New("unsupported report format")
	ErrUnknownProbe     = errors.New("unknown probe name")
	ErrEmptyProbeName   = errors.New("probe name cannot be empty")
	ErrEmptyProbeTarget = errors.New("probe target cannot be empty")
)
