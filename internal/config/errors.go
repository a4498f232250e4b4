package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoEntryURL is returned when no entry URL is specified.
	ErrNoEntryURL = errors.New("no entry URL specified: provide the documentation site URL as the first argument")

	// ErrInvalidEntryURL is returned when the entry URL is not an
	// absolute http or https URL.
	ErrInvalidEntryURL = errors.New("invalid entry URL: must be an absolute http(s) URL")

	// ErrNoOutputDir is returned when the output directory is empty.
	ErrNoOutputDir = errors.New("no output directory specified")

	// ErrInvalidTimeout is returned when the navigation timeout is negative.
	// Use 0 to disable the timeout entirely.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidScale is returned when the PDF scale is outside (0, 2].
	// The rendering engine rejects scales beyond that range.
	ErrInvalidScale = errors.New("invalid pdf scale: must be greater than 0 and at most 2")
)
