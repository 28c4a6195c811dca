package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers can match them with errors.Is.
var (
	// ErrNoSubject is returned when there is no document to check.
	ErrNoSubject = errors.New("no subject specified: provide one or more document files or run without arguments for the demo")

	// ErrNoReference is returned when a subject has no trusted reference to
	// be checked against and self-check mode is off.
	ErrNoReference = errors.New("no reference specified: use --reference or the references key of the config file")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
