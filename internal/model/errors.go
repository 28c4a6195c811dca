package model

import "errors"

var (
	// ErrNoRelevantSources is returned by Information.IsAccurateWithSources
	// when none of the trusted documents shares a topic with the subject.
	// The message is printed verbatim by the CLI.
	ErrNoRelevantSources = errors.New("Error no relevant sources") //nolint:staticcheck // user-facing message

	// ErrNotImplemented is returned by capability operations that have no
	// defined semantics, such as AccuracyScore.
	ErrNotImplemented = errors.New("not implemented")
)
