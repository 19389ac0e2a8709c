package editor

import "errors"

var (
	// ErrNotFound is returned when a search or replacement matches nothing
	ErrNotFound = errors.New("no match found")
	// ErrEmptyPattern is returned by ReplaceAll for an empty pattern
	ErrEmptyPattern = errors.New("search pattern is empty")
	// ErrInvalidPattern wraps regular expression compile errors
	ErrInvalidPattern = errors.New("invalid regular expression")
)
