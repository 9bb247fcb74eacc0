package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates an inconsistent row shape or unusable header.
	ErrMalformed = errors.New("malformed table")
	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnsupported indicates no loader handles the file extension.
	ErrUnsupported = errors.New("unsupported table format")
	// ErrEmptyResult is reported when a filter or slice leaves nothing to work on.
	ErrEmptyResult = errors.New("empty result")
)

// LoadError reports a missing, unreadable or malformed input file.
type LoadError struct {
	Path   string
	Line   int // 1-based; 0 when not tied to a line
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s", e.Path, e.Line, msg)
	}
	return fmt.Sprintf("load %s: %s", e.Path, msg)
}

func (e *LoadError) Unwrap() error { return e.Err }
