// File: types.go
// Role: sentinel errors and the line-tagged error types of the MPS reader.

package mps

import (
	"errors"
	"fmt"
)

// Package sentinels; the typed errors below unwrap to these so callers can
// classify failures with errors.Is without losing the line number.
var (
	// ErrSyntax marks an unparseable token or malformed record.
	ErrSyntax = errors.New("mps: syntax error")

	// ErrUnknownRow marks a COLUMNS or RHS reference to an undeclared row.
	ErrUnknownRow = errors.New("mps: unknown row")

	// ErrUnsupported marks a section or directive the reader does not
	// implement (currently a non-empty RANGES section).
	ErrUnsupported = errors.New("mps: unsupported feature")

	// ErrMissingSection marks a file without ROWS, COLUMNS, or ENDATA.
	ErrMissingSection = errors.New("mps: required section missing")

	// ErrNilProblem indicates a nil *core.Problem was passed to Write.
	ErrNilProblem = errors.New("mps: problem is nil")
)

// SyntaxError reports an unparseable line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("mps: line %d: %s", e.Line, e.Msg) }

// Unwrap ties the error to ErrSyntax.
func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// UnknownRowError reports a reference to a row never declared in ROWS.
type UnknownRowError struct {
	Line int
	Row  string
}

func (e *UnknownRowError) Error() string {
	return fmt.Sprintf("mps: line %d: unknown row %q", e.Line, e.Row)
}

// Unwrap ties the error to ErrUnknownRow.
func (e *UnknownRowError) Unwrap() error { return ErrUnknownRow }

// UnsupportedError reports an unimplemented section or directive.
type UnsupportedError struct {
	Line    int
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("mps: line %d: %s is not supported", e.Line, e.Feature)
}

// Unwrap ties the error to ErrUnsupported.
func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }
