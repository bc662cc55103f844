// Package mps reads and writes the MPS text format for linear and
// mixed-integer programs.
//
// The reader is a streaming state machine over whitespace-separated fields:
// it accepts both fixed-column and free-form files, holds one line in memory
// at a time, and recognizes the sections NAME, ROWS (required), COLUMNS
// (required), RHS, RANGES, BOUNDS, and ENDATA (required). Comment lines
// begin with '*'.
//
// Conventions honored:
//   - Exactly one N row designates the objective; later N rows are ignored.
//   - Variables are indexed in first-occurrence order within COLUMNS.
//   - The 'MARKER' / 'INTORG' / 'INTEND' mechanism toggles integer mode.
//   - Only the first RHS set and the first BOUNDS set are honored.
//   - Default bounds are [0, +∞) for any variable absent from BOUNDS.
//   - MPS does not encode an objective sense; parsed Problems minimize, and
//     callers loading a maximization model flip it with SetSense.
//
// A non-empty RANGES section is rejected with ErrUnsupported rather than
// silently misread.
//
// The writer emits the same supported subset (MARKER pairs around integer
// runs, UP/LO/FX/MI/FR/BV bound lines) so that writing a Problem and
// reparsing it solves identically.
//
// Errors carry the offending line number: SyntaxError, UnknownRowError, and
// UnsupportedError all unwrap to their package sentinels for errors.Is.
package mps
