// Package core defines the central Problem, Variable, Constraint, and
// Solution types shared by every solver in this module.
//
// A Problem is an in-memory mixed-integer linear program: an objective
// sense, an ordered list of decision variables with bounds and objective
// coefficients, and an ordered list of sparse linear constraints. It is
// pure data with validation helpers; the search and relaxation algorithms
// live in the lp and bnb packages and never mutate the Problem they are
// handed.
//
// Determinism policy:
//   - Variables and constraints keep the zero-based index assigned at
//     insertion; indices are never reused nor reassigned.
//   - A constraint stores its terms sparsely (variable index → coefficient);
//     TermIndices exposes them in ascending index order so that every
//     consumer iterates identically.
//
// Errors:
//
//	ErrIndexRange - variable or constraint index out of range.
//	ErrNaN        - NaN offered as a bound, coefficient, or right-hand side.
//
// Algorithmic outcomes (infeasibility, unboundedness, hitting a limit) are
// never errors here: they are Solution statuses.
package core
