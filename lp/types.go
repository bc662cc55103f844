// SPDX-License-Identifier: MIT
// Package lp: result types, the strategy capability, and sentinel errors.

package lp

import (
	"errors"

	"github.com/optimix/milp/core"
)

// Sentinel errors for relaxation strategies.
var (
	// ErrNilProblem indicates a nil *core.Problem was passed to a strategy.
	ErrNilProblem = errors.New("lp: problem is nil")

	// ErrLowerUnbounded indicates the Simplex strategy was given a variable
	// with lower bound −∞, which its shifted standard form cannot express.
	// Callers fall back to the Repair strategy for such models.
	ErrLowerUnbounded = errors.New("lp: variable lower bound is -Inf")

	// ErrNumeric indicates arithmetic produced NaN during the repair loop.
	// The search driver contains this error: the node is pruned, or the
	// solve reports Unknown when it happens at the root.
	ErrNumeric = errors.New("lp: NaN encountered during repair")
)

// Status classifies a relaxation outcome.
type Status int

const (
	// StatusOptimal means Values satisfies bounds and constraints within
	// tolerance and Objective is the relaxation optimum the strategy found.
	StatusOptimal Status = iota

	// StatusInfeasible means the strategy found no acceptable assignment.
	StatusInfeasible

	// StatusUnbounded means the objective improves without limit.
	StatusUnbounded
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "Optimal"
	}
}

// Result is the outcome of one relaxation solve.
type Result struct {
	// Status classifies the outcome; Values and Objective are meaningful
	// only for StatusOptimal.
	Status Status

	// Values is the assignment aligned to variable indices.
	Values []float64

	// Objective is the objective value at Values.
	Objective float64

	// Iterations counts the strategy's internal passes (repair sweeps for
	// Repair, 1 for a single simplex call).
	Iterations int
}

// Solver is the relaxation capability the branch-and-bound driver consumes.
// Implementations must treat the Problem as read-only.
type Solver interface {
	SolveRelaxation(p *core.Problem) (Result, error)
}
