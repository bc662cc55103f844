// File: types.go
// Role: options and sentinel errors for the branch-and-bound driver.

package bnb

import (
	"errors"
	"io"
	"time"

	"github.com/optimix/milp/lp"
)

// ErrNilProblem indicates a nil *core.Problem was passed to Solve.
var ErrNilProblem = errors.New("bnb: problem is nil")

// DefaultMaxIterations is the node budget applied when none is configured.
const DefaultMaxIterations = 100000

// Options configures one solve.
//
// MaxIterations – node budget; hitting it returns the incumbent with status
// IterationLimit, or status Infeasible when no incumbent was found. TimeLimit – optional wall-clock budget (0 = none), checked
// between nodes. LP – relaxation strategy; nil selects lp.Repair. Trace –
// optional progress sink (nil = silent); verbosity is per solve, never a
// process-wide toggle. OnIncumbent – hook invoked on every incumbent
// improvement with the objective and a copy of the values.
type Options struct {
	MaxIterations int
	TimeLimit     time.Duration
	LP            lp.Solver
	Trace         io.Writer
	OnIncumbent   func(objective float64, values []float64)
}

// Option is a functional option for Solve.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: the Repair relaxation,
// DefaultMaxIterations nodes, no time limit, no trace.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		LP:            lp.Repair{},
	}
}

// WithMaxIterations caps the number of processed nodes. Non-positive values
// are ignored and keep the default.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithTimeLimit sets a wall-clock budget checked between nodes.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.TimeLimit = d
		}
	}
}

// WithLP selects the relaxation strategy (lp.Repair or lp.Simplex, or any
// custom lp.Solver).
func WithLP(s lp.Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.LP = s
		}
	}
}

// WithTrace streams progress lines (one per node event) to w.
func WithTrace(w io.Writer) Option {
	return func(o *Options) { o.Trace = w }
}

// WithIncumbentHook registers a callback fired on every incumbent
// improvement.
func WithIncumbentHook(fn func(objective float64, values []float64)) Option {
	return func(o *Options) { o.OnIncumbent = fn }
}
