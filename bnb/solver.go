// File: solver.go
// Role: the branch-and-bound engine and the public Solve entrypoint.
// Determinism:
//   - LIFO frontier, Down child explored first, largest-fractional-part
//     branching with smaller-index tie-break, deterministic relaxations.
// Concurrency:
//   - Single-threaded and synchronous; ctx and the deadline are polled at
//     node boundaries only.

package bnb

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/optimix/milp/core"
	"github.com/optimix/milp/lp"
)

// node is one frontier entry: an owned subproblem and its depth. Nodes keep
// no back-reference to their parent; after creation they are independent.
type node struct {
	problem *core.Problem
	depth   int
}

// engine holds one solve's state.
type engine struct {
	root   *core.Problem
	sense  core.Sense
	solver lp.Solver
	opts   Options

	frontier []node
	nodes    int

	incumbent    []float64
	incumbentObj float64
	hasIncumbent bool

	useDeadline bool
	deadline    time.Time
}

// Solve runs branch-and-bound on p and returns a Solution. The input
// Problem is treated as read-only; every subproblem is a value clone owned
// by its frontier slot.
//
// Limits: the node budget and optional wall-clock budget from Options, plus
// ctx cancellation; all three take effect between nodes and return the best
// incumbent found so far.
func Solve(ctx context.Context, p *core.Problem, options ...Option) (*core.Solution, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.LP == nil {
		opts.LP = lp.Repair{}
	}

	start := time.Now()
	e := engine{
		root:   p,
		sense:  p.Sense(),
		solver: opts.LP,
		opts:   opts,
	}
	e.incumbent = make([]float64, p.NumVariables())
	e.incumbentObj = math.Inf(1)
	if e.sense == core.Maximize {
		e.incumbentObj = math.Inf(-1)
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = start.Add(opts.TimeLimit)
	}

	// The root owns its own clone so that branching never touches p.
	e.frontier = append(e.frontier, node{problem: p.Clone(), depth: 0})

	status := e.search(ctx)
	elapsed := time.Since(start)

	return e.solution(status, elapsed), nil
}

// search runs the main loop and returns the final status.
func (e *engine) search(ctx context.Context) core.Status {
	for len(e.frontier) > 0 && e.nodes < e.opts.MaxIterations {
		// Cancellation and the wall clock are polled here, between nodes.
		if ctx.Err() != nil {
			return core.TimeLimit
		}
		if e.useDeadline && time.Now().After(e.deadline) {
			return core.TimeLimit
		}

		cur := e.frontier[len(e.frontier)-1]
		e.frontier = e.frontier[:len(e.frontier)-1]
		e.nodes++

		res, err := e.solver.SolveRelaxation(cur.problem)
		if err != nil {
			// Contained: the node is pruned. A root that cannot even be
			// classified leaves nothing to report.
			if e.nodes == 1 {
				return core.Unknown
			}
			e.tracef("node %d depth %d: relaxation error, pruned (%v)", e.nodes, cur.depth, err)

			continue
		}

		switch res.Status {
		case lp.StatusInfeasible:
			e.tracef("node %d depth %d: infeasible, pruned", e.nodes, cur.depth)

			continue
		case lp.StatusUnbounded:
			// The relaxation only reports this when an objective-improving
			// variable has no finite favorable bound and no constraint
			// touches it; no integer restriction can repair that.
			return core.Unbounded
		}

		if e.pruneByBound(res.Objective) {
			e.tracef("node %d depth %d: bound %g pruned (incumbent %g)", e.nodes, cur.depth, res.Objective, e.incumbentObj)

			continue
		}

		branchVar, fractional := e.mostFractional(res.Values)
		if !fractional {
			e.acceptIfBetter(res.Values)

			continue
		}

		e.branch(&cur, branchVar, res.Values[branchVar])
	}

	if !e.hasIncumbent {
		return core.Infeasible
	}
	if len(e.frontier) > 0 {
		return core.IterationLimit
	}

	return core.Optimal
}

// pruneByBound reports whether the node's relaxation objective cannot beat
// the incumbent by more than the pruning tolerance.
func (e *engine) pruneByBound(lpObj float64) bool {
	if e.sense == core.Minimize {
		return lpObj >= e.incumbentObj-core.PruningTol
	}

	return lpObj <= e.incumbentObj+core.PruningTol
}

// mostFractional returns the integer variable with the largest fractional
// part beyond IntegralityTol, ties resolved to the smaller index. The
// boolean is false when the assignment is integer-feasible.
func (e *engine) mostFractional(values []float64) (int, bool) {
	branchVar := -1
	maxFrac := 0.0
	for i := 0; i < e.root.NumVariables(); i++ {
		v, _ := e.root.Variable(i)
		if !v.Kind().IsIntegral() {
			continue
		}
		frac := math.Abs(values[i] - math.Round(values[i]))
		if frac > core.IntegralityTol && frac > maxFrac {
			maxFrac = frac
			branchVar = i
		}
	}

	return branchVar, branchVar >= 0
}

// acceptIfBetter rounds the integral components, re-evaluates the
// objective, and installs the point as the incumbent when it strictly
// improves on it and still satisfies the original model.
func (e *engine) acceptIfBetter(values []float64) {
	rounded := make([]float64, len(values))
	copy(rounded, values)
	for i := 0; i < e.root.NumVariables(); i++ {
		v, _ := e.root.Variable(i)
		if v.Kind().IsIntegral() {
			rounded[i] = math.Round(rounded[i])
		}
	}

	obj := e.root.EvaluateObjective(rounded)
	better := obj < e.incumbentObj-core.PruningTol
	if e.sense == core.Maximize {
		better = obj > e.incumbentObj+core.PruningTol
	}
	if !better {
		return
	}
	// Rounding moved each integral component by at most IntegralityTol;
	// re-check the original model so a reported optimum is always feasible.
	if !e.root.IsFeasible(rounded) {
		e.tracef("node %d: rounded point violates the model, discarded", e.nodes)

		return
	}

	e.incumbent = rounded
	e.incumbentObj = obj
	e.hasIncumbent = true
	e.tracef("node %d: new incumbent %g", e.nodes, obj)
	if e.opts.OnIncumbent != nil {
		out := make([]float64, len(rounded))
		copy(out, rounded)
		e.opts.OnIncumbent(obj, out)
	}
}

// branch pushes the two children of cur onto the frontier: Up (lower ←
// ⌈x⌉) first, then Down (upper ← ⌊x⌋), so the Down child is explored
// first.
func (e *engine) branch(cur *node, branchVar int, x float64) {
	e.tracef("node %d depth %d: branching on x%d = %g", e.nodes, cur.depth, branchVar, x)

	up := node{problem: cur.problem.Clone(), depth: cur.depth + 1}
	_ = up.problem.TightenBounds(branchVar, math.Ceil(x), math.Inf(1))

	down := node{problem: cur.problem.Clone(), depth: cur.depth + 1}
	_ = down.problem.TightenBounds(branchVar, math.Inf(-1), math.Floor(x))

	e.frontier = append(e.frontier, up, down)
}

// solution packages the engine state into an immutable core.Solution.
func (e *engine) solution(status core.Status, elapsed time.Duration) *core.Solution {
	names := make([]string, e.root.NumVariables())
	for i := range names {
		v, _ := e.root.Variable(i)
		names[i] = v.Name()
	}

	return core.NewSolution(status, e.incumbent, e.incumbentObj, e.nodes, elapsed).
		WithNames(names)
}

// tracef writes one progress line when a trace sink is configured.
func (e *engine) tracef(format string, args ...interface{}) {
	if e.opts.Trace == nil {
		return
	}
	fmt.Fprintf(e.opts.Trace, format+"\n", args...)
}
