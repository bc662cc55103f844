// SPDX-License-Identifier: MIT
// Package lp — bound-driven heuristic relaxation (the default strategy).
//
// The procedure, in order:
//  1. Trivial infeasibility screen: any variable with lower > upper + feasTol
//     makes the node infeasible outright.
//  2. Unboundedness screen: a variable with a nonzero objective coefficient,
//     an infinite favorable bound, and no constraint touching it lets the
//     objective run away; report StatusUnbounded. This is the only form of
//     unboundedness the heuristic detects.
//  3. Initial assignment: fixed variables take their value; free ones take
//     the bound favorable to the objective, with +∞ replaced by a finite
//     sentinel (100) and −∞ by 0. Unbounded rays hidden behind the sentinel
//     are not detected.
//  4. Repair loop: at most maxSweeps passes over the constraints in
//     insertion order, distributing each violation across the adjustable
//     variables of the row in proportion to |coeff| and clamping to bounds.
//  5. Acceptance: the final total absolute violation must stay within the
//     coarse acceptTol, reflecting the heuristic's limits.

package lp

import (
	"math"

	"github.com/optimix/milp/core"
)

const (
	// maxSweeps caps the outer repair iterations.
	maxSweeps = 20

	// infSentinel substitutes +∞ in the initial assignment.
	infSentinel = 100.0

	// acceptTol is the coarse total-violation ceiling for acceptance.
	acceptTol = 0.1

	// stallSweeps/stallViolation bail out of a repair loop that keeps a
	// large violation alive past the early sweeps.
	stallSweeps    = 5
	stallViolation = 1.0
)

// Repair is the default relaxation strategy. The zero value is ready to use.
type Repair struct{}

// repairEngine holds one solve's state. A dedicated engine struct (rather
// than closures) keeps the hot path predictable and the steps testable.
type repairEngine struct {
	p      *core.Problem
	n      int
	values []float64
	// touched[i] reports whether any constraint references variable i;
	// untouched improving variables with an infinite favorable bound are
	// the unboundedness signal.
	touched []bool
}

// SolveRelaxation runs the heuristic on p, ignoring variable kinds.
func (Repair) SolveRelaxation(p *core.Problem) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProblem
	}

	e := repairEngine{p: p, n: p.NumVariables()}
	e.values = make([]float64, e.n)
	e.markTouched()

	// Stage 1: trivial infeasibility.
	for i := 0; i < e.n; i++ {
		v, _ := p.Variable(i)
		if v.Lower() > v.Upper()+core.FeasibilityTol {
			return Result{Status: StatusInfeasible, Iterations: 1}, nil
		}
	}

	// Stage 2: runaway objective direction.
	if e.unbounded() {
		return Result{Status: StatusUnbounded, Iterations: 1}, nil
	}

	// Stage 3: favorable-bound initial assignment.
	e.assignInitial()

	// Stage 4: proportional repair.
	sweeps, ok := e.repairLoop()
	if !ok {
		return Result{Status: StatusInfeasible, Iterations: sweeps}, nil
	}

	// Stage 5: coarse acceptance.
	if e.totalViolation() > acceptTol {
		return Result{Status: StatusInfeasible, Iterations: sweeps}, nil
	}

	obj := p.EvaluateObjective(e.values)
	if math.IsNaN(obj) {
		return Result{}, ErrNumeric
	}

	return Result{
		Status:     StatusOptimal,
		Values:     e.values,
		Objective:  obj,
		Iterations: sweeps,
	}, nil
}

// markTouched records which variables appear in at least one constraint.
func (e *repairEngine) markTouched() {
	e.touched = make([]bool, e.n)
	for ci := 0; ci < e.p.NumConstraints(); ci++ {
		c, _ := e.p.Constraint(ci)
		for _, i := range c.TermIndices() {
			if i < e.n {
				e.touched[i] = true
			}
		}
	}
}

// favorable returns the bound that improves the objective for variable v.
func (e *repairEngine) favorable(v *core.Variable) float64 {
	if e.p.Sense() == core.Maximize {
		if v.Obj() >= 0 {
			return v.Upper()
		}

		return v.Lower()
	}
	if v.Obj() >= 0 {
		return v.Lower()
	}

	return v.Upper()
}

// unbounded reports whether some improving variable has an infinite
// favorable bound and no constraint binding it.
func (e *repairEngine) unbounded() bool {
	for i := 0; i < e.n; i++ {
		v, _ := e.p.Variable(i)
		if v.Obj() == 0 || e.touched[i] {
			continue
		}
		if math.IsInf(e.favorable(v), 0) {
			return true
		}
	}

	return false
}

// assignInitial seeds values with fixed or favorable bounds, substituting
// finite sentinels for infinities and clamping back into the box.
func (e *repairEngine) assignInitial() {
	var i int
	var x float64
	for i = 0; i < e.n; i++ {
		v, _ := e.p.Variable(i)
		if v.Fixed() {
			e.values[i] = v.Lower()

			continue
		}
		x = e.favorable(v)
		if math.IsInf(x, 1) {
			x = infSentinel
		} else if math.IsInf(x, -1) {
			x = 0
		}
		// The sentinel may land outside a finite box; clamp it back.
		e.values[i] = math.Min(math.Max(x, v.Lower()), v.Upper())
	}
}

// repairLoop runs the proportional redistribution sweeps. It returns the
// number of sweeps executed and false when the loop stalls on a large
// violation.
func (e *repairEngine) repairLoop() (int, bool) {
	var sweep int
	for sweep = 1; sweep <= maxSweeps; sweep++ {
		allSatisfied := true
		maxViolation := 0.0
		for ci := 0; ci < e.p.NumConstraints(); ci++ {
			c, _ := e.p.Constraint(ci)
			viol := c.Violation(e.values)
			if viol == 0 {
				continue
			}
			allSatisfied = false
			maxViolation = math.Max(maxViolation, viol)
			e.redistribute(c)
		}
		if allSatisfied {
			return sweep, true
		}
		if sweep > stallSweeps && maxViolation > stallViolation {
			return sweep, false
		}
	}

	return maxSweeps, true
}

// redistribute moves the row toward its right-hand side, spreading the
// correction across adjustable variables proportionally to |coeff|.
func (e *repairEngine) redistribute(c *core.Constraint) {
	lhs := c.Activity(e.values)
	var target float64
	switch c.Sense() {
	case core.LE:
		if lhs <= c.RHS() {
			return
		}
		target = c.RHS() - lhs
	case core.GE:
		if lhs >= c.RHS() {
			return
		}
		target = c.RHS() - lhs
	case core.EQ:
		target = c.RHS() - lhs
	}
	if math.Abs(target) < core.FeasibilityTol {
		return
	}

	// Collect variables with slack toward the required direction.
	idx := c.TermIndices()
	adjustable := idx[:0:0]
	var totalWeight float64
	for _, i := range idx {
		if i >= e.n {
			continue
		}
		coeff, _ := c.Coefficient(i)
		if math.Abs(coeff) < core.FeasibilityTol {
			continue
		}
		v, _ := e.p.Variable(i)
		var canAdjust bool
		if target*coeff > 0 {
			canAdjust = e.values[i] < v.Upper()-core.FeasibilityTol
		} else {
			canAdjust = e.values[i] > v.Lower()+core.FeasibilityTol
		}
		if canAdjust {
			adjustable = append(adjustable, i)
			totalWeight += math.Abs(coeff)
		}
	}
	if len(adjustable) == 0 || totalWeight < core.FeasibilityTol {
		return
	}

	for _, i := range adjustable {
		coeff, _ := c.Coefficient(i)
		weight := math.Abs(coeff) / totalWeight
		v, _ := e.p.Variable(i)
		x := e.values[i] + target*weight/coeff
		e.values[i] = math.Min(math.Max(x, v.Lower()), v.Upper())
	}
}

// totalViolation sums the absolute violation over all rows.
func (e *repairEngine) totalViolation() float64 {
	var total float64
	for ci := 0; ci < e.p.NumConstraints(); ci++ {
		c, _ := e.p.Constraint(ci)
		total += c.Violation(e.values)
	}

	return total
}
