// SPDX-License-Identifier: MIT
// Package lp — exact simplex strategy on gonum's dense LP solver.
//
// Shape of the reduction:
//
//	original:  optimize Σ obj·x,  rows (LE/GE/EQ),  l ≤ x ≤ u,  l finite
//	shifted:   x = x' + l, x' ≥ 0
//	standard:  minimize c'·[x'; s]  s.t.  A·[x'; s] = b,  [x'; s] ≥ 0
//
// where every LE/GE row and every finite upper bound contributes one slack
// column s. Maximization is handled by negating the cost vector; the
// reported objective is always re-evaluated on the original Problem so no
// sign bookkeeping leaks out.

package lp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/optimix/milp/core"
)

// Simplex is the exact relaxation strategy. The zero value is ready to use.
//
// It rejects models containing a variable with lower bound −∞ with
// ErrLowerUnbounded; the MPS convention (default lower bound 0) and the
// branching step (which only tightens bounds) both keep lower bounds
// finite, so in practice only models with free (FR/MI or hand-built)
// variables are rejected. No automatic fallback to Repair takes place: the
// bnb driver prunes such a node, or reports Unknown when it is the root.
type Simplex struct {
	// Tol is passed through to the underlying solver; zero selects the
	// solver's default tolerance.
	Tol float64
}

// SolveRelaxation solves the relaxation of p exactly.
func (s Simplex) SolveRelaxation(p *core.Problem) (Result, error) {
	if p == nil {
		return Result{}, ErrNilProblem
	}
	n := p.NumVariables()

	// Screens shared with the heuristic: crossed bounds, free lower bounds,
	// and constant rows (which the standard form cannot carry).
	shift := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := p.Variable(i)
		if v.Lower() > v.Upper()+core.FeasibilityTol {
			return Result{Status: StatusInfeasible, Iterations: 1}, nil
		}
		if math.IsInf(v.Lower(), -1) {
			return Result{}, ErrLowerUnbounded
		}
		shift[i] = v.Lower()
	}

	type row struct {
		ci    int
		sense core.ConstraintSense
	}
	var eqRows, ineqRows []row
	for ci := 0; ci < p.NumConstraints(); ci++ {
		c, _ := p.Constraint(ci)
		if c.NumTerms() == 0 {
			// Constant row: decide it right here.
			if !c.Satisfied(make([]float64, n)) {
				return Result{Status: StatusInfeasible, Iterations: 1}, nil
			}

			continue
		}
		if c.Sense() == core.EQ {
			eqRows = append(eqRows, row{ci, core.EQ})
		} else {
			ineqRows = append(ineqRows, row{ci, c.Sense()})
		}
	}

	// Finite upper bounds become x'_i ≤ u_i − l_i slack rows.
	var uppers []int
	for i := 0; i < n; i++ {
		v, _ := p.Variable(i)
		if !math.IsInf(v.Upper(), 1) {
			uppers = append(uppers, i)
		}
	}

	nIneq := len(ineqRows) + len(uppers)
	nRows := len(eqRows) + nIneq
	nCols := n + nIneq
	if nRows == 0 {
		// No rows at all: either every variable is pinned by bounds to a
		// finite optimum or some improving direction runs away.
		return s.solveBoundsOnly(p, shift)
	}

	a := mat.NewDense(nRows, nCols, nil)
	b := make([]float64, nRows)
	c := make([]float64, nCols)

	negate := 1.0
	if p.Sense() == core.Maximize {
		negate = -1.0
	}
	for i := 0; i < n; i++ {
		v, _ := p.Variable(i)
		c[i] = negate * v.Obj()
	}

	// Equality rows first, then inequality rows with their slack columns.
	r := 0
	for _, er := range eqRows {
		con, _ := p.Constraint(er.ci)
		b[r] = con.RHS() - con.Activity(shift)
		for _, vi := range con.TermIndices() {
			coeff, _ := con.Coefficient(vi)
			a.Set(r, vi, coeff)
		}
		r++
	}
	slack := n
	for _, ir := range ineqRows {
		con, _ := p.Constraint(ir.ci)
		sign := 1.0
		if ir.sense == core.GE {
			// Σ a·x ≥ rhs  ⇔  −Σ a·x ≤ −rhs
			sign = -1.0
		}
		b[r] = sign * (con.RHS() - con.Activity(shift))
		for _, vi := range con.TermIndices() {
			coeff, _ := con.Coefficient(vi)
			a.Set(r, vi, sign*coeff)
		}
		a.Set(r, slack, 1)
		slack++
		r++
	}
	for _, vi := range uppers {
		v, _ := p.Variable(vi)
		b[r] = v.Upper() - v.Lower()
		a.Set(r, vi, 1)
		a.Set(r, slack, 1)
		slack++
		r++
	}

	_, x, err := gonumlp.Simplex(c, a, b, s.Tol, nil)
	switch {
	case err == nil:
		// fine
	case errors.Is(err, gonumlp.ErrInfeasible):
		return Result{Status: StatusInfeasible, Iterations: 1}, nil
	case errors.Is(err, gonumlp.ErrUnbounded):
		return Result{Status: StatusUnbounded, Iterations: 1}, nil
	default:
		return Result{}, err
	}

	// Strip slacks, undo the shift.
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = x[i] + shift[i]
	}

	return Result{
		Status:     StatusOptimal,
		Values:     values,
		Objective:  p.EvaluateObjective(values),
		Iterations: 1,
	}, nil
}

// solveBoundsOnly handles the degenerate no-row model: each variable sits at
// its favorable bound, and an infinite favorable bound on an improving
// variable means the objective is unbounded.
func (s Simplex) solveBoundsOnly(p *core.Problem, shift []float64) (Result, error) {
	n := p.NumVariables()
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := p.Variable(i)
		up := v.Obj() >= 0
		if p.Sense() == core.Minimize {
			up = !up
		}
		if v.Obj() == 0 {
			up = false
		}
		if up {
			if math.IsInf(v.Upper(), 1) {
				return Result{Status: StatusUnbounded, Iterations: 1}, nil
			}
			values[i] = v.Upper()
		} else {
			values[i] = shift[i]
		}
	}

	return Result{
		Status:     StatusOptimal,
		Values:     values,
		Objective:  p.EvaluateObjective(values),
		Iterations: 1,
	}, nil
}
