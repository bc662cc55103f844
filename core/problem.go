// File: problem.go
// Role: the Problem container and its construction / inspection methods.
// Concurrency:
//   - A Problem is not internally synchronized. Build it in one goroutine,
//     then treat it as read-only while solving; the solvers never mutate it.

package core

import (
	"fmt"
	"math"
	"sort"
)

// Variable is a decision variable owned by a Problem.
//
// It is identified by the zero-based index assigned at insertion and by a
// display name. Bounds are IEEE-754 doubles and may be ±Inf.
type Variable struct {
	name  string
	kind  VarKind
	lower float64
	upper float64
	obj   float64
}

// Name returns the display name.
func (v *Variable) Name() string { return v.name }

// Kind returns the variable kind.
func (v *Variable) Kind() VarKind { return v.kind }

// Lower returns the lower bound.
func (v *Variable) Lower() float64 { return v.lower }

// Upper returns the upper bound.
func (v *Variable) Upper() float64 { return v.upper }

// Obj returns the coefficient of this variable in the objective.
func (v *Variable) Obj() float64 { return v.obj }

// Fixed reports whether the bounds pin the variable to a single value.
func (v *Variable) Fixed() bool { return math.Abs(v.lower-v.upper) < FeasibilityTol }

// Constraint is a sparse linear row: Σ coeff·x over its terms, related to
// the right-hand side by its sense.
type Constraint struct {
	name  string
	sense ConstraintSense
	rhs   float64
	terms map[int]float64 // variable index → nonzero coefficient
}

// Name returns the row name.
func (c *Constraint) Name() string { return c.name }

// Sense returns the row relation.
func (c *Constraint) Sense() ConstraintSense { return c.sense }

// RHS returns the right-hand side.
func (c *Constraint) RHS() float64 { return c.rhs }

// NumTerms returns the number of stored coefficients.
func (c *Constraint) NumTerms() int { return len(c.terms) }

// Coefficient returns the coefficient of variable i and whether the row
// references it at all.
func (c *Constraint) Coefficient(i int) (float64, bool) {
	coeff, ok := c.terms[i]

	return coeff, ok
}

// TermIndices returns the referenced variable indices in ascending order.
// Every consumer iterates a row through this method, which is what makes
// repair and search results reproducible across runs.
func (c *Constraint) TermIndices() []int {
	idx := make([]int, 0, len(c.terms))
	for i := range c.terms {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	return idx
}

// Activity computes Σ coeff·values[i] over the row's terms. Indices beyond
// len(values) contribute nothing.
func (c *Constraint) Activity(values []float64) float64 {
	var lhs float64
	for _, i := range c.TermIndices() {
		if i < len(values) {
			lhs += c.terms[i] * values[i]
		}
	}

	return lhs
}

// Violation returns how far the row is from satisfaction at the given point:
// zero when satisfied within FeasibilityTol, otherwise the positive amount by
// which the relation is broken.
func (c *Constraint) Violation(values []float64) float64 {
	lhs := c.Activity(values)
	switch c.sense {
	case LE:
		if lhs > c.rhs+FeasibilityTol {
			return lhs - c.rhs
		}
	case GE:
		if lhs < c.rhs-FeasibilityTol {
			return c.rhs - lhs
		}
	case EQ:
		if d := math.Abs(lhs - c.rhs); d > FeasibilityTol {
			return d
		}
	}

	return 0
}

// Satisfied reports whether the row holds at the given point within
// FeasibilityTol.
func (c *Constraint) Satisfied(values []float64) bool { return c.Violation(values) == 0 }

// Problem is the container for one mixed-integer linear program.
type Problem struct {
	name  string
	sense Sense
	vars  []Variable
	cons  []Constraint
}

// New creates an empty Problem with the given display name and objective
// sense.
func New(name string, sense Sense) *Problem {
	return &Problem{name: name, sense: sense}
}

// Name returns the problem name.
func (p *Problem) Name() string { return p.name }

// Sense returns the objective sense.
func (p *Problem) Sense() Sense { return p.sense }

// SetSense overrides the objective sense. MPS files do not encode a sense,
// so callers loading a maximization model flip it here after parsing.
func (p *Problem) SetSense(s Sense) { p.sense = s }

// NumVariables returns the number of variables.
func (p *Problem) NumVariables() int { return len(p.vars) }

// NumConstraints returns the number of constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// AddVariable appends a variable and returns its index. Continuous and
// Integer variables start with bounds (−∞, +∞) and objective coefficient 0;
// Binary variables start with bounds [0, 1].
func (p *Problem) AddVariable(name string, kind VarKind) int {
	v := Variable{
		name:  name,
		kind:  kind,
		lower: math.Inf(-1),
		upper: math.Inf(1),
	}
	if kind == Binary {
		v.lower, v.upper = 0, 1
	}
	p.vars = append(p.vars, v)

	return len(p.vars) - 1
}

// Variable returns a read view of variable i.
// Mutate variables only through the Problem setters.
func (p *Problem) Variable(i int) (*Variable, error) {
	if i < 0 || i >= len(p.vars) {
		return nil, ErrIndexRange
	}

	return &p.vars[i], nil
}

// SetBounds replaces the bounds of variable i. NaN is rejected with ErrNaN.
// For Binary variables the pair is clamped into [0, 1] so the kind invariant
// survives any caller input. Bound ordering (lower ≤ upper) is deliberately
// not enforced here; the relaxation solver screens for crossed bounds and
// reports Infeasible.
func (p *Problem) SetBounds(i int, lower, upper float64) error {
	if i < 0 || i >= len(p.vars) {
		return ErrIndexRange
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return ErrNaN
	}
	v := &p.vars[i]
	if v.kind == Binary {
		lower = math.Max(lower, 0)
		upper = math.Min(upper, 1)
	}
	v.lower, v.upper = lower, upper

	return nil
}

// TightenBounds intersects the bounds of variable i with [lower, upper].
// The branching step relies on the intersection semantics: a child node can
// only shrink the box it inherited, never widen it.
func (p *Problem) TightenBounds(i int, lower, upper float64) error {
	if i < 0 || i >= len(p.vars) {
		return ErrIndexRange
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return ErrNaN
	}
	v := &p.vars[i]
	v.lower = math.Max(v.lower, lower)
	v.upper = math.Min(v.upper, upper)

	return nil
}

// SetKind changes the kind of variable i. Switching to Binary forces the
// bounds to [0, 1], matching the MPS BV directive.
func (p *Problem) SetKind(i int, kind VarKind) error {
	if i < 0 || i >= len(p.vars) {
		return ErrIndexRange
	}
	v := &p.vars[i]
	v.kind = kind
	if kind == Binary {
		v.lower, v.upper = 0, 1
	}

	return nil
}

// SetObjectiveCoefficient sets the objective coefficient of variable i.
func (p *Problem) SetObjectiveCoefficient(i int, coeff float64) error {
	if i < 0 || i >= len(p.vars) {
		return ErrIndexRange
	}
	if math.IsNaN(coeff) {
		return ErrNaN
	}
	p.vars[i].obj = coeff

	return nil
}

// AddConstraint appends an empty row with the given name, sense, and
// right-hand side, returning its index. Coefficients are attached afterwards
// with SetCoefficient.
func (p *Problem) AddConstraint(name string, sense ConstraintSense, rhs float64) (int, error) {
	if math.IsNaN(rhs) {
		return 0, ErrNaN
	}
	p.cons = append(p.cons, Constraint{
		name:  name,
		sense: sense,
		rhs:   rhs,
		terms: make(map[int]float64),
	})

	return len(p.cons) - 1, nil
}

// Constraint returns a read view of row ci.
// Mutate rows only through the Problem setters.
func (p *Problem) Constraint(ci int) (*Constraint, error) {
	if ci < 0 || ci >= len(p.cons) {
		return nil, ErrIndexRange
	}

	return &p.cons[ci], nil
}

// SetRHS replaces the right-hand side of row ci. The MPS reader declares
// rows with rhs 0 and fills the real values in from the RHS section.
func (p *Problem) SetRHS(ci int, rhs float64) error {
	if ci < 0 || ci >= len(p.cons) {
		return ErrIndexRange
	}
	if math.IsNaN(rhs) {
		return ErrNaN
	}
	p.cons[ci].rhs = rhs

	return nil
}

// SetCoefficient sets the coefficient of variable vi in row ci. Setting an
// exact zero removes the term, keeping the row sparse.
func (p *Problem) SetCoefficient(ci, vi int, coeff float64) error {
	if ci < 0 || ci >= len(p.cons) {
		return ErrIndexRange
	}
	if vi < 0 || vi >= len(p.vars) {
		return ErrIndexRange
	}
	if math.IsNaN(coeff) {
		return ErrNaN
	}
	if coeff == 0 {
		delete(p.cons[ci].terms, vi)

		return nil
	}
	p.cons[ci].terms[vi] = coeff

	return nil
}

// EvaluateObjective computes Σ obj_i·values[i].
func (p *Problem) EvaluateObjective(values []float64) float64 {
	var total float64
	n := len(p.vars)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		total += p.vars[i].obj * values[i]
	}

	return total
}

// IsFeasible reports whether values respects every bound and every
// constraint within FeasibilityTol. A vector of the wrong length is never
// feasible.
func (p *Problem) IsFeasible(values []float64) bool {
	if len(values) != len(p.vars) {
		return false
	}
	for i := range p.vars {
		v := &p.vars[i]
		if values[i] < v.lower-FeasibilityTol || values[i] > v.upper+FeasibilityTol {
			return false
		}
	}
	for ci := range p.cons {
		if !p.cons[ci].Satisfied(values) {
			return false
		}
	}

	return true
}

// Clone returns a deep value copy: the clone owns fresh variable and
// constraint storage, including fresh term maps. The search frontier clones
// the parent problem per node, so nothing here may alias the receiver.
func (p *Problem) Clone() *Problem {
	clone := &Problem{
		name:  p.name,
		sense: p.sense,
		vars:  make([]Variable, len(p.vars)),
		cons:  make([]Constraint, len(p.cons)),
	}
	copy(clone.vars, p.vars)
	for ci := range p.cons {
		src := &p.cons[ci]
		terms := make(map[int]float64, len(src.terms))
		for i, coeff := range src.terms {
			terms[i] = coeff
		}
		clone.cons[ci] = Constraint{
			name:  src.name,
			sense: src.sense,
			rhs:   src.rhs,
			terms: terms,
		}
	}

	return clone
}

// Statistics returns a short human-readable summary of the model shape.
func (p *Problem) Statistics() string {
	var nCont, nInt, nBin int
	for i := range p.vars {
		switch p.vars[i].kind {
		case Integer:
			nInt++
		case Binary:
			nBin++
		default:
			nCont++
		}
	}

	return fmt.Sprintf("%s: %s, %d variables (%d continuous, %d integer, %d binary), %d constraints",
		p.name, p.sense, len(p.vars), nCont, nInt, nBin, len(p.cons))
}
