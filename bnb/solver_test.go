// Package bnb_test exercises the branch-and-bound driver end to end.
// Focus:
//  1. The module's canonical scenarios (knapsack, crossed bounds, pure LP,
//     integer programs with and without branching).
//  2. Limit handling: node budget, wall clock, and context cancellation.
//  3. Determinism and incumbent monotonicity over a single solve.
//  4. Containment of relaxation errors.
package bnb_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/optimix/milp/bnb"
	"github.com/optimix/milp/core"
	"github.com/optimix/milp/lp"
)

// mustStatus asserts the solution status.
func mustStatus(t *testing.T, s *core.Solution, want core.Status) {
	t.Helper()
	if s.Status() != want {
		t.Fatalf("status = %v, want %v", s.Status(), want)
	}
}

// mustObjective asserts the solution objective within a tight tolerance.
func mustObjective(t *testing.T, s *core.Solution, want float64) {
	t.Helper()
	if math.Abs(s.ObjectiveValue()-want) > 1e-6 {
		t.Fatalf("objective = %g, want %g", s.ObjectiveValue(), want)
	}
}

// knapsack: maximize 5·x0 + 8·x1 s.t. 2·x0 + 4·x1 ≤ 10, x0, x1 ∈ {0,1}.
func knapsack(t *testing.T) *core.Problem {
	t.Helper()
	p := core.New("knapsack", core.Maximize)
	x0 := p.AddVariable("x0", core.Binary)
	x1 := p.AddVariable("x1", core.Binary)
	_ = p.SetObjectiveCoefficient(x0, 5)
	_ = p.SetObjectiveCoefficient(x1, 8)
	ci, _ := p.AddConstraint("cap", core.LE, 10)
	_ = p.SetCoefficient(ci, x0, 2)
	_ = p.SetCoefficient(ci, x1, 4)

	return p
}

// cornerMIP: maximize 3x + 2y s.t. x + y ≤ 4, x + 3y ≤ 6, x, y ≥ 0 integer.
// The optimum is x=4, y=0 with objective 12.
func cornerMIP(t *testing.T) *core.Problem {
	t.Helper()
	p := core.New("corner", core.Maximize)
	x := p.AddVariable("x", core.Integer)
	y := p.AddVariable("y", core.Integer)
	_ = p.SetBounds(x, 0, math.Inf(1))
	_ = p.SetBounds(y, 0, math.Inf(1))
	_ = p.SetObjectiveCoefficient(x, 3)
	_ = p.SetObjectiveCoefficient(y, 2)
	c1, _ := p.AddConstraint("c1", core.LE, 4)
	_ = p.SetCoefficient(c1, x, 1)
	_ = p.SetCoefficient(c1, y, 1)
	c2, _ := p.AddConstraint("c2", core.LE, 6)
	_ = p.SetCoefficient(c2, x, 1)
	_ = p.SetCoefficient(c2, y, 3)

	return p
}

// ration: maximize x + 2y s.t. x + y ≤ 10, x, y ≥ 0, with the given kinds.
func ration(t *testing.T, kind core.VarKind) *core.Problem {
	t.Helper()
	p := core.New("ration", core.Maximize)
	x := p.AddVariable("x", kind)
	y := p.AddVariable("y", kind)
	_ = p.SetBounds(x, 0, math.Inf(1))
	_ = p.SetBounds(y, 0, math.Inf(1))
	_ = p.SetObjectiveCoefficient(x, 1)
	_ = p.SetObjectiveCoefficient(y, 2)
	ci, _ := p.AddConstraint("cap", core.LE, 10)
	_ = p.SetCoefficient(ci, x, 1)
	_ = p.SetCoefficient(ci, y, 1)

	return p
}

func TestSolve_NilProblem(t *testing.T) {
	_, err := bnb.Solve(context.Background(), nil)
	if !errors.Is(err, bnb.ErrNilProblem) {
		t.Fatalf("err = %v, want ErrNilProblem", err)
	}
}

func TestSolve_Knapsack(t *testing.T) {
	s, err := bnb.Solve(context.Background(), knapsack(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 13)
	if got := s.Values(); got[0] != 1 || got[1] != 1 {
		t.Fatalf("values = %v, want [1 1]", got)
	}
	if s.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1 (root is already integral)", s.Iterations())
	}
}

func TestSolve_CrossedBounds_Infeasible(t *testing.T) {
	p := core.New("crossed", core.Minimize)
	x := p.AddVariable("x", core.Continuous)
	_ = p.SetBounds(x, 5, 3)
	_ = p.SetObjectiveCoefficient(x, 1)

	s, err := bnb.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Infeasible)
}

func TestSolve_PureLP_OneNode(t *testing.T) {
	// All-continuous: the search reduces to a single relaxation call.
	s, err := bnb.Solve(context.Background(), ration(t, core.Continuous))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	if s.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1", s.Iterations())
	}
	// With the default Repair relaxation the deterministic outcome is the
	// proportional split (5,5) = 15; the exact strategy reaches 20 below.
	mustObjective(t, s, 15)
}

func TestSolve_PureLP_SimplexStrategy(t *testing.T) {
	s, err := bnb.Solve(context.Background(), ration(t, core.Continuous), bnb.WithLP(lp.Simplex{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 20)
	if got := s.Values(); math.Abs(got[0]) > 1e-9 || math.Abs(got[1]-10) > 1e-9 {
		t.Fatalf("values = %v, want [0 10]", got)
	}
}

func TestSolve_IntegerRootAlreadyIntegral(t *testing.T) {
	// The integer variant solves in one node under both strategies: each
	// relaxation already lands on an integral point.
	s, err := bnb.Solve(context.Background(), ration(t, core.Integer))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 15)
	if s.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1", s.Iterations())
	}

	s, err = bnb.Solve(context.Background(), ration(t, core.Integer), bnb.WithLP(lp.Simplex{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 20)
	if s.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1", s.Iterations())
	}
}

func TestSolve_BranchingRequired(t *testing.T) {
	// The fractional root (1.5, 1.5) forces branching; the search walks
	// five nodes to prove x=4, y=0 with objective 12.
	s, err := bnb.Solve(context.Background(), cornerMIP(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 12)
	if got := s.Values(); got[0] != 4 || got[1] != 0 {
		t.Fatalf("values = %v, want [4 0]", got)
	}
	if s.Iterations() != 5 {
		t.Fatalf("iterations = %d, want 5", s.Iterations())
	}

	// The exact strategy hits the optimal vertex at the root.
	s, err = bnb.Solve(context.Background(), cornerMIP(t), bnb.WithLP(lp.Simplex{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 12)
}

func TestSolve_IterationLimit(t *testing.T) {
	// One node is only enough to branch; nothing integral has been seen.
	s, err := bnb.Solve(context.Background(), cornerMIP(t), bnb.WithMaxIterations(1))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Infeasible)
	if s.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1", s.Iterations())
	}

	// Two nodes reach the first incumbent (0,2) = 4, frontier still open.
	s, err = bnb.Solve(context.Background(), cornerMIP(t), bnb.WithMaxIterations(2))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.IterationLimit)
	mustObjective(t, s, 4)
}

func TestSolve_Unbounded(t *testing.T) {
	p := core.New("ray", core.Maximize)
	x := p.AddVariable("x", core.Integer)
	_ = p.SetBounds(x, 0, math.Inf(1))
	_ = p.SetObjectiveCoefficient(x, 1)

	s, err := bnb.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Unbounded)
}

func TestSolve_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := bnb.Solve(ctx, cornerMIP(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.TimeLimit)
	if s.Iterations() != 0 {
		t.Fatalf("iterations = %d, want 0 (canceled before the first node)", s.Iterations())
	}
}

func TestSolve_TimeLimit(t *testing.T) {
	s, err := bnb.Solve(context.Background(), cornerMIP(t), bnb.WithTimeLimit(time.Nanosecond))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.TimeLimit)
}

func TestSolve_FixedVariable(t *testing.T) {
	p := core.New("fixed", core.Minimize)
	x := p.AddVariable("x", core.Integer)
	_ = p.SetBounds(x, 3, 3)
	_ = p.SetObjectiveCoefficient(x, 1)

	s, err := bnb.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Optimal)
	mustObjective(t, s, 3)
}

func TestSolve_InputProblemUntouched(t *testing.T) {
	p := cornerMIP(t)
	if _, err := bnb.Solve(context.Background(), p); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	// Branching must have happened on clones only.
	x, _ := p.Variable(0)
	y, _ := p.Variable(1)
	if x.Lower() != 0 || !math.IsInf(x.Upper(), 1) || y.Lower() != 0 || !math.IsInf(y.Upper(), 1) {
		t.Fatal("solver mutated the input problem's bounds")
	}
}

func TestSolve_IncumbentMonotone(t *testing.T) {
	var seen []float64
	_, err := bnb.Solve(context.Background(), cornerMIP(t),
		bnb.WithIncumbentHook(func(obj float64, values []float64) {
			seen = append(seen, obj)
		}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(seen) == 0 {
		t.Fatal("no incumbent was ever reported")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("incumbent objective degraded: %v", seen)
		}
	}
}

func TestSolve_Deterministic(t *testing.T) {
	first, err := bnb.Solve(context.Background(), cornerMIP(t))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for run := 0; run < 3; run++ {
		again, err := bnb.Solve(context.Background(), cornerMIP(t))
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		if again.Status() != first.Status() ||
			again.ObjectiveValue() != first.ObjectiveValue() ||
			again.Iterations() != first.Iterations() {
			t.Fatalf("run %d diverged from the first solve", run)
		}
		a, b := again.Values(), first.Values()
		for i := range b {
			if a[i] != b[i] {
				t.Fatalf("run %d value %d diverged", run, i)
			}
		}
	}
}

// TestSolve_MatchesExhaustiveSearch cross-checks the search (under the
// exact relaxation, whose bounds are valid) against brute-force enumeration
// of the binary cube: no pruning step may discard the true optimum.
func TestSolve_MatchesExhaustiveSearch(t *testing.T) {
	type instance struct {
		name  string
		sense core.Sense
		obj   []float64
		coeff []float64
		csens core.ConstraintSense
		rhs   float64
	}
	cases := []instance{
		{"packing", core.Maximize, []float64{4, 5, 3}, []float64{2, 3, 1}, core.LE, 4},
		{"covering", core.Minimize, []float64{2, 1, -3}, []float64{1, 1, 1}, core.GE, 2},
		{"tight", core.Maximize, []float64{7, 1, 6, 4}, []float64{3, 1, 4, 2}, core.LE, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := core.New(tc.name, tc.sense)
			for i := range tc.obj {
				vi := p.AddVariable("b", core.Binary)
				_ = p.SetObjectiveCoefficient(vi, tc.obj[i])
			}
			ci, _ := p.AddConstraint("row", tc.csens, tc.rhs)
			for i := range tc.coeff {
				_ = p.SetCoefficient(ci, i, tc.coeff[i])
			}

			// Brute force over the cube.
			n := len(tc.obj)
			best := math.Inf(1)
			if tc.sense == core.Maximize {
				best = math.Inf(-1)
			}
			found := false
			point := make([]float64, n)
			for mask := 0; mask < 1<<n; mask++ {
				for i := 0; i < n; i++ {
					point[i] = float64((mask >> i) & 1)
				}
				if !p.IsFeasible(point) {
					continue
				}
				obj := p.EvaluateObjective(point)
				if tc.sense == core.Maximize && obj > best ||
					tc.sense == core.Minimize && obj < best {
					best = obj
				}
				found = true
			}

			s, err := bnb.Solve(context.Background(), p, bnb.WithLP(lp.Simplex{}))
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			if !found {
				mustStatus(t, s, core.Infeasible)

				return
			}
			mustStatus(t, s, core.Optimal)
			mustObjective(t, s, best)
			if !p.IsFeasible(s.Values()) {
				t.Fatal("reported optimum violates the model")
			}
		})
	}
}

// errSolver always fails; it stands in for a relaxation blowing up.
type errSolver struct{}

func (errSolver) SolveRelaxation(*core.Problem) (lp.Result, error) {
	return lp.Result{}, errors.New("boom")
}

func TestSolve_RelaxationErrorAtRoot_Unknown(t *testing.T) {
	s, err := bnb.Solve(context.Background(), knapsack(t), bnb.WithLP(errSolver{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	mustStatus(t, s, core.Unknown)
}

func TestSolve_SolutionReportsNamesAndFeasibility(t *testing.T) {
	p := knapsack(t)
	s, err := bnb.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !p.IsFeasible(s.Values()) {
		t.Fatal("reported optimum violates the model")
	}
	out := s.String()
	if want := "x0 = 1"; !strings.Contains(out, want) {
		t.Fatalf("String() missing %q:\n%s", want, out)
	}
}
