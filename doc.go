// Package milp is a small, pure-Go solver for mixed-integer linear
// programs: optimize a linear objective over bounded real variables, a
// designated subset of which must take integer values.
//
// 🚀 What is in the box?
//
//	A deterministic, dependency-light optimization core:
//		• core — Problem, Variable, Constraint, and Solution types with
//		  validation helpers
//		• mps  — streaming reader and writer for the MPS text format
//		• lp   — linear relaxation strategies: a bound-driven repair
//		  heuristic and an exact simplex backed by gonum
//		• bnb  — the branch-and-bound driver tying it all together
//		• cmd/mipsolve — a command-line front end for MPS files
//
// ✨ Why choose it?
//
//   - Deterministic – equal inputs give byte-equal solutions, every
//     iteration order is pinned
//   - Honest statuses – infeasibility, unboundedness, and limit hits are
//     results, never errors
//   - Pure Go – no cgo, no external solver binaries
//   - Pluggable – any lp.Solver can stand in for the relaxation
//
// Quick example:
//
//	problem := core.New("cargo", core.Maximize)
//	a := problem.AddVariable("crateA", core.Binary)
//	b := problem.AddVariable("crateB", core.Binary)
//	_ = problem.SetObjectiveCoefficient(a, 5)
//	_ = problem.SetObjectiveCoefficient(b, 8)
//	row, _ := problem.AddConstraint("lift", core.LE, 10)
//	_ = problem.SetCoefficient(row, a, 2)
//	_ = problem.SetCoefficient(row, b, 4)
//
//	solution, _ := bnb.Solve(ctx, problem)
//	fmt.Print(solution) // Optimal, objective 13
//
// See DESIGN.md for the reasoning behind the architecture.
package milp
