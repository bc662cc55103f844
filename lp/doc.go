// SPDX-License-Identifier: MIT
// Package lp solves the linear relaxation of a Problem: variable kinds are
// ignored and every variable ranges continuously within its bounds.
//
// Two strategies implement the Solver capability consumed by the
// branch-and-bound driver:
//
//   - Repair — the default bound-driven heuristic. Variables start at the
//     bound favorable to the objective, then a short proportional repair
//     loop redistributes constraint violations. It is not a simplex: it can
//     misreport tightly coupled feasible systems as infeasible, and it
//     detects unboundedness only for an objective-improving variable that no
//     constraint touches. In exchange it is allocation-light, deterministic,
//     and fast enough to run at every search node.
//
//   - Simplex — an exact strategy backed by gonum's dense simplex
//     (gonum.org/v1/gonum/optimize/convex/lp). It requires every variable to
//     carry a finite lower bound; the problem is shifted so x ≥ 0, finite
//     upper bounds and inequality rows become slack rows, and the slack
//     components are stripped from the returned vector.
//
// Determinism policy (both strategies): constraints are visited in insertion
// order and a row's terms in ascending variable index, so equal inputs give
// byte-equal results.
//
// Outcomes are statuses on Result, never errors: StatusOptimal,
// StatusInfeasible, StatusUnbounded. Errors are reserved for misuse (nil
// problem) and for inputs a strategy cannot express.
package lp
