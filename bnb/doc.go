// Package bnb drives the branch-and-bound search over mixed-integer linear
// programs.
//
// Solve explores a LIFO tree of subproblems obtained by tightening bounds on
// fractional integer variables, asks an lp.Solver for each node's relaxation
// bound, maintains the best integer-feasible incumbent, and packages the
// outcome as a core.Solution.
//
// Rationale (succinct):
//  1. Depth-first LIFO frontier keeps memory proportional to depth and finds
//     incumbents early, which is what powers the bound pruning.
//  2. Each node owns a value-clone of its parent's Problem with exactly one
//     variable's bounds tightened; the caller's Problem is never mutated and
//     nodes never alias each other.
//  3. Branching picks the integer variable with the largest fractional part,
//     ties to the smaller index; the Down child (upper ← ⌊x⌋) is explored
//     before the Up child (lower ← ⌈x⌉). Together with the lp package's
//     fixed iteration orders this makes two runs on equal inputs
//     byte-equal in status, objective, rounded values, and node count.
//  4. Limits and cancellation are polled at node boundaries only: the node
//     budget, the optional wall-clock budget, and ctx.Done() all take effect
//     between nodes, returning the current incumbent.
//  5. Relaxation errors are contained: a failing node is pruned and the
//     search continues; only a root that cannot be classified at all yields
//     status Unknown.
//
// Complexity:
//   - Worst case exponential in the number of integer variables (exact
//     search); practical speed comes from pruning.
//   - Per node: one relaxation solve + O(V) integrality scan + O(problem)
//     clone per child.
//
// Outcomes are never errors: Infeasible, Unbounded, TimeLimit,
// IterationLimit, and Unknown are all core.Status values on the returned
// Solution. The only Solve error is a nil Problem.
package bnb
