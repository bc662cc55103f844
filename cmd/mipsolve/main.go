// Command mipsolve loads a mixed-integer program from an MPS file, solves
// it with branch-and-bound, and prints the solution report to stdout.
//
// Usage:
//
//	mipsolve [flags] <model.mps>
//
// Exit codes: 0 when a solve completes (whatever its status short of
// Unknown), 1 on file or parse errors, 2 when the solver cannot classify
// the model.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/optimix/milp/bnb"
	"github.com/optimix/milp/core"
	"github.com/optimix/milp/lp"
	"github.com/optimix/milp/mps"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mipsolve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	maximize := fs.Bool("max", false, "treat the objective as a maximization (MPS files carry no sense)")
	iters := fs.Int("iters", bnb.DefaultMaxIterations, "node budget for the search")
	timeout := fs.Duration("timeout", 0, "wall-clock budget, e.g. 30s (0 = none)")
	verbose := fs.Bool("v", false, "trace the search to stderr")
	simplex := fs.Bool("simplex", false, "use the exact simplex relaxation instead of the repair heuristic")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: mipsolve [flags] <model.mps>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()

		return 1
	}

	problem, err := mps.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 1
	}
	if *maximize {
		problem.SetSense(core.Maximize)
	}

	opts := []bnb.Option{bnb.WithMaxIterations(*iters)}
	if *timeout > 0 {
		opts = append(opts, bnb.WithTimeLimit(*timeout))
	}
	if *verbose {
		fmt.Fprintln(os.Stderr, problem.Statistics())
		opts = append(opts, bnb.WithTrace(os.Stderr))
	}
	if *simplex {
		opts = append(opts, bnb.WithLP(lp.Simplex{}))
	}

	solution, err := bnb.Solve(context.Background(), problem, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return 2
	}
	fmt.Print(solution)
	if solution.Status() == core.Unknown {
		return 2
	}

	return 0
}
