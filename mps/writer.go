// File: writer.go
// Role: emit the supported MPS subset so a written Problem reparses into a
//       solve-equivalent model.

package mps

import (
	"fmt"
	"io"
	"math"

	"github.com/optimix/milp/core"
)

// objRowName is the free-row name the writer assigns to the objective.
const objRowName = "OBJ"

// Write emits p as free-form MPS. The format carries no objective sense;
// callers reloading a maximization model re-apply it with SetSense.
//
// Every variable appears in COLUMNS (with an explicit zero objective entry
// when it has no other coefficient), integer runs are wrapped in MARKER
// INTORG/INTEND pairs, binaries get a BV bound line, and bounds differing
// from the [0, +∞) default get UP/LO/FX/MI/FR lines.
func Write(w io.Writer, p *core.Problem) error {
	if p == nil {
		return ErrNilProblem
	}

	name := p.Name()
	if name == "" {
		name = "NONAME"
	}
	fmt.Fprintf(w, "NAME          %s\n", name)

	fmt.Fprintln(w, "ROWS")
	fmt.Fprintf(w, " N  %s\n", objRowName)
	for ci := 0; ci < p.NumConstraints(); ci++ {
		c, _ := p.Constraint(ci)
		var letter string
		switch c.Sense() {
		case core.GE:
			letter = "G"
		case core.EQ:
			letter = "E"
		default:
			letter = "L"
		}
		fmt.Fprintf(w, " %s  %s\n", letter, rowName(c, ci))
	}

	// Column-major pass: per variable, the objective entry followed by its
	// constraint entries in row order.
	fmt.Fprintln(w, "COLUMNS")
	inInteger := false
	markers := 0
	for vi := 0; vi < p.NumVariables(); vi++ {
		v, _ := p.Variable(vi)
		if v.Kind().IsIntegral() != inInteger {
			if inInteger {
				fmt.Fprintf(w, "    MARKER%d    'MARKER'    'INTEND'\n", markers)
			} else {
				fmt.Fprintf(w, "    MARKER%d    'MARKER'    'INTORG'\n", markers)
			}
			markers++
			inInteger = !inInteger
		}

		wrote := false
		if v.Obj() != 0 {
			fmt.Fprintf(w, "    %-10s %-10s %.12g\n", colName(v, vi), objRowName, v.Obj())
			wrote = true
		}
		for ci := 0; ci < p.NumConstraints(); ci++ {
			c, _ := p.Constraint(ci)
			coeff, ok := c.Coefficient(vi)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "    %-10s %-10s %.12g\n", colName(v, vi), rowName(c, ci), coeff)
			wrote = true
		}
		if !wrote {
			// Keep the variable alive across a round trip.
			fmt.Fprintf(w, "    %-10s %-10s 0\n", colName(v, vi), objRowName)
		}
	}
	if inInteger {
		fmt.Fprintf(w, "    MARKER%d    'MARKER'    'INTEND'\n", markers)
	}

	fmt.Fprintln(w, "RHS")
	for ci := 0; ci < p.NumConstraints(); ci++ {
		c, _ := p.Constraint(ci)
		if c.RHS() == 0 {
			continue
		}
		fmt.Fprintf(w, "    RHS        %-10s %.12g\n", rowName(c, ci), c.RHS())
	}

	fmt.Fprintln(w, "BOUNDS")
	for vi := 0; vi < p.NumVariables(); vi++ {
		v, _ := p.Variable(vi)
		writeBounds(w, v, vi)
	}

	fmt.Fprintln(w, "ENDATA")

	return nil
}

// writeBounds emits the bound lines for one variable, skipping the MPS
// default of [0, +∞).
func writeBounds(w io.Writer, v *core.Variable, vi int) {
	name := colName(v, vi)
	if v.Kind() == core.Binary {
		fmt.Fprintf(w, " BV BND        %s\n", name)

		return
	}

	lo, up := v.Lower(), v.Upper()
	if lo == 0 && math.IsInf(up, 1) {
		return
	}
	if lo == up {
		fmt.Fprintf(w, " FX BND        %-10s %.12g\n", name, lo)

		return
	}
	if math.IsInf(lo, -1) && math.IsInf(up, 1) {
		fmt.Fprintf(w, " FR BND        %s\n", name)

		return
	}
	if math.IsInf(lo, -1) {
		fmt.Fprintf(w, " MI BND        %s\n", name)
	} else if lo != 0 {
		fmt.Fprintf(w, " LO BND        %-10s %.12g\n", name, lo)
	}
	if !math.IsInf(up, 1) {
		fmt.Fprintf(w, " UP BND        %-10s %.12g\n", name, up)
	}
}

// rowName returns the row's display name, falling back to a positional name
// so unnamed models still round-trip.
func rowName(c *core.Constraint, ci int) string {
	if c.Name() != "" {
		return c.Name()
	}

	return fmt.Sprintf("R%d", ci)
}

// colName returns the variable's display name with the same fallback.
func colName(v *core.Variable, vi int) string {
	if v.Name() != "" {
		return v.Name()
	}

	return fmt.Sprintf("C%d", vi)
}
