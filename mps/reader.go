// File: reader.go
// Role: streaming MPS reader: one line in memory at a time, a section state
//       machine over whitespace-separated fields.

package mps

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/optimix/milp/core"
)

// section identifiers for the reader state machine.
const (
	secNone = iota
	secRows
	secColumns
	secRHS
	secRanges
	secBounds
)

// reader accumulates one file's state while scanning.
type reader struct {
	p       *core.Problem
	name    string
	section int
	line    int

	objRow  string
	haveObj bool
	rowIdx  map[string]int  // declared constraint rows
	ignored map[string]bool // N rows after the first; referenced silently
	colIdx  map[string]int
	intMode bool

	rhsSet   string
	boundSet string

	sawRows    bool
	sawColumns bool
	sawEndata  bool
}

// Parse reads an MPS stream and produces a Problem with sense Minimize.
func Parse(r io.Reader) (*core.Problem, error) {
	rd := reader{
		rowIdx:  make(map[string]int),
		ignored: make(map[string]bool),
		colIdx:  make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		rd.line++
		raw := scanner.Text()
		if strings.HasPrefix(raw, "*") {
			continue
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		done, err := rd.consume(raw, fields)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mps: %w", err)
	}

	switch {
	case !rd.sawRows:
		return nil, fmt.Errorf("%w: ROWS", ErrMissingSection)
	case !rd.sawColumns:
		return nil, fmt.Errorf("%w: COLUMNS", ErrMissingSection)
	case !rd.sawEndata:
		return nil, fmt.Errorf("%w: ENDATA", ErrMissingSection)
	}

	return rd.p, nil
}

// ParseFile opens path and parses it, tagging every failure with the file
// name so CLI diagnostics carry both file and line.
func ParseFile(path string) (*core.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mps: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// consume dispatches one non-comment line. It reports true at ENDATA.
func (rd *reader) consume(raw string, fields []string) (bool, error) {
	// Section keywords first. A keyword line switches state; everything
	// else is data for the current section. Only NAME carries a field after
	// its keyword, so a longer line such as an RHS record whose set is named
	// "RHS" is data, not a header.
	keyword := strings.ToUpper(fields[0])
	if keyword != "NAME" && len(fields) > 1 {
		keyword = ""
	}
	switch keyword {
	case "NAME":
		if len(fields) > 1 {
			rd.name = fields[1]
		}
		rd.section = secNone

		return false, nil
	case "ROWS":
		rd.sawRows = true
		rd.ensureProblem()
		rd.section = secRows

		return false, nil
	case "COLUMNS":
		if !rd.sawRows {
			return false, &SyntaxError{Line: rd.line, Msg: "COLUMNS before ROWS"}
		}
		rd.sawColumns = true
		rd.section = secColumns

		return false, nil
	case "RHS":
		rd.section = secRHS

		return false, nil
	case "RANGES":
		rd.section = secRanges

		return false, nil
	case "BOUNDS":
		rd.section = secBounds

		return false, nil
	case "ENDATA":
		rd.sawEndata = true
		rd.ensureProblem()

		return true, nil
	}

	switch rd.section {
	case secRows:
		return false, rd.rowLine(fields)
	case secColumns:
		return false, rd.columnLine(fields)
	case secRHS:
		return false, rd.rhsLine(fields)
	case secRanges:
		// The range semantics (sense × sign → implied second inequality)
		// are not implemented; reject rather than misread.
		return false, &UnsupportedError{Line: rd.line, Feature: "RANGES section"}
	case secBounds:
		return false, rd.boundLine(fields)
	default:
		return false, &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("data outside any section: %q", strings.TrimSpace(raw))}
	}
}

// ensureProblem creates the Problem once the header region is behind us.
func (rd *reader) ensureProblem() {
	if rd.p == nil {
		rd.p = core.New(rd.name, core.Minimize)
	}
}

// rowLine handles one ROWS record: a sense letter and a row name.
func (rd *reader) rowLine(fields []string) error {
	if len(fields) != 2 {
		return &SyntaxError{Line: rd.line, Msg: "ROWS record needs a sense letter and a name"}
	}
	name := fields[1]
	switch strings.ToUpper(fields[0]) {
	case "N":
		if rd.haveObj {
			// Later free rows are read and dropped.
			rd.ignored[name] = true

			return nil
		}
		rd.objRow = name
		rd.haveObj = true
	case "L":
		ci, _ := rd.p.AddConstraint(name, core.LE, 0)
		rd.rowIdx[name] = ci
	case "G":
		ci, _ := rd.p.AddConstraint(name, core.GE, 0)
		rd.rowIdx[name] = ci
	case "E":
		ci, _ := rd.p.AddConstraint(name, core.EQ, 0)
		rd.rowIdx[name] = ci
	default:
		return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("unknown row sense %q", fields[0])}
	}

	return nil
}

// columnLine handles one COLUMNS record: a MARKER toggle or a variable with
// up to two (row, value) pairs.
func (rd *reader) columnLine(fields []string) error {
	if len(fields) >= 3 && fields[1] == "'MARKER'" {
		switch fields[2] {
		case "'INTORG'":
			rd.intMode = true
		case "'INTEND'":
			rd.intMode = false
		default:
			return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("unknown marker %q", fields[2])}
		}

		return nil
	}
	if len(fields) != 3 && len(fields) != 5 {
		return &SyntaxError{Line: rd.line, Msg: "COLUMNS record needs one or two row/value pairs"}
	}

	name := fields[0]
	vi, ok := rd.colIdx[name]
	if !ok {
		kind := core.Continuous
		if rd.intMode {
			kind = core.Integer
		}
		vi = rd.p.AddVariable(name, kind)
		// Classical MPS default bounds.
		_ = rd.p.SetBounds(vi, 0, math.Inf(1))
		rd.colIdx[name] = vi
	}

	for i := 1; i+1 < len(fields); i += 2 {
		row := fields[i]
		val, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("bad numeric value %q", fields[i+1])}
		}
		switch {
		case rd.haveObj && row == rd.objRow:
			_ = rd.p.SetObjectiveCoefficient(vi, val)
		case rd.ignored[row]:
			// coefficient on a dropped free row
		default:
			ci, ok := rd.rowIdx[row]
			if !ok {
				return &UnknownRowError{Line: rd.line, Row: row}
			}
			_ = rd.p.SetCoefficient(ci, vi, val)
		}
	}

	return nil
}

// rhsLine handles one RHS record: a set name and up to two (row, value)
// pairs. Only the first set encountered is honored.
func (rd *reader) rhsLine(fields []string) error {
	if len(fields) != 3 && len(fields) != 5 {
		return &SyntaxError{Line: rd.line, Msg: "RHS record needs one or two row/value pairs"}
	}
	if rd.rhsSet == "" {
		rd.rhsSet = fields[0]
	}
	if fields[0] != rd.rhsSet {
		return nil
	}

	for i := 1; i+1 < len(fields); i += 2 {
		row := fields[i]
		val, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("bad numeric value %q", fields[i+1])}
		}
		if (rd.haveObj && row == rd.objRow) || rd.ignored[row] {
			// An RHS on the objective is a constant offset; dropped.
			continue
		}
		ci, ok := rd.rowIdx[row]
		if !ok {
			return &UnknownRowError{Line: rd.line, Row: row}
		}
		_ = rd.p.SetRHS(ci, val)
	}

	return nil
}

// boundLine handles one BOUNDS record. Only the first bound set is honored.
func (rd *reader) boundLine(fields []string) error {
	if len(fields) < 3 {
		return &SyntaxError{Line: rd.line, Msg: "BOUNDS record needs a type, a set name, and a column"}
	}
	btype := strings.ToUpper(fields[0])
	if rd.boundSet == "" {
		rd.boundSet = fields[1]
	}
	if fields[1] != rd.boundSet {
		return nil
	}

	vi, ok := rd.colIdx[fields[2]]
	if !ok {
		return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("unknown column %q", fields[2])}
	}
	v, _ := rd.p.Variable(vi)

	needsValue := map[string]bool{"UP": true, "LO": true, "FX": true, "LI": true, "UI": true}
	var val float64
	if needsValue[btype] {
		if len(fields) < 4 {
			return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("bound type %s needs a value", btype)}
		}
		var err error
		val, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("bad numeric value %q", fields[3])}
		}
	}

	switch btype {
	case "UP":
		return rd.p.SetBounds(vi, v.Lower(), val)
	case "LO":
		return rd.p.SetBounds(vi, val, v.Upper())
	case "FX":
		return rd.p.SetBounds(vi, val, val)
	case "FR":
		return rd.p.SetBounds(vi, math.Inf(-1), math.Inf(1))
	case "MI":
		return rd.p.SetBounds(vi, math.Inf(-1), v.Upper())
	case "PL":
		return rd.p.SetBounds(vi, v.Lower(), math.Inf(1))
	case "BV":
		return rd.p.SetKind(vi, core.Binary)
	case "LI":
		if err := rd.p.SetKind(vi, core.Integer); err != nil {
			return err
		}

		return rd.p.SetBounds(vi, val, v.Upper())
	case "UI":
		if err := rd.p.SetKind(vi, core.Integer); err != nil {
			return err
		}

		return rd.p.SetBounds(vi, v.Lower(), val)
	default:
		return &SyntaxError{Line: rd.line, Msg: fmt.Sprintf("unknown bound type %q", fields[0])}
	}
}
