// Package puzzle provides a model for standard 9x9 Sudoku grids
// and a solver that fills them by logical deduction alone.
//
// In this package, grids are made of squares which are either
// empty (represented with a 0 value) or hold a value between 1
// and 9.  The squares are designated by indices that start at 1
// and increase left-to-right, top-to-bottom (English reading
// order).
//
// For each empty square in a grid, the implementation maintains
// the set of values the square can still be assigned without
// conflicting with other squares.  The groups of squares that
// constrain each other are the 9 rows, the 9 columns, and the 9
// non-overlapping 3x3 blocks; every square belongs to exactly
// one group of each kind.
//
// The solver applies only two rules, the ones human solvers
// reach for first: assign a square whose candidate set has
// shrunk to a single value (a naked single), and assign a value
// that has only one remaining home in some group (a hidden
// single).  It repeats them until the grid is full, until
// neither rule can fire, or until the grid is caught in a
// contradiction.  It never guesses, so it can legitimately stop
// with empty squares left; that outcome is reported as a
// stalled grid rather than an error.  Every assignment the
// solver makes is reported as a Deduction, so a caller can
// narrate the whole solve to a human.
package puzzle

import (
	"fmt"
)

// A GroupID names a row, column, or block.  The numbering for
// each kind of group is 1-based: rows top to bottom, columns
// left to right, blocks in reading order of their top-left
// squares.
type GroupID struct {
	Gtype string `json:"gtype"`
	Index int    `json:"index"`
}

// Group IDs implement Stringer
func (gid GroupID) String() string {
	if gid.Gtype == "" {
		return fmt.Sprintf("<group> %d", gid.Index)
	}
	return fmt.Sprintf("%s %d", gid.Gtype, gid.Index)
}

// Gtype (group type) constants.
const (
	GtypeRow   = "row"
	GtypeCol   = "column"
	GtypeBlock = "block"
)

// A Rule names one of the deduction rules the solver applies.
type Rule string

// The two rules this solver knows.
const (
	NakedSingle  Rule = "naked-single"
	HiddenSingle Rule = "hidden-single"
)

// A Status is the terminal state of a solve.
type Status string

// Solve outcomes.  Stalled is not an error: it means the two
// deduction rules ran out of forced squares before the grid was
// full.
const (
	Solved        Status = "solved"
	Stalled       Status = "stalled"
	Contradiction Status = "contradiction"
)

// A Deduction records one forced assignment: which square got
// which value, which rule forced it, and (for hidden singles)
// the group that needed the value.  Deductions are purely
// observational; they exist so solves can be explained to
// humans, and their order is fixed by the solver's scan order.
type Deduction struct {
	Rule  Rule    `json:"rule"`
	Group GroupID `json:"group,omitempty"`
	Index int     `json:"index"`
	Value int     `json:"value"`
}

// A Reporter receives each Deduction as the solver makes it.
// The solver itself never prints anything; narration is
// entirely the Reporter's business, which keeps the engine
// usable headless.
type Reporter interface {
	Report(Deduction)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Deduction)

// Report calls f(d).
func (f ReporterFunc) Report(d Deduction) { f(d) }

// A Result is everything a solve produces: the final values,
// the terminal status, the ordered deduction log, the final
// candidate sets (for inspection and testing), and the
// structured Errors describing any contradiction found.
//
// When the status is Contradiction, Values and Candidates hold
// the last consistent state of the grid, from before the
// assignment that exposed the contradiction.
type Result struct {
	Values     []int       `json:"values"`
	Status     Status      `json:"status"`
	Deductions []Deduction `json:"deductions,omitempty"`
	Candidates [][]int     `json:"candidates,omitempty"`
	Errors     []Error     `json:"errors,omitempty"`
}

// Solve runs the deduction loop over an 81-value grid given in
// reading order (0 for an empty square).  The input slice is
// copied, never modified.  Any reporters are called with each
// deduction, in order.
//
// Solve returns an error only for invalid input: a grid that
// isn't 81 values long, or a value outside 0 through 9.  A grid
// whose givens conflict is valid input; it produces a Result
// with status Contradiction.
func Solve(values []int, reporters ...Reporter) (*Result, error) {
	p, err := create(values)
	if err != nil {
		return nil, err
	}
	return p.solve(reporters), nil
}
