package puzzle

/*

Grid representation

*/

import (
	"math/bits"
)

/*

Value sets

*/

// A valueSet is a set of cell values 1-9, represented as a
// bitmask (bit v set means value v is in the set).  Keeping the
// candidate sets as one machine word per square makes peer
// elimination a single AND and keeps the whole candidate state
// in a flat array.
type valueSet uint16

// fullSet has bits 1 through SideLength set.
const fullSet valueSet = (1<<(SideLength+1) - 1) &^ 1

// singleton returns the set containing only v.
func singleton(v int) valueSet {
	return 1 << uint(v)
}

// has reports whether v is in the set.
func (s valueSet) has(v int) bool {
	return s&singleton(v) != 0
}

// remove takes v out of the set, reporting whether it was there.
func (s *valueSet) remove(v int) bool {
	if !s.has(v) {
		return false
	}
	*s &^= singleton(v)
	return true
}

// count returns the number of values in the set.
func (s valueSet) count() int {
	return bits.OnesCount16(uint16(s))
}

// single returns the only value in the set, if there is exactly
// one.
func (s valueSet) single() (int, bool) {
	if s.count() != 1 {
		return 0, false
	}
	return bits.TrailingZeros16(uint16(s)), true
}

// values returns the members of the set in ascending order,
// nil for the empty set.
func (s valueSet) values() []int {
	if s == 0 {
		return nil
	}
	out := make([]int, 0, s.count())
	for v := 1; v <= SideLength; v++ {
		if s.has(v) {
			out = append(out, v)
		}
	}
	return out
}

/*

Grids

*/

// A grid holds the mutable state of one solve: the assigned
// value of each square (0 for empty) and the candidate set of
// each square.  Both arrays are 1-based to match square
// indices.  Once a square is assigned, its candidate set is the
// singleton of its value and stays that way.
//
// A grid is owned by the solve that created it; nothing here is
// safe for concurrent use.
type grid struct {
	values []int
	cands  []valueSet
}

// create validates caller-supplied values and builds a grid
// from them.  The input is copied, so later mutation of the
// grid leaves the caller's slice alone.  Candidate sets start
// full; the solver's seeding step narrows them.  Errors here
// mean the input was malformed: wrong length or out-of-range
// values.  Conflicting givens are not checked here; they are a
// property of the puzzle, not the encoding, and surface as a
// contradiction during the solve.
func create(values []int) (*grid, error) {
	if len(values) != SquareCount {
		return nil, sizeError(len(values))
	}
	g := &grid{
		values: make([]int, SquareCount+1), // 1-based indexing
		cands:  make([]valueSet, SquareCount+1),
	}
	for i, val := range values {
		if val < 0 || val > SideLength {
			return nil, rangeError(ValueAttribute, val, 0, SideLength)
		}
		g.values[i+1] = val
		g.cands[i+1] = fullSet
	}
	return g, nil
}

// copy returns a deep copy of a grid.
func (g *grid) copy() *grid {
	c := &grid{
		values: make([]int, len(g.values)),
		cands:  make([]valueSet, len(g.cands)),
	}
	copy(c.values, g.values)
	copy(c.cands, g.cands)
	return c
}

// assign records that square idx holds val: the square's
// candidate set collapses to the singleton of val, and val is
// removed from the candidate set of every unassigned square
// sharing a row, column, or block with idx.  Repeating an
// assignment is a no-op, so assign is idempotent.  A square
// whose value is set but whose candidates are still open, as
// the givens are after create, is not a repeat: seeding relies
// on assign to collapse it and eliminate its peers.
//
// assign never judges the assignment; detecting a resulting
// contradiction is checkConsistency's job, which lets the
// caller decide when to pay for the check.
func (g *grid) assign(idx, val int) {
	if g.values[idx] == val && g.cands[idx] == singleton(val) {
		return
	}
	g.values[idx] = val
	g.cands[idx] = singleton(val)
	for _, gi := range mapping.ixmap[idx] {
		for _, si := range mapping.gdescs[gi].indices {
			if si != idx && g.values[si] == 0 {
				g.cands[si].remove(val)
			}
		}
	}
}

// checkGivens looks for a value assigned to two squares of the
// same group, which can only come from conflicting input
// givens: the solver's own assignments always eliminate a
// placed value from its peers first.  One Error is produced per
// offending (group, value) pair.
func (g *grid) checkGivens() []Error {
	var errs []Error
	for gi := 1; gi <= GroupCount; gi++ {
		gd := &mapping.gdescs[gi]
		var seen, dup valueSet
		for _, si := range gd.indices {
			if v := g.values[si]; v != 0 {
				if seen.has(v) {
					dup |= singleton(v)
				}
				seen |= singleton(v)
			}
		}
		for _, v := range dup.values() {
			errs = append(errs, groupError(gd.id, v, DuplicateGroupValuesCondition))
		}
	}
	return errs
}

// checkConsistency inspects the whole candidate state for
// proof that the current partial assignment cannot be
// completed.  There are two shapes of proof:
//
// - some group has a value that is not yet placed in it and
// that no unassigned square of the group still admits;
//
// - some unassigned square has no candidate values left.
//
// Each finding produces one structured Error naming the group
// and value, or the square.  An empty return means no
// contradiction is visible (which is not a promise the grid is
// solvable).
func (g *grid) checkConsistency() []Error {
	var errs []Error
	for gi := 1; gi <= GroupCount; gi++ {
		gd := &mapping.gdescs[gi]
		var placed, open valueSet
		for _, si := range gd.indices {
			if v := g.values[si]; v != 0 {
				placed |= singleton(v)
			} else {
				open |= g.cands[si]
			}
		}
		for v := 1; v <= SideLength; v++ {
			if !placed.has(v) && !open.has(v) {
				errs = append(errs, groupError(gd.id, v, NoGroupValueCondition))
			}
		}
	}
	for i := 1; i <= SquareCount; i++ {
		if g.values[i] == 0 && g.cands[i] == 0 {
			errs = append(errs, squareError(i))
		}
	}
	return errs
}

/*

Exported forms

*/

// gridValues returns the assigned values in reading order, as
// an 81-value slice matching the input form (so Values[i-1] is
// square i).  The return value doesn't share storage with the
// grid.
func (g *grid) gridValues() []int {
	out := make([]int, SquareCount)
	copy(out, g.values[1:])
	return out
}

// candidateLists returns each square's remaining candidates in
// ascending order, as an 81-entry slice (Candidates[i-1] is
// square i).  Assigned squares report the singleton of their
// value.
func (g *grid) candidateLists() [][]int {
	out := make([][]int, SquareCount)
	for i := 1; i <= SquareCount; i++ {
		out[i-1] = g.cands[i].values()
	}
	return out
}

// blanks counts the unassigned squares.
func (g *grid) blanks() int {
	count := 0
	for i := 1; i <= SquareCount; i++ {
		if g.values[i] == 0 {
			count++
		}
	}
	return count
}
