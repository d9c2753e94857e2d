package puzzle

/*

Sudoku deduction loop

The solver imitates the first things a human solver does, and
nothing more.  It keeps a candidate set per square and applies
two rules over and over:

1. Naked single: a square has exactly one candidate left, so it
must hold that value.

2. Hidden single: a group needs a value that only one of its
squares still admits, so that square must hold it.

Each assignment eliminates candidates from the square's peers,
which may enable further rule firings, so the rules run in
passes until a full pass assigns nothing.  If every square is
then filled, the grid is solved; if not, it is stalled, because
these two rules alone cannot finish it.  The loop terminates:
every productive pass fills at least one of the 81 squares.

The scan order is fixed - squares in reading order for rule 1,
then rows, columns, and blocks in ascending order with values
1 through 9 for rule 2.  The rules are confluent (every
assignment they make is forced), so this order determines only
the order of the deduction log, never the final grid.

After every assignment the solver runs the consistency check.
That is the strictest policy available, and it guarantees the
grid and candidates returned with a contradiction are the last
consistent ones seen.

*/

// solve runs seeding and then rule passes to a fixpoint or a
// contradiction, producing the Result.
func (g *grid) solve(reporters []Reporter) *Result {
	// Conflicting givens surface before any candidate work, so
	// the reported grid is exactly the seed.
	if errs := g.checkGivens(); len(errs) > 0 {
		return g.result(Contradiction, nil, errs)
	}

	// Seeding: replay every given through assign so the
	// candidate sets agree with them.
	for i := 1; i <= SquareCount; i++ {
		if g.values[i] != 0 {
			g.assign(i, g.values[i])
		}
	}
	if errs := g.checkConsistency(); len(errs) > 0 {
		return g.result(Contradiction, nil, errs)
	}

	// Propagating: run both rules until a pass assigns nothing.
	var log []Deduction
	for {
		assigned, failed := g.pass(&log, reporters)
		if failed != nil {
			return failed
		}
		if assigned == 0 {
			break
		}
	}

	// Fixpoint: full grid means solved, blanks mean the two
	// rules were not enough.
	status := Solved
	if g.blanks() > 0 {
		status = Stalled
	}
	return g.result(status, log, nil)
}

// pass makes one full scan of both rules, returning how many
// squares it assigned.  If an assignment exposes a
// contradiction, pass stops and returns the Result to hand
// back: the grid state from just before that assignment, with
// the deductions made so far and the contradiction detail.
func (g *grid) pass(log *[]Deduction, reporters []Reporter) (int, *Result) {
	assigned := 0

	// Rule 1: naked singles, squares in reading order.
	for i := 1; i <= SquareCount; i++ {
		if g.values[i] != 0 {
			continue
		}
		if v, ok := g.cands[i].single(); ok {
			if failed := g.deduce(Deduction{Rule: NakedSingle, Index: i, Value: v}, log, reporters); failed != nil {
				return assigned, failed
			}
			assigned++
		}
	}

	// Rule 2: hidden singles, groups in row/column/block order,
	// values ascending.
	for gi := 1; gi <= GroupCount; gi++ {
		gd := &mapping.gdescs[gi]
		for v := 1; v <= SideLength; v++ {
			idx, forced := g.onlyHome(gd, v)
			if !forced {
				continue
			}
			d := Deduction{Rule: HiddenSingle, Group: gd.id, Index: idx, Value: v}
			if failed := g.deduce(d, log, reporters); failed != nil {
				return assigned, failed
			}
			assigned++
		}
	}
	return assigned, nil
}

// onlyHome reports whether value v is unplaced in the group and
// exactly one unassigned square of the group still admits it.
func (g *grid) onlyHome(gd *groupDescriptor, v int) (int, bool) {
	idx, count := 0, 0
	for _, si := range gd.indices {
		if g.values[si] == v {
			return 0, false // already placed
		}
		if g.values[si] == 0 && g.cands[si].has(v) {
			idx, count = si, count+1
		}
	}
	return idx, count == 1
}

// deduce applies one forced assignment and then runs the
// consistency check.  On success the deduction is logged and
// reported; on contradiction the grid snapshot from before the
// assignment becomes the Result, and the failed deduction never
// reaches the log or the reporters.
func (g *grid) deduce(d Deduction, log *[]Deduction, reporters []Reporter) *Result {
	snapshot := g.copy()
	g.assign(d.Index, d.Value)
	if errs := g.checkConsistency(); len(errs) > 0 {
		return snapshot.result(Contradiction, *log, errs)
	}
	*log = append(*log, d)
	for _, r := range reporters {
		r.Report(d)
	}
	return nil
}

// result assembles the exported Result from a terminal grid.
func (g *grid) result(status Status, log []Deduction, errs []Error) *Result {
	return &Result{
		Values:     g.gridValues(),
		Status:     status,
		Deductions: log,
		Candidates: g.candidateLists(),
		Errors:     errs,
	}
}
