package puzzle

/*

Completed-grid validation

The validator is a diagnostic over bare values: it knows nothing
about candidates and never touches a solve in progress.  It
answers "is this a correctly completed Sudoku?", and when the
answer is no, it says which groups are broken and how.

*/

// A GroupReport describes how one group fails to contain the
// values 1-9 exactly once: the values it holds more than once,
// and the values it is missing.  A group with empty squares
// reports the unfilled values as missing.
type GroupReport struct {
	Group      GroupID `json:"group"`
	Duplicates []int   `json:"duplicates,omitempty"`
	Missing    []int   `json:"missing,omitempty"`
}

// errors converts a report to the structured Errors for its
// findings, duplicates first.
func (r GroupReport) errors() []Error {
	var errs []Error
	for _, v := range r.Duplicates {
		errs = append(errs, groupError(r.Group, v, DuplicateGroupValuesCondition))
	}
	for _, v := range r.Missing {
		errs = append(errs, groupError(r.Group, v, IncompleteGroupCondition))
	}
	return errs
}

// Check validates a filled (or partially filled) 81-value grid
// in reading order.  It reports true only when all 27 groups
// contain exactly the values 1-9.  Failing groups come back as
// GroupReports, scanned rows first, then columns, then blocks.
// An error is returned only for malformed input (wrong length
// or out-of-range values); a merely wrong solution is not an
// error.
func Check(values []int) (bool, []GroupReport, error) {
	g, err := create(values)
	if err != nil {
		return false, nil, err
	}
	var reports []GroupReport
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
		if dup == 0 && seen == fullSet {
			continue
		}
		reports = append(reports, GroupReport{
			Group:      gd.id,
			Duplicates: dup.values(),
			Missing:    (fullSet &^ seen).values(),
		})
	}
	return len(reports) == 0, reports, nil
}
