package puzzle

import (
	"reflect"
	"testing"
)

func TestCheckCompleteGrid(t *testing.T) {
	valid, reports, err := Check(easySolution)
	if err != nil {
		t.Fatalf("Check failed on a solved grid: %v", err)
	}
	if !valid || reports != nil {
		t.Errorf("solved grid judged invalid: %v", reports)
	}
}

// Corrupting one square of a solved grid breaks exactly its
// row, column, and block, each with the same duplicate and the
// same missing value.
func TestCheckCorruptedSquare(t *testing.T) {
	values := make([]int, len(easySolution))
	copy(values, easySolution)
	was, now := values[0], values[1]
	values[0] = now
	valid, reports, err := Check(values)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if valid {
		t.Fatalf("corrupted grid judged valid")
	}
	expected := []GroupReport{
		GroupReport{GroupID{GtypeRow, 1}, []int{now}, []int{was}},
		GroupReport{GroupID{GtypeCol, 1}, []int{now}, []int{was}},
		GroupReport{GroupID{GtypeBlock, 1}, []int{now}, []int{was}},
	}
	if !reflect.DeepEqual(reports, expected) {
		t.Errorf("reports were %v (expected %v)", reports, expected)
	}
}

// A consistent but unfinished grid fails the check with missing
// values only, no duplicates.
func TestCheckIncompleteGrid(t *testing.T) {
	valid, reports, err := Check(easyValues)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if valid {
		t.Fatalf("unfinished grid judged valid")
	}
	if len(reports) == 0 {
		t.Fatalf("unfinished grid produced no reports")
	}
	for _, r := range reports {
		if r.Duplicates != nil {
			t.Errorf("group %v reported duplicates %v", r.Group, r.Duplicates)
		}
		if len(r.Missing) == 0 {
			t.Errorf("group %v reported nothing missing", r.Group)
		}
	}
}

func TestCheckMalformedInput(t *testing.T) {
	if _, _, e := Check(make([]int, 80)); e == nil {
		t.Errorf("80-value grid was accepted")
	} else if e.(Error).Condition != WrongGridSizeCondition {
		t.Errorf("wrong error for short grid: %v", e)
	}
	bad := make([]int, SquareCount)
	bad[17] = 12
	if _, _, e := Check(bad); e == nil {
		t.Errorf("out-of-range value was accepted")
	} else if e.(Error).Attribute != ValueAttribute {
		t.Errorf("wrong error for out-of-range value: %v", e)
	}
}

func TestGroupReportErrors(t *testing.T) {
	r := GroupReport{GroupID{GtypeCol, 4}, []int{2}, []int{7, 9}}
	errs := r.errors()
	if len(errs) != 3 {
		t.Fatalf("report produced %d errors", len(errs))
	}
	expected := []Error{
		groupError(r.Group, 2, DuplicateGroupValuesCondition),
		groupError(r.Group, 7, IncompleteGroupCondition),
		groupError(r.Group, 9, IncompleteGroupCondition),
	}
	if !reflect.DeepEqual(errs, expected) {
		t.Errorf("errors were %v (expected %v)", errs, expected)
	}
}
