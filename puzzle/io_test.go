package puzzle

import (
	"strings"
	"testing"
)

func TestSignature(t *testing.T) {
	s1, e := Signature(easyValues)
	if e != nil {
		t.Fatalf("Signature failed: %v", e)
	}
	s2, e := Signature(easyValues)
	if e != nil || s2 != s1 {
		t.Errorf("Signature not stable: %q then %q", s1, s2)
	}
	if s3, e := Signature(easySolution); e != nil || s3 == s1 {
		t.Errorf("Different grids share signature %q", s1)
	}
	if _, e := Signature(make([]int, 80)); e == nil {
		t.Errorf("80-value grid was accepted")
	}
}

type squareNameTestcase struct {
	index int
	name  string
}

func TestSquareName(t *testing.T) {
	tcs := []squareNameTestcase{
		squareNameTestcase{1, "a1"},
		squareNameTestcase{9, "a9"},
		squareNameTestcase{10, "b1"},
		squareNameTestcase{41, "e5"},
		squareNameTestcase{73, "i1"},
		squareNameTestcase{81, "i9"},
	}
	for _, tc := range tcs {
		if n := SquareName(tc.index); n != tc.name {
			t.Errorf("SquareName(%d) = %q (expected %q)", tc.index, n, tc.name)
		}
	}
}

func TestGridString(t *testing.T) {
	s := GridString(easyValues)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	// column header, 3 band separators, 9 rows
	if len(lines) != 13 {
		t.Fatalf("grid rendered as %d lines:\n%s", len(lines), s)
	}
	blanks := 0
	for _, v := range easyValues {
		if v == 0 {
			blanks++
		}
	}
	if n := strings.Count(s, "_"); n != blanks {
		t.Errorf("grid shows %d blanks (expected %d):\n%s", n, blanks, s)
	}
	for i, rowhdr := 0, 'a'; i < SideLength; i, rowhdr = i+1, rowhdr+1 {
		if !strings.Contains(s, "\n"+string(rowhdr)+"|") {
			t.Errorf("no row %c in grid:\n%s", rowhdr, s)
		}
	}
	if ms := GridString(make([]int, 5)); ms != "<grid with 5 values>\n" {
		t.Errorf("malformed grid rendered as %q", ms)
	}
}

type deductionStringTestcase struct {
	deduction Deduction
	narration string
}

func TestDeductionString(t *testing.T) {
	tcs := []deductionStringTestcase{
		deductionStringTestcase{
			Deduction{Rule: NakedSingle, Index: 41, Value: 5},
			"square e5 must be 5: no other value remains for it",
		},
		deductionStringTestcase{
			Deduction{Rule: HiddenSingle, Group: GroupID{GtypeBlock, 3}, Index: 9, Value: 2},
			"square a9 must be 2: it is the only place block 3 can put 2",
		},
		deductionStringTestcase{
			Deduction{Rule: Rule("guess"), Index: 1, Value: 7},
			"square a1 gets 7",
		},
	}
	for i, tc := range tcs {
		if n := tc.deduction.String(); n != tc.narration {
			t.Errorf("case %d: narration was %q (expected %q)", i, n, tc.narration)
		}
	}
}

func TestResultString(t *testing.T) {
	r, err := Solve(easyValues)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	s := r.String()
	if !strings.Contains(s, "status: solved") {
		t.Errorf("no status line in result:\n%s", s)
	}
	if !strings.Contains(s, "deductions)") {
		t.Errorf("no deduction count in result:\n%s", s)
	}
}
