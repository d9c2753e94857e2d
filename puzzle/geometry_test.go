package puzzle

import (
	"reflect"
	"testing"
)

/*

Unit mapping

*/

// Every square must appear exactly once in the groups of each
// kind, and the ixmap must agree with the descriptors.
func TestMappingIsBijective(t *testing.T) {
	kinds := []struct {
		gtype string
		lo    int // first group index of the kind
	}{
		{GtypeRow, 1},
		{GtypeCol, SideLength + 1},
		{GtypeBlock, 2*SideLength + 1},
	}
	for ki, kind := range kinds {
		seen := make(map[int]int) // square index -> containing group
		for gi := kind.lo; gi < kind.lo+SideLength; gi++ {
			gd := mapping.gdescs[gi]
			if gd.index != gi {
				t.Errorf("group %d records index %d", gi, gd.index)
			}
			if gd.id.Gtype != kind.gtype || gd.id.Index != gi-kind.lo+1 {
				t.Errorf("group %d has ID %v", gi, gd.id)
			}
			if len(gd.indices) != SideLength {
				t.Fatalf("group %d has %d squares", gi, len(gd.indices))
			}
			for _, si := range gd.indices {
				if prior, ok := seen[si]; ok {
					t.Errorf("square %d in both group %d and group %d", si, prior, gi)
				}
				seen[si] = gi
				if mapping.ixmap[si][ki] != gi {
					t.Errorf("ixmap[%d][%d] = %d (expected %d)",
						si, ki, mapping.ixmap[si][ki], gi)
				}
			}
		}
		if len(seen) != SquareCount {
			t.Errorf("%s groups cover %d squares", kind.gtype, len(seen))
		}
	}
}

func TestCoordinatesRoundTrip(t *testing.T) {
	for i := 1; i <= SquareCount; i++ {
		row, col := Coordinates(i)
		if row < 1 || row > SideLength || col < 1 || col > SideLength {
			t.Fatalf("Coordinates(%d) = (%d, %d)", i, row, col)
		}
		if SquareAt(row, col) != i {
			t.Errorf("SquareAt(%d, %d) = %d (expected %d)", row, col, SquareAt(row, col), i)
		}
	}
}

type blockOfTestcase struct {
	row, col, block int
}

func TestBlockOf(t *testing.T) {
	tcs := []blockOfTestcase{
		blockOfTestcase{1, 1, 1},
		blockOfTestcase{1, 9, 3},
		blockOfTestcase{3, 3, 1},
		blockOfTestcase{4, 4, 5},
		blockOfTestcase{5, 5, 5},
		blockOfTestcase{6, 7, 6},
		blockOfTestcase{7, 1, 7},
		blockOfTestcase{9, 9, 9},
	}
	for _, tc := range tcs {
		if b := BlockOf(tc.row, tc.col); b != tc.block {
			t.Errorf("BlockOf(%d, %d) = %d (expected %d)", tc.row, tc.col, b, tc.block)
		}
	}
	// the block groups must agree with BlockOf
	for i := 1; i <= SquareCount; i++ {
		row, col := Coordinates(i)
		gid := ContainingGroups(i)[2]
		if gid.Gtype != GtypeBlock || gid.Index != BlockOf(row, col) {
			t.Errorf("square %d is in %v but BlockOf gives %d", i, gid, BlockOf(row, col))
		}
	}
}

func TestGroupEnumeration(t *testing.T) {
	ids := Groups()
	if len(ids) != GroupCount {
		t.Fatalf("Groups() returned %d IDs", len(ids))
	}
	for i, id := range ids {
		var expected GroupID
		switch {
		case i < SideLength:
			expected = GroupID{GtypeRow, i + 1}
		case i < 2*SideLength:
			expected = GroupID{GtypeCol, i - SideLength + 1}
		default:
			expected = GroupID{GtypeBlock, i - 2*SideLength + 1}
		}
		if id != expected {
			t.Errorf("Groups()[%d] = %v (expected %v)", i, id, expected)
		}
	}
}

func TestSquareOf(t *testing.T) {
	// row 3 reads left to right
	for pos := 1; pos <= SideLength; pos++ {
		if si, ok := SquareOf(GroupID{GtypeRow, 3}, pos); !ok || si != SquareAt(3, pos) {
			t.Errorf("SquareOf(row 3, %d) = (%d, %v)", pos, si, ok)
		}
	}
	// column 7 reads top to bottom
	for pos := 1; pos <= SideLength; pos++ {
		if si, ok := SquareOf(GroupID{GtypeCol, 7}, pos); !ok || si != SquareAt(pos, 7) {
			t.Errorf("SquareOf(column 7, %d) = (%d, %v)", pos, si, ok)
		}
	}
	// block 5's first position is its top-left square
	if si, ok := SquareOf(GroupID{GtypeBlock, 5}, 1); !ok || si != SquareAt(4, 4) {
		t.Errorf("SquareOf(block 5, 1) = (%d, %v)", si, ok)
	}
	// bad lookups fail cleanly
	if _, ok := SquareOf(GroupID{"diagonal", 1}, 1); ok {
		t.Errorf("SquareOf accepted an unknown group type")
	}
	if _, ok := SquareOf(GroupID{GtypeRow, 10}, 1); ok {
		t.Errorf("SquareOf accepted row 10")
	}
	if _, ok := SquareOf(GroupID{GtypeRow, 1}, 0); ok {
		t.Errorf("SquareOf accepted position 0")
	}
}

func TestGroupSquares(t *testing.T) {
	squares, ok := GroupSquares(GroupID{GtypeBlock, 1})
	if !ok {
		t.Fatalf("block 1 not found")
	}
	expected := []int{1, 2, 3, 10, 11, 12, 19, 20, 21}
	if !reflect.DeepEqual(squares, expected) {
		t.Errorf("block 1 squares are %v (expected %v)", squares, expected)
	}
	if _, ok := GroupSquares(GroupID{GtypeCol, 0}); ok {
		t.Errorf("GroupSquares accepted column 0")
	}
}

func TestContainingGroups(t *testing.T) {
	gids := ContainingGroups(SquareAt(5, 8))
	expected := []GroupID{
		GroupID{GtypeRow, 5},
		GroupID{GtypeCol, 8},
		GroupID{GtypeBlock, 6},
	}
	if !reflect.DeepEqual(gids, expected) {
		t.Errorf("ContainingGroups(e8) = %v (expected %v)", gids, expected)
	}
}
