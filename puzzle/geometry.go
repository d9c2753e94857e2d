package puzzle

/*

Grid geometry

The geometry of the standard puzzle is fixed: 81 squares in a
9x9 grid, constrained by 27 groups (9 rows, 9 columns, 9
blocks).  This module computes the group structure once and
answers all the index arithmetic questions for the rest of the
package.

*/

// Geometry parameters.  These are constants of the standard
// grid, named so the arithmetic below reads sensibly.
const (
	SideLength  = 9
	BlockLength = 3
	SquareCount = SideLength * SideLength
	GroupCount  = 3 * SideLength
)

// A group descriptor identifies a group and enumerates the
// indices of its squares, in position order.
type groupDescriptor struct {
	index   int
	id      GroupID
	indices []int
}

// A unitMapping summarizes the group structure of the grid: the
// descriptor of each group, and a mapping from each square
// index to the three groups that contain it (row first, then
// column, then block).
type unitMapping struct {
	gdescs []groupDescriptor
	ixmap  [][]int
}

// mapping is the one unit mapping, computed at package init.
// Group indices are 1-based: rows are groups 1-9, columns are
// groups 10-18, blocks are groups 19-27.
var mapping = computeUnitMapping()

func computeUnitMapping() *unitMapping {
	gs := make([]groupDescriptor, GroupCount+1) // 1-based indexing
	im := make([][]int, SquareCount+1)          // 1-based indexing
	for i := 1; i <= SquareCount; i++ {
		im[i] = make([]int, 3) // 3 groups for every square
	}
	for i := 0; i < SideLength; i++ {
		// row i + 1
		rgi := i + 1 // 1-based indexes
		row := make([]int, SideLength)
		for ri := 0; ri < SideLength; ri++ {
			si := SideLength*i + ri + 1 // 1-based indexes
			row[ri] = si
			im[si][0] = rgi
		}
		gs[rgi] = groupDescriptor{rgi, GroupID{GtypeRow, i + 1}, row}
		// column i + 1
		cgi := i + SideLength + 1 // 1-based indices
		col := make([]int, SideLength)
		for ci := 0; ci < SideLength; ci++ {
			si := SideLength*ci + i + 1 // 1-based indices
			col[ci] = si
			im[si][1] = cgi
		}
		gs[cgi] = groupDescriptor{cgi, GroupID{GtypeCol, i + 1}, col}
		// block i + 1
		bgi := i + 2*SideLength + 1 // 1-based indices
		block := make([]int, SideLength)
		baserow, basecol := BlockLength*(i/BlockLength), BlockLength*(i%BlockLength)
		for bri := 0; bri < BlockLength; bri++ {
			for bci := 0; bci < BlockLength; bci++ {
				si := SideLength*(baserow+bri) + (basecol + bci) + 1 // 1-based indices
				block[bri*BlockLength+bci] = si
				im[si][2] = bgi
			}
		}
		gs[bgi] = groupDescriptor{bgi, GroupID{GtypeBlock, i + 1}, block}
	}
	return &unitMapping{gs, im}
}

/*

Public index arithmetic

*/

// SquareAt returns the square index (1-81) of the square in the
// given row and column (each 1-9).
func SquareAt(row, col int) int {
	return (row-1)*SideLength + col
}

// Coordinates returns the row and column (each 1-9) of a square
// index (1-81).
func Coordinates(index int) (row, col int) {
	return (index-1)/SideLength + 1, (index-1)%SideLength + 1
}

// BlockOf returns the block number (1-9) containing the square
// in the given row and column (each 1-9).  Blocks are numbered
// in reading order of their top-left squares.
func BlockOf(row, col int) int {
	return BlockLength*((row-1)/BlockLength) + (col-1)/BlockLength + 1
}

// SquareOf returns the square index (1-81) at the given
// position (1-9) of the given group.  Positions run in reading
// order within the group.  The second return value is false if
// the group or position doesn't exist.
func SquareOf(gid GroupID, position int) (int, bool) {
	gi, ok := groupNumber(gid)
	if !ok || position < 1 || position > SideLength {
		return 0, false
	}
	return mapping.gdescs[gi].indices[position-1], true
}

// GroupSquares returns the square indices of a group, in
// position order.  The second return value is false if the
// group doesn't exist.  The returned slice must not be
// modified.
func GroupSquares(gid GroupID) ([]int, bool) {
	gi, ok := groupNumber(gid)
	if !ok {
		return nil, false
	}
	return mapping.gdescs[gi].indices, true
}

// Groups enumerates the IDs of all 27 groups: rows first, then
// columns, then blocks, each in ascending index order.  This is
// also the order the solver scans groups in, so deduction logs
// follow it.
func Groups() []GroupID {
	ids := make([]GroupID, GroupCount)
	for i := 1; i <= GroupCount; i++ {
		ids[i-1] = mapping.gdescs[i].id
	}
	return ids
}

// ContainingGroups returns the IDs of the row, column, and
// block containing a square index (1-81).
func ContainingGroups(index int) []GroupID {
	ids := make([]GroupID, 3)
	for i, gi := range mapping.ixmap[index] {
		ids[i] = mapping.gdescs[gi].id
	}
	return ids
}

// groupNumber maps a GroupID to its 1-based position in the
// group descriptor table.
func groupNumber(gid GroupID) (int, bool) {
	if gid.Index < 1 || gid.Index > SideLength {
		return 0, false
	}
	switch gid.Gtype {
	case GtypeRow:
		return gid.Index, true
	case GtypeCol:
		return gid.Index + SideLength, true
	case GtypeBlock:
		return gid.Index + 2*SideLength, true
	}
	return 0, false
}
