// deduku.go - a narrated Sudoku deduction engine.
// Copyright (C) 2016 the deduku.go authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package puzzle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

/*

Print forms of grids and deductions, for the CLI and for
debugging.  Everything here renders to strings; nothing writes
to a terminal.

*/

// Signature computes a stable identifier for a grid: the hex
// form of a digest over its values in reading order.  Grids
// with the same values always get the same signature, so it
// works as a storage key.  Malformed grids are rejected with
// the same errors Solve gives them.
func Signature(values []int) (string, error) {
	if _, err := create(values); err != nil {
		return "", err
	}
	bytes := make([]byte, len(values))
	for i, v := range values {
		bytes[i] = byte(v)
	}
	digest := sha256.Sum256(bytes)
	return hex.EncodeToString(digest[:]), nil
}

// SquareName gives the human name of a square index: row letter
// a-i followed by column number 1-9, so square 1 is "a1" and
// square 81 is "i9".
func SquareName(index int) string {
	row, col := Coordinates(index)
	return fmt.Sprintf("%c%d", 'a'+row-1, col)
}

// GridString gives a pretty-printed view of an 81-value grid in
// reading order, with blocks separated and empty squares shown
// as underscores.  Malformed input gets a one-line complaint
// instead of a grid.
func GridString(values []int) string {
	if len(values) != SquareCount {
		return fmt.Sprintf("<grid with %d values>\n", len(values))
	}
	var b strings.Builder
	// column header
	b.WriteString(" ")
	for i := 0; i < SideLength; i++ {
		if i%BlockLength == 0 {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%2d ", i+1)
	}
	b.WriteString("\n")
	// rows, with a separator above each band
	for ri, rowhdr := 0, 'a'; ri < SideLength; ri, rowhdr = ri+1, rowhdr+1 {
		if ri%BlockLength == 0 {
			b.WriteString(" ")
			for i := 0; i < SideLength; i++ {
				b.WriteString("+---")
			}
			b.WriteString("\n")
		}
		b.WriteString(string(rowhdr))
		for ci := 0; ci < SideLength; ci++ {
			if ci%BlockLength == 0 {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
			if v := values[ri*SideLength+ci]; v != 0 {
				fmt.Fprintf(&b, " %d ", v)
			} else {
				b.WriteString(" _ ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// String narrates a deduction the way a person would say it.
func (d Deduction) String() string {
	switch d.Rule {
	case NakedSingle:
		return fmt.Sprintf("square %s must be %d: no other value remains for it",
			SquareName(d.Index), d.Value)
	case HiddenSingle:
		return fmt.Sprintf("square %s must be %d: it is the only place %s can put %d",
			SquareName(d.Index), d.Value, d.Group, d.Value)
	}
	return fmt.Sprintf("square %s gets %d", SquareName(d.Index), d.Value)
}

// String gives a printable account of a solve: the final grid,
// the status, and any contradiction details.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString(GridString(r.Values))
	fmt.Fprintf(&b, "status: %s (%d deductions)\n", r.Status, len(r.Deductions))
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s\n", e.Error())
	}
	return b.String()
}
