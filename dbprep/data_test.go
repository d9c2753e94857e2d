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

package dbprep

import (
	"strings"
	"testing"
)

// make sure the sample identifier invariants are met
func TestSampleData(t *testing.T) {
	seen := make(map[string]int)
	for i, hash := range sampleHashes {
		if hash != strings.ToLower(hash) {
			t.Errorf("Hash %d (%s) contains a non-lowercase letter.", i, hash)
		}
		if prior, ok := seen[hash]; ok {
			t.Errorf("Samples %d and %d share hash %s.", prior, i, hash)
		}
		seen[hash] = i
	}
	for i, name := range sampleNames {
		if name != strings.ToLower(name) {
			t.Errorf("Name %d (%s) contains a non-lowercase letter.", i, name)
		}
	}
}
