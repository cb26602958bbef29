// slide-puzzle - a web-based sliding-tile puzzle game and solver.
// Copyright (C) 2016 Daniel C. Brotsky.
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

	"github.com/eseidel/slide-puzzle/puzzle"
)

// make sure the sample boards are well-formed before they ever
// reach a database
func TestSampleBoards(t *testing.T) {
	seen := make(map[string]bool)
	for _, sb := range sampleBoards {
		if sb.id != strings.ToLower(sb.id) {
			t.Errorf("Board id %q contains a non-lowercase letter.", sb.id)
		}
		if seen[sb.id] {
			t.Errorf("Board id %q is used twice.", sb.id)
		}
		seen[sb.id] = true
		values, err := sb.values()
		if err != nil {
			t.Errorf("Board %q values failed: %v", sb.id, err)
			continue
		}
		if len(values) != sb.width*sb.height {
			t.Errorf("Board %q has %d values, expected %d",
				sb.id, len(values), sb.width*sb.height)
		}
		ints := make([]int, len(values))
		solved := true
		for i, v := range values {
			ints[i] = int(v)
			if int(v) != i {
				solved = false
			}
		}
		if solved {
			t.Errorf("Board %q starts solved.", sb.id)
		}
		if !puzzle.SolvableArrangement(sb.width, ints) {
			t.Errorf("Board %q isn't solvable: %v", sb.id, ints)
		}
	}
}
