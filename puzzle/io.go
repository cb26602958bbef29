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

package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

/*

Print forms of puzzles, for debugging and the CLI.

*/

// valuesString renders the arrangement as a right-aligned grid,
// one row per line, columns separated by single spaces.  The
// open cell prints as its numeric value, so the output parses
// back through Parse.
func valuesString(p Puzzle) string {
	width := len(strconv.Itoa(p.Length() - 1))
	var b strings.Builder
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%*d", width, p.ValueAt(Point{x, y}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

/*

Parsing of whitespace-separated grids.

*/

// Parse builds a puzzle from a textual grid of integers: rows
// separated by newlines, values by other whitespace.  The first
// non-empty row determines the width, every row must have that
// width, and the collected values must form a permutation (the
// same rules as Raw).
func Parse(text string) (Puzzle, error) {
	var values []int
	width := 0
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, gridError(fmt.Sprintf("row %q has %d values, want %d",
				strings.TrimSpace(line), len(fields), width))
		}
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, gridError(fmt.Sprintf("%q is not an integer", f))
			}
			values = append(values, v)
		}
	}
	if width == 0 {
		return nil, gridError("no values found")
	}
	return Raw(width, values)
}

// gridError reports malformed grid text.
func gridError(detail string) Error {
	return Error{
		Scope:     ArgumentScope,
		Structure: AttributeStructure,
		Attribute: GridAttribute,
		Condition: MalformedGridCondition,
		Values:    ErrorData{detail},
	}
}
