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
	"testing"
)

func TestBoardGeometry(t *testing.T) {
	g, err := boardGeometry(4, 3)
	if err != nil {
		t.Fatalf("Failed to make 4x3 geometry: %v", err)
	}
	if g.width != 4 || g.height != 3 || g.length != 12 {
		t.Errorf("4x3 geometry came back as %+v", g)
	}
	if g.openValue() != 11 {
		t.Errorf("Open value of 4x3 is %d, expected 11", g.openValue())
	}
}

type geometryErrorTestcase struct {
	width, height int
	condition     ErrorCondition
}

func TestBoardGeometryErrors(t *testing.T) {
	tcs := []geometryErrorTestcase{
		{2, 4, TooSmallCondition},
		{0, 4, TooSmallCondition},
		{3, 1, TooSmallCondition},
	}
	for _, tc := range tcs {
		_, err := boardGeometry(tc.width, tc.height)
		if err == nil {
			t.Errorf("No error for %dx%d geometry", tc.width, tc.height)
			continue
		}
		if e, ok := err.(Error); !ok || e.Condition != tc.condition {
			t.Errorf("Wrong error for %dx%d geometry: %v", tc.width, tc.height, err)
		}
	}
}

func TestSourceGeometry(t *testing.T) {
	g, err := sourceGeometry(3, 6)
	if err != nil {
		t.Fatalf("Failed to make geometry for width 3, 6 values: %v", err)
	}
	if g.height != 2 {
		t.Errorf("Height for width 3, 6 values is %d, expected 2", g.height)
	}
	if _, err := sourceGeometry(3, 7); err == nil {
		t.Errorf("No error for width 3, 7 values")
	} else if e, ok := err.(Error); !ok || e.Condition != NotRectangularCondition {
		t.Errorf("Wrong error for width 3, 7 values: %v", err)
	}
	if _, err := sourceGeometry(2, 6); err == nil {
		t.Errorf("No error for width 2")
	}
	if _, err := sourceGeometry(3, 3); err == nil {
		t.Errorf("No error for 3 values")
	}
}

func TestIndexPointRoundTrip(t *testing.T) {
	g, err := boardGeometry(5, 3)
	if err != nil {
		t.Fatalf("Failed to make 5x3 geometry: %v", err)
	}
	for i := 0; i < g.length; i++ {
		p := g.point(i)
		if !g.inBounds(p) {
			t.Errorf("Point %v of index %d is out of bounds", p, i)
		}
		if j := g.index(p); j != i {
			t.Errorf("Index %d mapped to %v and back to %d", i, p, j)
		}
	}
	for _, p := range []Point{{-1, 0}, {0, -1}, {5, 0}, {0, 3}} {
		if g.inBounds(p) {
			t.Errorf("Point %v counted as in bounds", p)
		}
	}
}
