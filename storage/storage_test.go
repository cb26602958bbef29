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

package storage

import (
	"reflect"
	"testing"

	"github.com/eseidel/slide-puzzle/dbprep"
	"github.com/eseidel/slide-puzzle/puzzle"
)

/*

setup

These tests need a live cache and database.  When either is
missing they skip rather than fail, so the rest of the module can
be tested on a bare machine.

*/

// helperConnect connects to storage, skipping the test when the
// backing services aren't reachable.  Callers own the Close.
func helperConnect(t *testing.T) {
	t.Helper()
	if _, _, err := Connect(); err != nil {
		t.Skipf("Storage not available: %v", err)
	}
}

func TestConnect(t *testing.T) {
	helperConnect(t)
	defer Close()
	// we are creating sessions up the wazoo; make sure they
	// don't persist past the end of the test run
	if err := dbprep.ClearCache(); err != nil {
		t.Fatalf("Couldn't clear cache: %v", err)
	}
}

/*

board catalog

*/

func TestLoadCatalog(t *testing.T) {
	helperConnect(t)
	defer Close()
	infos := LoadCatalog()
	if len(infos) < 3 {
		t.Fatalf("Catalog has %d boards, expected at least 3", len(infos))
	}
	found := false
	for _, bi := range infos {
		if bi.BoardId == defaultBoardID {
			found = true
			if bi.Width != 4 || bi.Height != 4 {
				t.Errorf("Default board is %dx%d, expected 4x4", bi.Width, bi.Height)
			}
		}
	}
	if !found {
		t.Errorf("Catalog is missing the default board %q", defaultBoardID)
	}
}

func TestLookupBoardEntry(t *testing.T) {
	helperConnect(t)
	defer Close()
	be := lookupBoardEntry(defaultBoardID)
	if be == nil {
		t.Fatalf("No entry for default board %q", defaultBoardID)
	}
	if int(be.Width) != 4 || len(be.Values) != 16 {
		t.Errorf("Default board entry came back as %+v", be)
	}
	// second lookup comes from the cache; must agree
	cached := lookupBoardEntry(defaultBoardID)
	if !reflect.DeepEqual(be, cached) {
		t.Errorf("Cached entry %+v differs from loaded entry %+v", cached, be)
	}
	if unknown := lookupBoardEntry("no-such-board"); unknown != nil {
		t.Errorf("Lookup of unknown board returned %+v", unknown)
	}
}

/*

sessions

*/

func TestSessionLifecycle(t *testing.T) {
	helperConnect(t)
	defer Close()

	session := &Session{SID: "test-session-1"}
	session.StartBoard("default")
	if session.BID != defaultBoardID {
		t.Errorf("Session board is %q, expected %q", session.BID, defaultBoardID)
	}
	if session.Step != 1 {
		t.Errorf("Fresh session at step %d, expected 1", session.Step)
	}
	if session.Puzzle == nil {
		t.Fatalf("Fresh session has no puzzle")
	}
	start := session.Puzzle.Key()

	// play one move
	moves := session.Puzzle.Clickable(puzzle.AnyAxis)
	next, moved := session.Puzzle.Click(moves[0])
	if !moved {
		t.Fatalf("Clickable value %d refused a click", moves[0])
	}
	session.AddStep(next)
	if session.Step != 2 {
		t.Errorf("Session after one move at step %d, expected 2", session.Step)
	}

	// a fresh lookup sees the persisted state
	loaded := &Session{SID: "test-session-1"}
	if !loaded.Lookup() {
		t.Fatalf("Session not found after save")
	}
	if loaded.BID != session.BID || loaded.Step != session.Step {
		t.Errorf("Loaded session is %s:%d, expected %s:%d",
			loaded.BID, loaded.Step, session.BID, session.Step)
	}
	loaded.LoadStep()
	if loaded.Puzzle.Key() != next.Key() {
		t.Errorf("Loaded step puzzle is %v, expected %v",
			loaded.Puzzle.Values(), next.Values())
	}

	// undo restores the starting arrangement
	loaded.RemoveStep()
	if loaded.Step != 1 {
		t.Errorf("Session after undo at step %d, expected 1", loaded.Step)
	}
	if loaded.Puzzle.Key() != start {
		t.Errorf("Undo restored %v, expected the starting arrangement",
			loaded.Puzzle.Values())
	}
	// undo at step 1 is a no-op
	loaded.RemoveStep()
	if loaded.Step != 1 {
		t.Errorf("Undo at step 1 moved to step %d", loaded.Step)
	}
}

func TestStartBoardUnknown(t *testing.T) {
	helperConnect(t)
	defer Close()
	session := &Session{SID: "test-session-2"}
	session.StartBoard("no-such-board")
	if session.BID != defaultBoardID {
		t.Errorf("Unknown board started %q, expected %q", session.BID, defaultBoardID)
	}
}

/*

solution cache

*/

func TestSolutionRoundTrip(t *testing.T) {
	helperConnect(t)
	defer Close()
	key := "test:3x2:badc0ffee"
	moves := []int{4, 2, 1}
	SaveSolution(key, moves)
	got, found := LookupSolution(key)
	if !found {
		t.Fatalf("Saved solution not found")
	}
	if !reflect.DeepEqual(got, moves) {
		t.Errorf("Solution came back as %v, expected %v", got, moves)
	}
	// saving again is a refresh, not an error
	SaveSolution(key, moves)
	if _, found := LookupSolution("test:no-such-key"); found {
		t.Errorf("Found a solution for an unknown key")
	}
}
