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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func helperPost(body string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest("POST", "/api/test", strings.NewReader(body))
	return httptest.NewRecorder(), r
}

func TestNewHandler(t *testing.T) {
	w, r := helperPost(`{"width": 3, "values": [1, 2, 0, 3, 4, 5]}`)
	p, err := NewHandler(w, r)
	if err != nil {
		t.Fatalf("NewHandler failed: %v", err)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("NewHandler status is %d, expected %d", w.Code, http.StatusOK)
	}
	if p == nil || p.Width() != 3 || p.Height() != 2 {
		t.Fatalf("NewHandler built the wrong puzzle: %v", p)
	}
	var state State
	if e := json.NewDecoder(w.Body).Decode(&state); e != nil {
		t.Fatalf("NewHandler response didn't decode: %v", e)
	}
	if ev := []int{1, 2, 0, 3, 4, 5}; !reflect.DeepEqual(state.Values, ev) {
		t.Errorf("NewHandler state values are %v, expected %v", state.Values, ev)
	}
	if state.Open != (Point{2, 1}) {
		t.Errorf("NewHandler open position is %v, expected (2,1)", state.Open)
	}
}

func TestNewHandlerErrors(t *testing.T) {
	// not JSON at all
	w, r := helperPost(`width 3`)
	if _, err := NewHandler(w, r); err == nil {
		t.Errorf("No error for malformed body")
	} else if w.Code != http.StatusBadRequest {
		t.Errorf("Malformed body status is %d, expected %d", w.Code, http.StatusBadRequest)
	}
	// well-formed but not a permutation
	w, r = helperPost(`{"width": 3, "values": [0, 1, 2, 3, 4, 4]}`)
	if _, err := NewHandler(w, r); err == nil {
		t.Errorf("No error for bad summary")
	} else if e, ok := err.(Error); !ok || e.Condition != NotPermutationCondition {
		t.Errorf("Wrong error for bad summary: %v", err)
	} else if w.Code != http.StatusBadRequest {
		t.Errorf("Bad summary status is %d, expected %d", w.Code, http.StatusBadRequest)
	}
}

func TestStateHandlerNoPuzzle(t *testing.T) {
	w, r := helperPost("")
	if err := StateHandler(nil, w, r); err == nil {
		t.Errorf("No error for missing puzzle")
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("Missing puzzle status is %d, expected %d", w.Code, http.StatusNotFound)
	}
}

func TestSummaryHandler(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	w, r := helperPost("")
	if err := SummaryHandler(p, w, r); err != nil {
		t.Fatalf("SummaryHandler failed: %v", err)
	}
	var summary Summary
	if e := json.NewDecoder(w.Body).Decode(&summary); e != nil {
		t.Fatalf("SummaryHandler response didn't decode: %v", e)
	}
	if summary.Width != 3 || !reflect.DeepEqual(summary.Values, p.Values()) {
		t.Errorf("SummaryHandler returned %+v", summary)
	}
}

func TestClickHandler(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	// 0 sits at (2,0), sharing a column with the open (2,1)
	w, r := helperPost(`{"value": 0}`)
	next, err := ClickHandler(p, w, r)
	if err != nil {
		t.Fatalf("ClickHandler failed: %v", err)
	}
	if next == nil {
		t.Fatalf("ClickHandler returned no puzzle for a legal move")
	}
	var update Update
	if e := json.NewDecoder(w.Body).Decode(&update); e != nil {
		t.Fatalf("ClickHandler response didn't decode: %v", e)
	}
	if !update.Moved || update.State == nil {
		t.Fatalf("ClickHandler update is %+v, expected a move", update)
	}
	if ev := []int{1, 2, 5, 3, 4, 0}; !reflect.DeepEqual(update.State.Values, ev) {
		t.Errorf("ClickHandler state values are %v, expected %v", update.State.Values, ev)
	}
}

func TestClickHandlerNotMovable(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	// 1 sits at (0,0), sharing neither line with the open (2,1)
	w, r := helperPost(`{"value": 1}`)
	next, err := ClickHandler(p, w, r)
	if err != nil {
		t.Fatalf("ClickHandler failed on unmovable tile: %v", err)
	}
	if next != nil {
		t.Errorf("ClickHandler returned a puzzle for an unmovable tile")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Unmovable tile status is %d, expected %d", w.Code, http.StatusOK)
	}
	var update Update
	if e := json.NewDecoder(w.Body).Decode(&update); e != nil {
		t.Fatalf("ClickHandler response didn't decode: %v", e)
	}
	if update.Moved || update.State != nil {
		t.Errorf("Unmovable tile update is %+v", update)
	}
}

func TestClickHandlerBadValue(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	w, r := helperPost(`{"value": 9}`)
	if _, err := ClickHandler(p, w, r); err == nil {
		t.Errorf("No error for out-of-range value")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("Out-of-range value status is %d, expected %d", w.Code, http.StatusBadRequest)
	}
}

func TestSolveHandler(t *testing.T) {
	p := helperRaw(t, 3, []int{0, 1, 2, 3, 5, 4})
	w, r := helperPost("")
	if err := SolveHandler(p, w, r); err != nil {
		t.Fatalf("SolveHandler failed: %v", err)
	}
	var body struct {
		Moves []int `json:"moves"`
	}
	if e := json.NewDecoder(w.Body).Decode(&body); e != nil {
		t.Fatalf("SolveHandler response didn't decode: %v", e)
	}
	if !reflect.DeepEqual(body.Moves, []int{4}) {
		t.Errorf("SolveHandler moves are %v, expected [4]", body.Moves)
	}
}

func TestResetHandler(t *testing.T) {
	p := helperRaw(t, 3, []int{1, 2, 0, 3, 4, 5})
	// explicit values reset to that arrangement
	w, r := helperPost(`{"width": 3, "values": [0, 1, 2, 3, 4, 5]}`)
	next, err := ResetHandler(p, nil, w, r)
	if err != nil {
		t.Fatalf("ResetHandler failed: %v", err)
	}
	if next == nil || !next.Solved() {
		t.Errorf("Reset to solved gave %v", next)
	}
	// empty values ask for a scramble
	scrambled := helperRaw(t, 3, []int{2, 0, 1, 3, 4, 5})
	called := false
	scrambler := func(p Puzzle) Puzzle {
		called = true
		return scrambled
	}
	w, r = helperPost(`{}`)
	next, err = ResetHandler(p, scrambler, w, r)
	if err != nil {
		t.Fatalf("ResetHandler scramble failed: %v", err)
	}
	if !called {
		t.Errorf("ResetHandler never called the scrambler")
	}
	if next == nil || next.Key() != scrambled.Key() {
		t.Errorf("ResetHandler ignored the scrambler's puzzle")
	}
	// unsolvable arrangements are rejected
	w, r = helperPost(`{"width": 3, "values": [1, 0, 2, 3, 4, 5]}`)
	if _, err := ResetHandler(p, nil, w, r); err == nil {
		t.Errorf("No error resetting to unsolvable arrangement")
	} else if w.Code != http.StatusBadRequest {
		t.Errorf("Unsolvable reset status is %d, expected %d", w.Code, http.StatusBadRequest)
	}
}
