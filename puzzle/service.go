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
)

/*

Puzzle creation

*/

// NewHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and builds a puzzle from it.  The new
// puzzle's State is sent as a 200 response, and the puzzle
// itself is returned to the golang caller.  Bad summaries get a
// 400 response and an error return.
func NewHandler(w http.ResponseWriter, r *http.Request) (Puzzle, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	if e := dec.Decode(&summary); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	p, e := FromSummary(&summary)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"NewHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return p, StateHandler(p, w, r)
}

/*

Puzzle download methods

*/

// StateHandler responds with the puzzle's state.  If we can't
// encode the response to the client successfully, we give both
// the client and the golang caller an Error response.
func StateHandler(p Puzzle, w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(stateOf(p), http.StatusOK, w, r)
}

// SummaryHandler responds with the puzzle's summary.
func SummaryHandler(p Puzzle, w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(p.Summary(), http.StatusOK, w, r)
}

// SolveHandler runs the solver on the puzzle and responds with
// the ordered list of tile values to click.  Unsolvable
// arrangements get a 400 response carrying the search Error.
func SolveHandler(p Puzzle, w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	solution, e := NewSolver(p).Solve()
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return writeError(errorFormatError, ErrorData{"SolveHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return writeJSON(err, http.StatusBadRequest, w, r)
	}
	return writeJSON(struct {
		Moves []int `json:"moves"`
	}{solution.Moves()}, http.StatusOK, w, r)
}

/*

Puzzle updates

*/

// ClickHandler is a POST handler that applies a posted Move to a
// puzzle.  The client gets an Update: Moved false when the tile
// wasn't movable (a normal outcome, still a 200), Moved true
// with the new state otherwise.  The golang caller gets the new
// puzzle, or nil when nothing moved.
func ClickHandler(p Puzzle, w http.ResponseWriter, r *http.Request) (Puzzle, error) {
	if p == nil {
		return nil, writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	dec := json.NewDecoder(r.Body)
	var move Move
	if e := dec.Decode(&move); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	if move.Value < 0 || move.Value >= p.Length() {
		err := rangeError(ValueAttribute, move.Value, 0, p.Length()-1)
		err.Scope = ArgumentScope
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	next, moved := p.Click(move.Value)
	if !moved {
		return nil, writeJSON(Update{Moved: false}, http.StatusOK, w, r)
	}
	state := stateOf(next)
	return next, writeJSON(Update{Moved: true, State: &state}, http.StatusOK, w, r)
}

// ResetHandler is a POST handler that rebuilds a puzzle.  A
// posted Summary with values resets to that exact arrangement
// (which must be a solvable permutation); an empty body or empty
// values ask for a fresh scramble, produced with the supplied
// scrambler.  The caller gets the new puzzle.
func ResetHandler(p Puzzle, scrambler func(Puzzle) Puzzle, w http.ResponseWriter, r *http.Request) (Puzzle, error) {
	if p == nil {
		return nil, writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	var summary Summary
	if r.Body != nil {
		// an empty or absent body means "scramble me"
		_ = json.NewDecoder(r.Body).Decode(&summary)
	}
	if len(summary.Values) == 0 {
		next := scrambler(p)
		return next, StateHandler(next, w, r)
	}
	next, e := p.Reset(summary.Values)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"ResetHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return next, StateHandler(next, w, r)
}

// stateOf assembles the full wire state for a puzzle.
func stateOf(p Puzzle) State {
	return State{
		Width:    p.Width(),
		Height:   p.Height(),
		Values:   p.Values(),
		Open:     p.OpenPosition(),
		Fitness:  p.Fitness(),
		Solvable: p.Solvable(),
		Solved:   p.Solved(),
	}
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	noPuzzleError
	errorFormatError
)

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case noPuzzleError:
		status = http.StatusNotFound
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeValueStructure,
			Attribute: URLAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				"Unknown handler error type",
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an Encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means that the JSON encoding system is
			// dead, so pseudo-encode the error by hand by
			// returning the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(`"` + err.Error() + `"`)
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
