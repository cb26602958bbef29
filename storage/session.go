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
	"encoding/json"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/eseidel/slide-puzzle/puzzle"
)

// A Session tracks the user's progress on his current board.
// Behind the scenes, we persist the arrangement at every step the
// user has taken, so he can go back (undo) prior moves.
type Session struct {
	// these elements are persisted as part of the session
	SID     string // session ID
	BID     string // ID of the board being played
	Step    int    // current step
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// these elements are persisted in the steps, serialized as JSON
	Summary *puzzle.Summary `redis:"-"` // arrangement at the current step
	Puzzle  puzzle.Puzzle   `redis:"-"` // puzzle for the current step
}

/*

session manipulation

*/

// StartBoard: set the board ID for the current session and clear
// any existing steps.  If the given board ID is empty, try using
// the session's current board ID.  If the given board ID is the
// special value "default" (or unknown), use the default board.
func (session *Session) StartBoard(bid string) {
	// change to the given bid, making sure it's valid
	if bid == "" {
		bid = session.BID
	} else if bid == "default" {
		bid = defaultBoardID
	}
	be := lookupBoardEntry(bid)
	if be == nil {
		bid = defaultBoardID
		be = lookupBoardEntry(bid)
	}
	session.BID = bid
	session.Summary = be.summary()

	// make the puzzle for the summary
	p, e := puzzle.FromSummary(session.Summary)
	if e != nil {
		log.Printf("Failed to create puzzle for board %q: %v", bid, e)
		panic(e)
	}
	session.Puzzle = p

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to start solving board %q.", session.SID, session.BID)
}

// AddStep: add a new current step with the given puzzle, which
// becomes the session's puzzle.
func (session *Session) AddStep(p puzzle.Puzzle) {
	summary := p.Summary()
	session.Summary = &summary
	session.Puzzle = p

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s:%q step %d: %v",
				session.SID, session.BID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v:%v step %d.", session.SID, session.BID, session.Step)
}

// RemoveStep: remove the last step and restore the prior step's
// puzzle.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the puzzle from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	session.Summary = nil // free the current step's summary
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s:%q step %d: %v",
				session.SID, session.BID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v:%v to step %d.", session.SID, session.BID, session.Step)
}

// Lookup: lookup a session for an ID
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q: %v", session.SID, err)
			return err
		}
		log.Printf("No redis saved state for session %q", session.SID)
		return nil
	}
	rdExecute(body)
	return
}

// LoadStep: load the current step from the saved summary
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s:%q step %d: %v",
				session.SID, session.BID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

/*

serialization of puzzle state into and out of the cache

*/

// marshalStep - get JSON for the current step
func (session *Session) marshalStep() []byte {
	bytes, err := json.Marshal(session.Summary)
	if err != nil {
		log.Printf("Failed to marshal summary of %s:%q step %d (%+v) as JSON: %v",
			session.SID, session.BID, session.Step, *session.Summary, err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - get puzzle for the saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var summary *puzzle.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s:%q step %d: %v",
			session.SID, session.BID, session.Step, err)
		panic(err)
	}
	session.Summary = summary
	session.Puzzle, err = puzzle.FromSummary(session.Summary)
	if err != nil {
		log.Printf("Failed to create puzzle for %s:%q step %d (%+v): %v",
			session.SID, session.BID, session.Step, *session.Summary, err)
		panic(err)
	}
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return rdEnv + ":SID:" + session.SID
}

// stepsKey - returns the key for the session's step array
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}
