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
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/eseidel/slide-puzzle/puzzle"
)

// defaultBoardID is the board sessions fall back to when asked
// for an empty or unknown board ID.
const defaultBoardID = "classic-4x4"

/*

board catalog

*/

// A BoardInfo is the catalog's exported description of a starting
// board.
type BoardInfo struct {
	BoardId string // unique ID for this board
	Name    string // user-facing name of the board
	Width   int    // board width
	Height  int    // board height
}

// LoadCatalog: list every stored board, in name order.
func LoadCatalog() []*BoardInfo {
	var infos []*BoardInfo
	body := func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT boardId, name, width, height FROM boards ORDER BY name")
		if err != nil {
			return fmt.Errorf("Database error listing boards: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var bi BoardInfo
			var width, height int32
			if err := rows.Scan(&bi.BoardId, &bi.Name, &width, &height); err != nil {
				return fmt.Errorf("Database error scanning board: %v", err)
			}
			bi.Width, bi.Height = int(width), int(height)
			infos = append(infos, &bi)
		}
		return rows.Err()
	}
	pgExecute(body)
	return infos
}

/*

board entries

*/

// A boardEntry is the stored form of a starting board.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type boardEntry struct {
	BoardId string // unique ID for this board
	Name    string // user-facing name of the board
	Width   int32
	Values  []int32
}

// lookupBoardEntry first checks the cache, then the database, for
// the board's entry.  If it loads from the database, it caches
// the result.  Returns nil when no such board is stored.
func lookupBoardEntry(id string) *boardEntry {
	be := &boardEntry{BoardId: id}
	if be.cacheLoad() {
		return be
	}
	// cache miss, load from database and save to cache
	if !be.databaseLoad() {
		return nil
	}
	be.cacheInsert()
	return be
}

// summary: the puzzle summary for a board's starting arrangement.
func (be *boardEntry) summary() *puzzle.Summary {
	values := make([]int, len(be.Values))
	for i, v := range be.Values {
		values[i] = int(v)
	}
	return &puzzle.Summary{Width: int(be.Width), Values: values}
}

// key: compute the cache key for a boardEntry.
func (be *boardEntry) key() string {
	return rdEnv + ":BID:" + be.BoardId
}

// cacheLoad: load an already cached board entry.  Returns whether
// the entry was found in the cache.
func (be *boardEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", be.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading boardEntry %q: %v", be.BoardId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sbe *boardEntry
	err := json.Unmarshal(bytes, &sbe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal boardEntry %q: %v", be.BoardId, err))
	}
	if sbe.BoardId != be.BoardId {
		panic(fmt.Errorf("Cached boardEntry (id: %q) found for board %q!",
			sbe.BoardId, be.BoardId))
	}
	*be = *sbe
	return true
}

// databaseLoad: load a board entry from the database.  Returns
// whether a saved entry with the given id exists.
func (be *boardEntry) databaseLoad() (found bool) {
	body := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT name, width, valueList FROM boards WHERE boardId = $1", be.BoardId)
		err := row.Scan(&be.Name, &be.Width, &be.Values)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up board %q: %v", be.BoardId, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// cacheInsert: insert a board entry into the cache.  Replaces
// any existing entry with the same id.
func (be *boardEntry) cacheInsert() {
	bytes, e := json.Marshal(be)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal boardEntry %q: %v", be.BoardId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", be.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving board entry %q: %v", be.BoardId, err)
		}
		return
	}
	rdExecute(body)
}

/*

solution cache

Solving a large board is expensive, so found solutions are kept
in the database, keyed by the arrangement they solve.  The redis
cache fronts the database the same way it does for boards.

*/

// solutionKey: the cache key for a solved arrangement.
func solutionKey(key string) string {
	return rdEnv + ":SOL:" + key
}

// LookupSolution: find a stored solution for a puzzle
// arrangement, identified by its content key.  Returns the moves
// and whether a solution was found.
func LookupSolution(key string) ([]int, bool) {
	// check the cache first
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", solutionKey(key)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading solution %q: %v", key, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) > 0 {
		var moves []int
		if err := json.Unmarshal(bytes, &moves); err != nil {
			panic(fmt.Errorf("Failed to unmarshal solution %q: %v", key, err))
		}
		return moves, true
	}

	// cache miss, try the database
	var stored []int32
	found := false
	pgBody := func(ctx context.Context, tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT moveList FROM solutions WHERE puzzleKey = $1", key)
		err := row.Scan(&stored)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up solution %q: %v", key, err)
		}
		found = true
		return nil
	}
	pgExecute(pgBody)
	if !found {
		return nil, false
	}
	moves := make([]int, len(stored))
	for i, v := range stored {
		moves[i] = int(v)
	}
	cacheSolution(key, moves)
	return moves, true
}

// SaveSolution: store a found solution for a puzzle arrangement,
// in both the database and the cache.  Saving a key that already
// has a solution just refreshes the cache.
func SaveSolution(key string, moves []int) {
	stored := make([]int32, len(moves))
	for i, v := range moves {
		stored[i] = int32(v)
	}
	body := func(ctx context.Context, tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO solutions (puzzleKey, moveList, created) VALUES ($1, $2, $3) "+
				"ON CONFLICT (puzzleKey) DO NOTHING",
			key, stored, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving solution %q: %v", key, err)
		}
		return
	}
	pgExecute(body)
	cacheSolution(key, moves)
}

// cacheSolution: insert a solution into the cache.
func cacheSolution(key string, moves []int) {
	bytes, e := json.Marshal(moves)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solution %q: %v", key, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", solutionKey(key), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving solution %q: %v", key, err)
		}
		return
	}
	rdExecute(body)
}
