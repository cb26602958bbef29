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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eseidel/slide-puzzle/puzzle"
)

/*

entries

*/

type dataFunction func(ctx context.Context, tx pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/slidepuzzle?sslmode=disable"
	}
	ctx := context.Background()

	// open the database, defer the close
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

sample boards

Each sample's starting arrangement is produced by clicking tiles
on a solved board, so the samples are solvable by construction.

*/

type sampleBoard struct {
	id     string
	name   string
	width  int
	height int
	clicks []int // clicks applied to the solved arrangement
}

var sampleBoards = []sampleBoard{
	{"easy-3x3", "Easy 3x3", 3, 3, []int{7, 4}},
	{"classic-4x4", "Classic 4x4", 4, 4, []int{12, 0, 3}},
	{"wide-5x3", "Wide 5x3", 5, 3, []int{10, 0}},
}

// values computes the sample's starting arrangement.
func (sb sampleBoard) values() ([]int32, error) {
	p, err := puzzle.Solved(sb.width, sb.height)
	if err != nil {
		return nil, fmt.Errorf("Couldn't make solved %dx%d board: %v", sb.width, sb.height, err)
	}
	for _, v := range sb.clicks {
		next, moved := p.Click(v)
		if !moved {
			return nil, fmt.Errorf("Sample board %q: click of %d on %v didn't move",
				sb.id, v, p.Values())
		}
		p = next
	}
	values := p.Values()
	stored := make([]int32, len(values))
	for i, v := range values {
		stored[i] = int32(v)
	}
	return stored, nil
}

// insertSamples: save the sample boards to the database
func insertSamples(ctx context.Context, tx pgx.Tx) error {
	for _, sb := range sampleBoards {
		values, err := sb.values()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO boards (boardId, name, width, height, valueList, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6)",
			sb.id, sb.name, int32(sb.width), int32(sb.height), values, time.Now())
		if err != nil {
			return fmt.Errorf("Database error saving board %q: %v", sb.id, err)
		}
	}
	return nil
}

// deleteSamples: remove the sample boards from the database
func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	for _, sb := range sampleBoards {
		_, err := tx.Exec(ctx, "DELETE FROM boards WHERE boardId = $1", sb.id)
		if err != nil {
			return fmt.Errorf("Database error deleting board %q: %v", sb.id, err)
		}
	}
	return nil
}
