// Copyright 2016 Daniel C. Brotsky.  All rights reserved.

// Package puzzle provides a model for N-tile sliding puzzles
// (generalized 15-puzzles) and operations on them.  It supports
// both a golang interface and a web interface to the puzzles.
//
// In this package, a puzzle is a rectangular board of cells,
// each holding a distinct tile value between 0 and one less than
// the cell count.  The largest value is the open cell (the
// "blank"): it has no physical tile, and sliding moves work by
// exchanging it with neighboring tiles.  Cells are designated by
// indices that start at 0 and increase left-to-right,
// top-to-bottom (English reading order), or equivalently by
// (column, row) coordinates.
//
// Clicking a tile that shares the open cell's row or column
// slides that tile - and every tile between it and the open
// cell - one cell toward where the open cell was, leaving the
// open cell where the clicked tile started.  Clicking any other
// tile has no effect.
//
// Puzzles are immutable values: every operation that changes the
// arrangement returns a new Puzzle and leaves the receiver
// untouched.  Two storage strategies sit behind the interface, a
// bit-packed one for boards of up to 16 cells and a plain array
// for larger boards; which one a caller holds is never
// observable through the interface.
package puzzle

import (
	"math/rand"
)

// Puzzle is the interface to puzzle objects, whose
// implementation is opaque.  This module implements a RESTful
// wrapper form of this API, so it's easy to build web services
// over Puzzles.
//
// Indexed reads (Value, ValueAt) treat out-of-range arguments as
// programming errors and panic with an Error value; the
// construction and reset paths validate all client input, so a
// held Puzzle can never itself be invalid.
type Puzzle interface {
	// Width and Height are the board dimensions; Length is
	// Width*Height, the total cell count.
	Width() int
	Height() int
	Length() int
	// Value returns the tile value at a cell index; ValueAt the
	// tile value at a coordinate.  Both panic when off the board.
	Value(index int) int
	ValueAt(p Point) int
	// IndexOf and PositionOf locate a tile value.  They panic
	// when the value is not on the board.
	IndexOf(value int) int
	PositionOf(value int) Point
	// OpenIndex and OpenPosition locate the open cell (the cell
	// holding Length()-1).
	OpenIndex() int
	OpenPosition() Point
	// IsCorrectPosition reports whether the cell at index value
	// currently holds value.
	IsCorrectPosition(value int) bool
	// IncorrectTiles counts the tiles (open cell excluded) that
	// are not in their solved position.
	IncorrectTiles() int
	// Fitness is the heuristic distance to solved: the sum of
	// squared Manhattan displacements of misplaced tiles,
	// multiplied by the misplaced count.  Zero exactly when the
	// puzzle is solved.
	Fitness() int
	// Solvable reports whether any sequence of moves reaches the
	// solved arrangement.
	Solvable() bool
	// Solved reports whether every tile is in its solved position.
	Solved() bool
	// Clickable returns the tile values that can currently be
	// clicked, restricted to the open cell's row or column when
	// an axis is given.
	Clickable(axis Axis) []int
	// Click slides the given tile into the open cell's line.  If
	// the tile doesn't share the open cell's row or column, Click
	// returns (nil, false): not moving is a normal outcome, not
	// an error.
	Click(value int) (Puzzle, bool)
	// Reset rebuilds the puzzle from an explicit arrangement,
	// which must be a solvable permutation of the same length.
	Reset(source []int) (Puzzle, error)
	// Scramble rebuilds the puzzle with a random arrangement
	// that is solvable and in which every tile has moved, both
	// relative to the solved order and to the prior arrangement.
	Scramble(rnd *rand.Rand) Puzzle
	// Values returns a copy of the arrangement in reading order.
	Values() []int
	// Summary returns the wire form of the puzzle.
	Summary() Summary
	// Key returns a compact encoding of the dimensions and
	// arrangement.  Equal puzzles have equal keys, so keys can
	// dedup puzzles by content in maps and caches.
	Key() string
	// Copy returns a structural copy with no shared storage.
	Copy() Puzzle
	// String renders the board as a right-aligned, row-major
	// grid of values, one row per line.
	String() string
}

// An Axis restricts Clickable to one of the open cell's lines.
type Axis int

// Constants for the click axes.
const (
	AnyAxis    Axis = iota // both the open cell's row and column
	RowAxis                // only the open cell's row
	ColumnAxis             // only the open cell's column
)

/*

Wire types

*/

// A Summary is the compact wire form of a puzzle: enough to
// reconstruct it exactly.  Summaries are what get cached and
// persisted by the storage layer.
type Summary struct {
	Width  int   `json:"width"`
	Values []int `json:"values"`
}

// The State of a puzzle gives its dimensions, arrangement, and
// derived measurements, for clients that don't want to compute
// them.
type State struct {
	Width    int   `json:"width"`
	Height   int   `json:"height"`
	Values   []int `json:"values"`
	Open     Point `json:"open"`
	Fitness  int   `json:"fitness"`
	Solvable bool  `json:"solvable"`
	Solved   bool  `json:"solved"`
}

// A Move names the tile value to click.
type Move struct {
	Value int `json:"value"`
}

// An Update is the result of a click.  Moved reports whether the
// click had any effect; State is the resulting state when it
// did.
type Update struct {
	Moved bool   `json:"moved"`
	State *State `json:"state,omitempty"`
}

/*

Construction

*/

// New returns a playable puzzle of the given dimensions: the
// solved board with two fixed clicks applied, so it starts valid
// but not solved.
func New(width, height int) (Puzzle, error) {
	p, err := Solved(width, height)
	if err != nil {
		return nil, err
	}
	// Slide the bottom row right, then the first column down.
	// On a one-row board the second click lands on the open cell
	// and is skipped.
	p, _ = p.Click(p.ValueAt(Point{0, height - 1}))
	if next, moved := p.Click(p.ValueAt(Point{0, 0})); moved {
		p = next
	}
	return p, nil
}

// Solved returns the identity arrangement of the given
// dimensions, with the open cell in the last position.
func Solved(width, height int) (Puzzle, error) {
	g, err := boardGeometry(width, height)
	if err != nil {
		return nil, err
	}
	values := make([]int, g.length)
	for i := range values {
		values[i] = i
	}
	return build(g, values), nil
}

// Raw returns a puzzle with the given width and explicit
// arrangement.  The arrangement must be a permutation of the
// values 0 through len(source)-1; it need not be solvable.
func Raw(width int, source []int) (Puzzle, error) {
	g, err := sourceGeometry(width, len(source))
	if err != nil {
		return nil, err
	}
	if err := checkPermutation(g, source); err != nil {
		return nil, err
	}
	values := make([]int, len(source))
	copy(values, source)
	return build(g, values), nil
}

// FromSummary reconstructs a puzzle from its wire form.
func FromSummary(s *Summary) (Puzzle, error) {
	if s == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: InvalidArgumentCondition,
		}
	}
	return Raw(s.Width, s.Values)
}

// checkPermutation verifies that source holds each value in
// [0, length) exactly once.
func checkPermutation(g geometry, source []int) error {
	seen := make([]bool, g.length)
	for _, v := range source {
		if v < 0 || v >= g.length || seen[v] {
			return Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: SourceAttribute,
				Condition: NotPermutationCondition,
				Values:    ErrorData{source, g.length},
			}
		}
		seen[v] = true
	}
	return nil
}
