package puzzle

/*

Sliding puzzle representation

Two storage strategies sit behind the Puzzle interface.  Boards
of up to 16 cells hold each value in a 4-bit nibble of a single
uint64, which makes copying, equality, and keying cheap; larger
boards fall back to one array slot per cell.  The strategy is
chosen by cell count at the factory boundary and the two are
functionally identical, so all the derived operations (moves,
heuristics, rendering) are written once against the interface.

*/

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// build assembles a puzzle around an already-validated
// arrangement, picking the storage strategy by cell count.  The
// caller yields ownership of values.
func build(g geometry, values []int) Puzzle {
	if g.length <= packedLength {
		var bits uint64
		for i, v := range values {
			bits |= uint64(v) << (4 * uint(i))
		}
		return packedPuzzle{g, bits}
	}
	vals := make([]uint16, len(values))
	for i, v := range values {
		vals[i] = uint16(v)
	}
	return arrayPuzzle{g, vals}
}

/*

Packed storage strategy

*/

// A packedPuzzle stores one 4-bit value per cell in a uint64.
// It is a two-word value type, so copies are free and the bits
// double as a content hash.
type packedPuzzle struct {
	geo  geometry
	bits uint64
}

func (p packedPuzzle) Width() int  { return p.geo.width }
func (p packedPuzzle) Height() int { return p.geo.height }
func (p packedPuzzle) Length() int { return p.geo.length }

func (p packedPuzzle) Value(index int) int {
	if index < 0 || index >= p.geo.length {
		panic(indexError(IndexAttribute, index, p.geo.length-1))
	}
	return int(p.bits >> (4 * uint(index)) & 0xF)
}

func (p packedPuzzle) IndexOf(value int) int {
	if value < 0 || value >= p.geo.length {
		panic(indexError(ValueAttribute, value, p.geo.length-1))
	}
	bits := p.bits
	for i := 0; i < p.geo.length; i++ {
		if int(bits&0xF) == value {
			return i
		}
		bits >>= 4
	}
	// can't happen: every puzzle holds a full permutation
	panic(fmt.Errorf("value %d missing from packed arrangement %x", value, p.bits))
}

func (p packedPuzzle) Values() []int {
	values := make([]int, p.geo.length)
	bits := p.bits
	for i := range values {
		values[i] = int(bits & 0xF)
		bits >>= 4
	}
	return values
}

func (p packedPuzzle) Key() string {
	return keyPrefix(p.geo) + strconv.FormatUint(p.bits, 16)
}

func (p packedPuzzle) Copy() Puzzle { return p }

func (p packedPuzzle) ValueAt(pt Point) int                 { return valueAt(p, pt) }
func (p packedPuzzle) PositionOf(value int) Point           { return p.geo.point(p.IndexOf(value)) }
func (p packedPuzzle) OpenIndex() int                       { return p.IndexOf(p.geo.openValue()) }
func (p packedPuzzle) OpenPosition() Point                  { return p.geo.point(p.OpenIndex()) }
func (p packedPuzzle) IsCorrectPosition(value int) bool     { return p.IndexOf(value) == value }
func (p packedPuzzle) IncorrectTiles() int                  { return incorrectValues(p.Values()) }
func (p packedPuzzle) Fitness() int                         { return FitnessOf(p.geo.width, p.Values()) }
func (p packedPuzzle) Solvable() bool                       { return SolvableArrangement(p.geo.width, p.Values()) }
func (p packedPuzzle) Solved() bool                         { return p.Fitness() == 0 }
func (p packedPuzzle) Clickable(axis Axis) []int            { return clickable(p, axis) }
func (p packedPuzzle) Click(value int) (Puzzle, bool)       { return click(p, p.geo, value) }
func (p packedPuzzle) Reset(source []int) (Puzzle, error)   { return reset(p.geo, source) }
func (p packedPuzzle) Scramble(rnd *rand.Rand) Puzzle       { return scramble(p, p.geo, rnd) }
func (p packedPuzzle) Summary() Summary                     { return Summary{p.geo.width, p.Values()} }
func (p packedPuzzle) String() string                       { return valuesString(p) }

/*

Array storage strategy

*/

// An arrayPuzzle stores one value per slot.  It is used for
// boards with more than 16 cells, whose values no longer fit in
// nibbles.
type arrayPuzzle struct {
	geo  geometry
	vals []uint16
}

func (p arrayPuzzle) Width() int  { return p.geo.width }
func (p arrayPuzzle) Height() int { return p.geo.height }
func (p arrayPuzzle) Length() int { return p.geo.length }

func (p arrayPuzzle) Value(index int) int {
	if index < 0 || index >= p.geo.length {
		panic(indexError(IndexAttribute, index, p.geo.length-1))
	}
	return int(p.vals[index])
}

func (p arrayPuzzle) IndexOf(value int) int {
	if value < 0 || value >= p.geo.length {
		panic(indexError(ValueAttribute, value, p.geo.length-1))
	}
	for i, v := range p.vals {
		if int(v) == value {
			return i
		}
	}
	// can't happen: every puzzle holds a full permutation
	panic(fmt.Errorf("value %d missing from arrangement %v", value, p.vals))
}

func (p arrayPuzzle) Values() []int {
	values := make([]int, len(p.vals))
	for i, v := range p.vals {
		values[i] = int(v)
	}
	return values
}

func (p arrayPuzzle) Key() string {
	var b strings.Builder
	b.WriteString(keyPrefix(p.geo))
	for i, v := range p.vals {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(v)))
	}
	return b.String()
}

func (p arrayPuzzle) Copy() Puzzle {
	vals := make([]uint16, len(p.vals))
	copy(vals, p.vals)
	return arrayPuzzle{p.geo, vals}
}

func (p arrayPuzzle) ValueAt(pt Point) int                 { return valueAt(p, pt) }
func (p arrayPuzzle) PositionOf(value int) Point           { return p.geo.point(p.IndexOf(value)) }
func (p arrayPuzzle) OpenIndex() int                       { return p.IndexOf(p.geo.openValue()) }
func (p arrayPuzzle) OpenPosition() Point                  { return p.geo.point(p.OpenIndex()) }
func (p arrayPuzzle) IsCorrectPosition(value int) bool     { return p.IndexOf(value) == value }
func (p arrayPuzzle) IncorrectTiles() int                  { return incorrectValues(p.Values()) }
func (p arrayPuzzle) Fitness() int                         { return FitnessOf(p.geo.width, p.Values()) }
func (p arrayPuzzle) Solvable() bool                       { return SolvableArrangement(p.geo.width, p.Values()) }
func (p arrayPuzzle) Solved() bool                         { return p.Fitness() == 0 }
func (p arrayPuzzle) Clickable(axis Axis) []int            { return clickable(p, axis) }
func (p arrayPuzzle) Click(value int) (Puzzle, bool)       { return click(p, p.geo, value) }
func (p arrayPuzzle) Reset(source []int) (Puzzle, error)   { return reset(p.geo, source) }
func (p arrayPuzzle) Scramble(rnd *rand.Rand) Puzzle       { return scramble(p, p.geo, rnd) }
func (p arrayPuzzle) Summary() Summary                     { return Summary{p.geo.width, p.Values()} }
func (p arrayPuzzle) String() string                       { return valuesString(p) }

// keyPrefix distinguishes keys of equal arrangements on
// different geometries.
func keyPrefix(g geometry) string {
	return strconv.Itoa(g.width) + "x" + strconv.Itoa(g.height) + ":"
}

/*

Derived operations, shared by both strategies

*/

// valueAt is the coordinate form of an indexed read.
func valueAt(p Puzzle, pt Point) int {
	g := geometry{p.Width(), p.Height(), p.Length()}
	if !g.inBounds(pt) {
		panic(coordinateError(pt))
	}
	return p.Value(g.index(pt))
}

// clickable returns the values sharing the open cell's row
// and/or column, open cell excluded, in reading order.
func clickable(p Puzzle, axis Axis) []int {
	g := geometry{p.Width(), p.Height(), p.Length()}
	open := p.OpenPosition()
	var values []int
	if axis == AnyAxis || axis == ColumnAxis {
		for y := 0; y < g.height; y++ {
			if y != open.Y {
				values = append(values, p.ValueAt(Point{open.X, y}))
			}
		}
	}
	if axis == AnyAxis || axis == RowAxis {
		for x := 0; x < g.width; x++ {
			if x != open.X {
				values = append(values, p.ValueAt(Point{x, open.Y}))
			}
		}
	}
	return values
}

// click applies the shift move for a clicked tile.  A tile is
// movable when it isn't the open cell and shares a row or column
// with it.  Clicking an unmovable tile returns (nil, false).
//
// The shift walks the open cell one neighbor at a time toward
// the clicked tile, swapping as it goes: each intervening tile
// moves one cell toward the old open position, the clicked tile
// ends in the cell adjacent to its origin on that line, and the
// open cell ends where the clicked tile was.
func click(p Puzzle, g geometry, value int) (Puzzle, bool) {
	if value < 0 || value >= g.length {
		panic(indexError(ValueAttribute, value, g.length-1))
	}
	if value == g.openValue() {
		return nil, false
	}
	target := p.PositionOf(value)
	open := p.OpenPosition()
	if target.X != open.X && target.Y != open.Y {
		return nil, false
	}
	dx, dy := sign(target.X-open.X), sign(target.Y-open.Y)
	values := p.Values()
	for open != target {
		next := Point{open.X + dx, open.Y + dy}
		oi, ni := g.index(open), g.index(next)
		values[oi], values[ni] = values[ni], values[oi]
		open = next
	}
	return build(g, values), true
}

// reset validates an explicit arrangement for the receiver's
// geometry and rebuilds from it.
func reset(g geometry, source []int) (Puzzle, error) {
	if len(source) != g.length {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: SourceAttribute,
			Condition: WrongLengthCondition,
			Values:    ErrorData{len(source), g.length},
		}
	}
	if err := checkPermutation(g, source); err != nil {
		return nil, err
	}
	if !SolvableArrangement(g.width, source) {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeStructure,
			Attribute: SourceAttribute,
			Condition: NotSolvableCondition,
		}
	}
	values := make([]int, len(source))
	copy(values, source)
	return build(g, values), nil
}

// scramble rebuilds with a random arrangement that is solvable
// and in which every cell's value differs both from its own
// index and from the prior arrangement's value in that cell, so
// every tile is guaranteed to have moved.  It retries until its
// predicate holds; for legal board sizes a handful of tries
// suffice.
func scramble(p Puzzle, g geometry, rnd *rand.Rand) Puzzle {
	prior := p.Values()
	values := make([]int, g.length)
	for {
		for i := range values {
			values[i] = i
		}
		rnd.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
		if !SolvableArrangement(g.width, values) {
			continue
		}
		moved := true
		for i, v := range values {
			if v == i || v == prior[i] {
				moved = false
				break
			}
		}
		if moved {
			fresh := make([]int, len(values))
			copy(fresh, values)
			return build(g, fresh)
		}
	}
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

/*

Solvability

A sliding-puzzle arrangement can reach the solved order exactly
when a parity condition holds.  Count the inversions among the
tiles (open cell excluded) in reading order, and the number of
rows the open cell must travel to reach its solved row.  On
odd-width boards a move never changes inversion parity except in
step with the open cell's row, so the arrangement is solvable
when the inversion count is even; on even-width boards it is
solvable when the inversion parity matches the parity of the open
cell's row distance.

*/

// SolvableArrangement reports whether the arrangement (a
// permutation of [0, len(values)) with the open cell holding the
// largest value) can reach the solved order via legal moves.  It
// is independent of storage strategy.
func SolvableArrangement(width int, values []int) bool {
	open := len(values) - 1
	inversions := 0
	openRow := 0
	for i, v := range values {
		if v == open {
			openRow = i / width
			continue
		}
		for _, w := range values[i+1:] {
			if w != open && v > w {
				inversions++
			}
		}
	}
	if width%2 == 1 {
		return inversions%2 == 0
	}
	solvedRow := open / width
	rowDistance := solvedRow - openRow
	if rowDistance < 0 {
		rowDistance = -rowDistance
	}
	return inversions%2 == rowDistance%2
}

/*

Fitness

*/

// FitnessOf computes the heuristic distance to solved for an
// arrangement: the sum over misplaced tiles of the squared
// Manhattan distance to their solved cells, multiplied by the
// number of misplaced tiles.  The open cell doesn't count.  The
// result is 0 exactly when the arrangement is solved.
//
// The multiplicative term makes this heuristic inadmissible for
// strict shortest-path purposes; it is kept because it steers
// the search hard toward mostly-ordered arrangements, which is
// what makes large boards tractable.
func FitnessOf(width int, values []int) int {
	sum, misplaced := 0, 0
	for i, v := range values {
		if v == len(values)-1 || v == i {
			continue
		}
		dx := v%width - i%width
		if dx < 0 {
			dx = -dx
		}
		dy := v/width - i/width
		if dy < 0 {
			dy = -dy
		}
		sum += (dx + dy) * (dx + dy)
		misplaced++
	}
	return sum * misplaced
}

// incorrectValues counts misplaced tiles, open cell excluded.
func incorrectValues(values []int) int {
	misplaced := 0
	for i, v := range values {
		if v != len(values)-1 && v != i {
			misplaced++
		}
	}
	return misplaced
}
