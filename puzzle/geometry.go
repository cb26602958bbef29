package puzzle

/*

Board geometries

A geometry is just the rectangular shape of a board: its width,
height, and cell count.  Every puzzle value carries its geometry,
and all coordinate arithmetic goes through it.

*/

// Geometry limits.  The smallest board we allow is 3 wide with 6
// cells; anything smaller has a trivial or degenerate move graph.
const (
	MinWidth  = 3
	MinLength = 6
)

// packedLength is the largest cell count the packed storage
// strategy can hold: 16 values of 4 bits each in a uint64.
const packedLength = 16

// A Point locates a cell on the board.  X is the column (0 at
// the left), Y is the row (0 at the top).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// A geometry holds validated board dimensions.  Geometries are
// immutable values, freely copied between puzzle instances.
type geometry struct {
	width  int
	height int
	length int
}

// boardGeometry validates explicit dimensions.
func boardGeometry(width, height int) (geometry, error) {
	if width < MinWidth {
		return geometry{}, tooSmallError(WidthAttribute, width, MinWidth)
	}
	if width*height < MinLength {
		return geometry{}, tooSmallError(LengthAttribute, width*height, MinLength)
	}
	return geometry{width, height, width * height}, nil
}

// sourceGeometry validates a width against the length of a
// source arrangement, deriving the height.
func sourceGeometry(width, srclen int) (geometry, error) {
	if width < MinWidth {
		return geometry{}, tooSmallError(WidthAttribute, width, MinWidth)
	}
	if srclen < MinLength {
		return geometry{}, tooSmallError(LengthAttribute, srclen, MinLength)
	}
	if srclen%width != 0 {
		return geometry{}, Error{
			Scope:     GeometryScope,
			Structure: AttributeValueStructure,
			Attribute: LengthAttribute,
			Condition: NotRectangularCondition,
			Values:    ErrorData{srclen, width},
		}
	}
	return geometry{width, srclen / width, srclen}, nil
}

// index maps a point to its cell index in reading order.
func (g geometry) index(p Point) int {
	return p.Y*g.width + p.X
}

// point maps a cell index to its board coordinates.
func (g geometry) point(i int) Point {
	return Point{i % g.width, i / g.width}
}

// inBounds reports whether a point lies on the board.
func (g geometry) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// openValue is the designated blank for this geometry: the
// largest value on the board.
func (g geometry) openValue() int {
	return g.length - 1
}

/*

Errors

*/

// tooSmallError returns an Error for an argument below its minimum.
func tooSmallError(attr ErrorAttribute, val, min int) Error {
	return Error{
		Scope:     GeometryScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: TooSmallCondition,
		Values:    ErrorData{val, min},
	}
}

// rangeError returns an Error that describes an out-of-range argument.
func rangeError(attr ErrorAttribute, val int, min int, max int) Error {
	err := Error{
		Scope:     GeometryScope,
		Structure: AttributeValueStructure,
		Attribute: attr,
		Condition: TooLargeCondition,
		Values:    ErrorData{val, max},
	}
	if val < min {
		err.Condition = TooSmallCondition
		err.Values[1] = min
	}
	return err
}

// indexError reports an out-of-range cell index or tile value.
// These are precondition violations, so callers panic with the
// result rather than returning it.
func indexError(attr ErrorAttribute, val, max int) Error {
	err := rangeError(attr, val, 0, max)
	err.Scope = InternalScope
	err.Message = err.Error()
	return err
}

// coordinateError reports an off-board coordinate.  As with
// indexError, callers panic with the result.
func coordinateError(p Point) Error {
	err := Error{
		Scope:     InternalScope,
		Structure: AttributeValueStructure,
		Attribute: CoordinateAttribute,
		Condition: GeneralCondition,
		Values:    ErrorData{p, "not on the board"},
	}
	err.Message = err.Error()
	return err
}
