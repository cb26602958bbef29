package puzzle

import (
	"fmt"

	"github.com/beefsack/go-astar"
)

/*

Sliding puzzle solver

The solver doesn't implement a search algorithm of its own.  It
treats puzzle arrangements as nodes of an implicit graph - one
edge per legal click - and hands that graph to the go-astar
best-first search engine through its Pather contract: neighbor
enumeration, unit edge costs, and a heuristic distance estimate.

The engine dedups visited nodes by using them as map keys, so
nodes must be comparable values that compare equal exactly when
their arrangements are equal.  A searchNode is therefore just an
interned state key plus a pointer to the shared search space that
maps keys back to puzzles; two nodes for the same arrangement in
the same search are identical values.

The heuristic estimate between two arrangements is the
difference of their fitness scores.  That is not an admissible
bound on the real move count, so found paths are short but not
guaranteed minimal; the trade is deliberate, the fitness slope
is what keeps larger boards searchable.

*/

// A searchSpace interns every arrangement encountered during one
// search, keyed by content.  It is local to a single Solve call
// and never shared between goroutines.
type searchSpace struct {
	states map[string]Puzzle
}

// node interns a puzzle and returns its search node.
func (s *searchSpace) node(p Puzzle) searchNode {
	key := p.Key()
	if _, ok := s.states[key]; !ok {
		s.states[key] = p
	}
	return searchNode{s, key}
}

// A searchNode pairs an interned state key with its search
// space.  It carries no other state, so the search engine's
// visited map dedups arrangements by content.
type searchNode struct {
	space *searchSpace
	key   string
}

func (n searchNode) puzzle() Puzzle {
	return n.space.states[n.key]
}

// PathNeighbors returns one node per currently clickable tile.
func (n searchNode) PathNeighbors() []astar.Pather {
	p := n.puzzle()
	values := p.Clickable(AnyAxis)
	neighbors := make([]astar.Pather, 0, len(values))
	for _, v := range values {
		next, ok := p.Click(v)
		if !ok {
			// can't happen: Clickable only returns movable tiles
			panic(fmt.Errorf("clickable value %d refused a click", v))
		}
		neighbors = append(neighbors, n.space.node(next))
	}
	return neighbors
}

// PathNeighborCost is the edge cost between adjacent
// arrangements: always one click.
func (n searchNode) PathNeighborCost(to astar.Pather) float64 {
	return 1
}

// PathEstimatedCost is the heuristic distance to another
// arrangement: the difference of the two fitness scores.
func (n searchNode) PathEstimatedCost(to astar.Pather) float64 {
	d := n.puzzle().Fitness() - to.(searchNode).puzzle().Fitness()
	if d < 0 {
		d = -d
	}
	return float64(d)
}

/*

Solver and Solution

*/

// A Solver finds the move sequence that takes a puzzle to the
// solved arrangement.
type Solver struct {
	start Puzzle
}

// NewSolver returns a solver for the given puzzle.  The puzzle
// is copied, so later use of the original doesn't affect the
// solver.
func NewSolver(p Puzzle) *Solver {
	return &Solver{start: p.Copy()}
}

// Solve searches from the solver's puzzle to the solved
// arrangement of the same dimensions and returns the clicks that
// get there, in order.  An unsolvable arrangement yields a
// search Error; construction and reset guard against those, so
// callers that only build puzzles through this package will
// never see one.
func (s *Solver) Solve() (*Solution, error) {
	if s.start.Solved() {
		return &Solution{}, nil
	}
	goal, err := Solved(s.start.Width(), s.start.Height())
	if err != nil {
		return nil, err
	}
	space := &searchSpace{states: make(map[string]Puzzle)}
	from, to := space.node(s.start), space.node(goal)
	path, _, found := astar.Path(from, to)
	if !found {
		return nil, Error{
			Scope:     SearchScope,
			Structure: ScopeStructure,
			Condition: NoPathCondition,
		}
	}
	states := make([]Puzzle, len(path))
	for i, n := range path {
		states[i] = n.(searchNode).puzzle()
	}
	// the engine reports the path goal-first
	if states[0].Key() != s.start.Key() {
		for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
			states[i], states[j] = states[j], states[i]
		}
	}
	return &Solution{moves: movesBetween(states)}, nil
}

// movesBetween derives the clicked values from a path of
// arrangements: each move is the tile that sits, in one state,
// on the cell that is open in the next.
func movesBetween(states []Puzzle) []int {
	moves := make([]int, 0, len(states)-1)
	for i := 0; i+1 < len(states); i++ {
		moves = append(moves, states[i].Value(states[i+1].OpenIndex()))
	}
	return moves
}

// A Solution is the ordered sequence of tile values to click,
// exposed through a forward-only cursor.  The cursor is not safe
// for concurrent advancement.
type Solution struct {
	moves []int
	index int
}

// Len returns the total number of moves in the solution.
func (s *Solution) Len() int {
	return len(s.moves)
}

// HasNext reports whether any moves remain to be played.
func (s *Solution) HasNext() bool {
	return s.index < len(s.moves)
}

// NextMove returns the next tile value to click and advances the
// cursor.  Advancing past the last move is a programming error
// and panics.
func (s *Solution) NextMove() int {
	if s.index >= len(s.moves) {
		err := Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: CursorAttribute,
			Condition: NoMovesRemainingCondition,
			Values:    ErrorData{len(s.moves)},
		}
		err.Message = err.Error()
		panic(err)
	}
	move := s.moves[s.index]
	s.index++
	return move
}

// Moves returns a copy of the full move list, independent of the
// cursor.
func (s *Solution) Moves() []int {
	moves := make([]int, len(s.moves))
	copy(moves, s.moves)
	return moves
}
