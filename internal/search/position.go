package search

import "github.com/orangedot/mapf-cbs/internal/gridworld"

// Position is (coord, t): the vertex of the time-expanded graph. Two
// positions are equal iff coord and t both match — Position is a plain
// comparable Go struct, used directly as a map key, with no hashing
// scheme anywhere in this package.
type Position struct {
	Coord gridworld.Coord
	T     int
}

// Constraint is a forbidden (coord, t) pair for one agent.
type Constraint = Position

// Path is a stack of coords from start to goal, one per time step,
// including repeated coords for wait actions.
type Path []gridworld.Coord

// neighborOffset is one of the nine moves Δx,Δy ∈ {-1,0,+1}.
type neighborOffset struct {
	dx, dy int
}

// neighborOffsets enumerates all nine 8-connected-plus-wait moves.
var neighborOffsets = func() [9]neighborOffset {
	var offs [9]neighborOffset
	i := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			offs[i] = neighborOffset{dx, dy}
			i++
		}
	}
	return offs
}()

// bitIndex maps an offset to its bit position in the 9-bit parent
// bitmap: (dx+1)*3 + (dy+1).
func bitIndex(dx, dy int) uint {
	return uint((dx+1)*3 + (dy + 1))
}

func offsetForBit(bit uint) neighborOffset {
	dx := int(bit)/3 - 1
	dy := int(bit)%3 - 1
	return neighborOffset{dx, dy}
}
