// Package conflict scans the current solution paths of all agents and
// reports the first vertex or swap conflict. Conflicts are compared by
// exact integer (coord, t) struct equality, never a hash or
// float-time interpolation.
package conflict

import "github.com/orangedot/mapf-cbs/internal/search"

// Kind distinguishes a vertex conflict from a swap (edge) conflict.
type Kind int

const (
	Vertex Kind = iota
	Swap
)

// Conflict is the pair (agent_i, constraint_i, agent_j, constraint_j)
// that a vertex or swap collision produces. For a vertex conflict both
// constraints are the shared (coord, t). For a swap, each agent's
// constraint is its own destination (coord, t+1) — a destination-based
// formulation, chosen over an edge-identity one so a constraint is
// always "don't be at this coord at this time" regardless of kind.
type Conflict struct {
	Kind        Kind
	AgentI      int
	ConstraintI search.Constraint
	AgentJ      int
	ConstraintJ search.Constraint
}

// FindFirstConflict walks each agent's path in agent-id order over a
// shared time-indexed occupancy map and returns the first conflict
// found, or false if the paths are collision-free. Determinism matters
// for test reproducibility.
func FindFirstConflict(paths []search.Path) (Conflict, bool) {
	occ := make(map[search.Position]int)

	for i, path := range paths {
		for t := 1; t < len(path); t++ {
			prev := path[t-1]
			curr := path[t]

			currPos := search.Position{Coord: curr, T: t}
			if holder, ok := occ[currPos]; ok && holder != i {
				return Conflict{
					Kind:        Vertex,
					AgentI:      i,
					ConstraintI: currPos,
					AgentJ:      holder,
					ConstraintJ: currPos,
				}, true
			}

			prevArrival := search.Position{Coord: prev, T: t}
			currPriorOccupant := search.Position{Coord: curr, T: t - 1}
			if h1, ok1 := occ[prevArrival]; ok1 && h1 != i {
				if h2, ok2 := occ[currPriorOccupant]; ok2 && h2 == h1 {
					return Conflict{
						Kind:        Swap,
						AgentI:      i,
						ConstraintI: currPos,
						AgentJ:      h1,
						ConstraintJ: prevArrival,
					}, true
				}
			}

			occ[currPos] = i
		}
	}

	return Conflict{}, false
}
