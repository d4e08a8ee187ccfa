// Package state holds the visualizer's view of one solved instance.
// Rewritten from internal/vis/state/state.go for the grid/integer-time
// domain: positions are gridworld.Coord on a fixed-step path rather
// than continuous core.Pos values read off a variable-length
// time-annotated vertex path, so CurrentPositions only needs to
// interpolate between two adjacent integer ticks, never search a
// vertex-time list for the active segment.
package state

import (
	"github.com/orangedot/mapf-cbs/internal/conflict"
	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/ioformat"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// State is everything internal/viz needs to render one solved
// instance: the grid, the agents' declared names/endpoints, their
// solved paths, and any conflicts found in that solution (normally
// none, since a CBS solution is conflict-free; for a solution file
// that does contain one, the first conflict found is kept).
type State struct {
	Grid      *gridworld.Grid
	Agents    []ioformat.Agent
	Paths     []search.Path
	Conflicts []conflict.Conflict
	Playback  *PlaybackState
}

// New builds viewer state for a solved instance.
func New(grid *gridworld.Grid, agents []ioformat.Agent, paths []search.Path) *State {
	makespan := 0
	for _, p := range paths {
		if c := len(p) - 1; c > makespan {
			makespan = c
		}
	}
	conf, found := conflict.FindFirstConflict(paths)
	var conflicts []conflict.Conflict
	if found {
		conflicts = []conflict.Conflict{conf}
	}
	return &State{
		Grid:      grid,
		Agents:    agents,
		Paths:     paths,
		Conflicts: conflicts,
		Playback:  NewPlaybackState(makespan),
	}
}

// FloatPos is a sub-cell screen position, used only for smooth
// interpolated motion between two adjacent integer ticks; it is never
// fed back into search or conflict detection, which stay on exact
// gridworld.Coord.
type FloatPos struct{ X, Y float64 }

// CurrentPositions returns every agent's (possibly interpolated)
// position at the current playback tick.
func (s *State) CurrentPositions() []FloatPos {
	positions := make([]FloatPos, len(s.Paths))
	for i, path := range s.Paths {
		positions[i] = interpolate(path, s.Playback.CurrentTime)
	}
	return positions
}

// interpolate linearly blends between path[floor(t)] and
// path[ceil(t)].
func interpolate(path search.Path, t float64) FloatPos {
	if len(path) == 0 {
		return FloatPos{}
	}
	last := len(path) - 1
	if t <= 0 {
		return floatPos(path[0])
	}
	if t >= float64(last) {
		return floatPos(path[last])
	}
	i := int(t)
	frac := t - float64(i)
	a, b := floatPos(path[i]), floatPos(path[i+1])
	return FloatPos{
		X: a.X + frac*(b.X-a.X),
		Y: a.Y + frac*(b.Y-a.Y),
	}
}

func floatPos(c gridworld.Coord) FloatPos {
	return FloatPos{X: float64(c.X), Y: float64(c.Y)}
}

// PathHistory returns the positions an agent has already visited up to
// the current tick, plus its current interpolated position, for
// drawing a fading trail.
func (s *State) PathHistory(agentIndex int) []FloatPos {
	if agentIndex < 0 || agentIndex >= len(s.Paths) {
		return nil
	}
	path := s.Paths[agentIndex]
	var history []FloatPos
	for t, c := range path {
		if float64(t) > s.Playback.CurrentTime {
			break
		}
		history = append(history, floatPos(c))
	}
	if len(history) > 0 {
		history = append(history, interpolate(path, s.Playback.CurrentTime))
	}
	return history
}
