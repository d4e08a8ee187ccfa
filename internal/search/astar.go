package search

import (
	"container/heap"
	"context"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// AgentSearch is the time-expanded A* search for one agent over a
// shared Grid, respecting a per-agent constraint set. Grounded
// line-for-line on original_source/MS_Project/AStar.cc
// (get_successors, calc_cost, find_solution), restructured with Go
// error returns instead of the original's exception taxonomy.
type AgentSearch struct {
	grid  *gridworld.Grid
	start gridworld.Coord
	goal  gridworld.Coord

	constraints map[Position]struct{}

	open     *NodeStore
	closed   *NodeStore
	openHeap *nodeHeap

	goalNode *SearchNode

	agentID  int
	observer Observer
}

// NewAgentSearch builds a fresh per-agent search rooted at start, with
// the given constraint set (copied).
func NewAgentSearch(grid *gridworld.Grid, agentID int, start, goal gridworld.Coord, constraints map[Position]struct{}, obs Observer) *AgentSearch {
	s := &AgentSearch{
		grid:        grid,
		start:       start,
		goal:        goal,
		constraints: copyConstraints(constraints),
		open:        newNodeStore(),
		closed:      newNodeStore(),
		openHeap:    &nodeHeap{},
		agentID:     agentID,
		observer:    observerOrNoop(obs),
	}
	root := newSearchNode(Position{Coord: start, T: 0}, goal)
	s.open.Put(root)
	heap.Push(s.openHeap, root)
	return s
}

func copyConstraints(in map[Position]struct{}) map[Position]struct{} {
	out := make(map[Position]struct{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Start returns the agent's start coord.
func (s *AgentSearch) Start() gridworld.Coord { return s.start }

// Goal returns the agent's goal coord.
func (s *AgentSearch) Goal() gridworld.Coord { return s.goal }

// Constraints returns the live constraint set (not a copy).
func (s *AgentSearch) Constraints() map[Position]struct{} { return s.constraints }

// Cost returns goal_node.T, the path length minus one. Valid only
// after a successful Solve.
func (s *AgentSearch) Cost() int {
	if s.goalNode == nil {
		return 0
	}
	return s.goalNode.pos.T
}

// Solve runs (or resumes) the main A* loop and returns
// the reconstructed path. The result is memoised: a second call
// returns the cached path without resuming the search.
func (s *AgentSearch) Solve(ctx context.Context, depthLimit int) (Path, error) {
	if s.goalNode != nil {
		return s.reconstructPath()
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ErrTimeLimitExceeded
		default:
		}

		if s.openHeap.Len() == 0 {
			return nil, ErrOutOfNodes
		}
		cur := heap.Pop(s.openHeap).(*SearchNode)
		if cur.tombstoned {
			continue
		}
		stored, ok := s.open.Get(cur.pos)
		if !ok || stored != cur {
			// Already expanded into CLOSED (or superseded); this is
			// a stale heap duplicate, invariant 4.
			continue
		}

		if cur.pos.Coord == s.goal {
			s.goalNode = cur
			// Push back so PCA* may later find and remove it.
			heap.Push(s.openHeap, cur)
			s.observer.OnGoalReached(s.agentID, cur.pos)
			return s.reconstructPath()
		}

		if cur.pos.T >= depthLimit {
			return nil, ErrSearchDepthExceeded
		}

		s.expand(cur)
		s.observer.OnNodeExpanded(s.agentID, cur.pos)

		s.closed.Put(cur)
		s.open.Delete(cur.pos)
	}
}

// expand generates the nine successors of cur and links or creates
// a node for each.
func (s *AgentSearch) expand(cur *SearchNode) {
	for _, off := range neighborOffsets {
		nx := int(cur.pos.Coord.X) + off.dx
		ny := int(cur.pos.Coord.Y) + off.dy
		if nx < 0 || ny < 0 {
			continue
		}
		childCoord := gridworld.Coord{X: uint16(nx), Y: uint16(ny)}
		if !s.grid.Passable(childCoord) {
			continue
		}
		childPos := Position{Coord: childCoord, T: cur.pos.T + 1}
		if _, forbidden := s.constraints[childPos]; forbidden {
			continue
		}

		if existing, ok := s.open.Get(childPos); ok {
			existing.addParent(off)
			continue
		}
		if existing, ok := s.closed.Get(childPos); ok {
			existing.addParent(off)
			continue
		}

		child := newSearchNode(childPos, s.goal)
		child.addParent(off)
		s.open.Put(child)
		heap.Push(s.openHeap, child)
	}
}

// reconstructPath walks the goal node's parent chain back to the root,
// picking any one recorded parent at each step (path validity does not
// depend on which).
func (s *AgentSearch) reconstructPath() (Path, error) {
	var rev Path
	cur := s.goalNode
	for {
		rev = append(rev, cur.pos.Coord)
		if cur.pos.T == 0 {
			break
		}
		parents := cur.parentCoords()
		if len(parents) == 0 {
			return nil, ErrInternal
		}
		parentPos := Position{Coord: parents[0], T: cur.pos.T - 1}
		parent, ok := s.closed.Get(parentPos)
		if !ok {
			parent, ok = s.open.Get(parentPos)
		}
		if !ok {
			return nil, ErrInternal
		}
		cur = parent
	}
	path := make(Path, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path, nil
}
