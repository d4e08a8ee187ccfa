package search

import (
	"container/heap"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// ClassicRestart builds C by restarting A* from scratch with the
// parent's constraints plus q — the reference oracle against which
// PCA*'s incremental repair is checked for makespan parity.
func ClassicRestart(parent *AgentSearch, q Constraint) *AgentSearch {
	constraints := copyConstraints(parent.constraints)
	constraints[q] = struct{}{}
	return NewAgentSearch(parent.grid, parent.agentID, parent.start, parent.goal, constraints, parent.observer)
}

// RepairAfterConstraint implements PCA*: given parent P
// and a newly added constraint q, it produces C that behaves exactly
// as if P had been run from scratch with constraints(P) ∪ {q}, without
// re-expanding nodes whose reachability is unaffected. Grounded
// line-for-line on
// original_source/MS_Project/PathClearAStar.cpp.
func RepairAfterConstraint(parent *AgentSearch, q Constraint) (*AgentSearch, error) {
	c := &AgentSearch{
		grid:        parent.grid,
		start:       parent.start,
		goal:        parent.goal,
		constraints: copyConstraints(parent.constraints),
		open:        parent.open.clone(),
		closed:      parent.closed.clone(),
		agentID:     parent.agentID,
		observer:    parent.observer,
	}
	c.constraints[q] = struct{}{}
	c.rebuildHeapFrom(parent.openHeap)

	c.observer.OnRepairStarted(c.agentID, q)

	// Edge case: if q was the parent's goal position, its goal node
	// was pushed back onto the heap and so is still
	// present in the cloned C.open; removePosition below tombstones
	// and deletes it from there before PCA* runs, which is exactly
	// the "pop the goal node from the heap first" requirement — C
	// never inherits parent.goalNode, so there is no separate flag to
	// clear.
	_, qExpanded := c.closed.Get(q)
	removed := c.removePosition(q)
	if !removed {
		// q was never reached by the parent search; nothing to
		// repair, but the constraint is recorded for future searches.
		return c, nil
	}
	c.observer.OnNodeInvalidated(c.agentID, q)
	if !qExpanded {
		// q was still in OPEN: never expanded, so it has no successors.
		return c, nil
	}

	frontier := []Position{q}
	visited := map[Position]bool{q: true}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, off := range neighborOffsets {
			childPos, ok := c.candidateSuccessor(cur, off)
			if !ok {
				continue // filtered exactly as A* would filter it
			}

			_, wasClosed := c.closed.Get(childPos)
			cleared, existed := c.delSuccessor(childPos, cur.Coord)
			if !existed {
				return nil, ErrInternal
			}
			if cleared {
				c.observer.OnNodeInvalidated(c.agentID, childPos)
				// Only an expanded (CLOSED) node has successors to walk
				// into; a cleared OPEN node is dropped and not recursed.
				if wasClosed && !visited[childPos] {
					visited[childPos] = true
					frontier = append(frontier, childPos)
				}
			}
		}
	}

	c.sweepStaleOpen()
	return c, nil
}

// rebuildHeapFrom constructs c's heap from the surviving (non-deleted)
// entries of the parent's heap, re-pointed at c's own cloned node
// instances (open.clone() already deep-copied the SearchNodes; the
// heap must reference those copies, not the parent's).
func (c *AgentSearch) rebuildHeapFrom(parentHeap *nodeHeap) {
	h := make(nodeHeap, 0, parentHeap.Len())
	for _, n := range *parentHeap {
		if n == nil || n.tombstoned {
			continue
		}
		if own, ok := c.open.Get(n.pos); ok {
			h = append(h, own)
		}
	}
	c.openHeap = &h
	heap.Init(c.openHeap)
}

// removePosition deletes pos wholesale from open or closed (not a
// parent-edge clear): it is now forbidden outright by the constraint.
func (c *AgentSearch) removePosition(pos Position) bool {
	if n, ok := c.open.Get(pos); ok {
		n.tombstoned = true
		c.open.Delete(pos)
		return true
	}
	if _, ok := c.closed.Get(pos); ok {
		c.closed.Delete(pos)
		return true
	}
	return false
}

// candidateSuccessor mirrors AgentSearch.expand's filtering so PCA*
// only walks edges A* itself would have generated.
func (c *AgentSearch) candidateSuccessor(cur Position, off neighborOffset) (Position, bool) {
	nx := int(cur.Coord.X) + off.dx
	ny := int(cur.Coord.Y) + off.dy
	if nx < 0 || ny < 0 {
		return Position{}, false
	}
	coord := gridworld.Coord{X: uint16(nx), Y: uint16(ny)}
	if !c.grid.Passable(coord) {
		return Position{}, false
	}
	pos := Position{Coord: coord, T: cur.T + 1}
	if _, forbidden := c.constraints[pos]; forbidden {
		return Position{}, false
	}
	return pos, true
}

// delSuccessor attempts to delete the (child, parentCoord) parent
// relation from both C.open and C.closed.
func (c *AgentSearch) delSuccessor(child Position, parentCoord gridworld.Coord) (cleared bool, existed bool) {
	if n, ok := c.open.Get(child); ok {
		n.clearParent(parentCoord, child.Coord)
		if !n.hasParents() {
			n.tombstoned = true
			c.open.Delete(child)
			return true, true
		}
		return false, true
	}
	if n, ok := c.closed.Get(child); ok {
		n.clearParent(parentCoord, child.Coord)
		if !n.hasParents() {
			c.closed.Delete(child)
			return true, true
		}
		return false, true
	}
	return false, false
}

// sweepStaleOpen is the reconciliation sweep: remove from C.open any
// node whose every recorded parent is itself missing from both
// stores, propagating to that node's own successors, until a full
// pass removes nothing. Grounded on
// original_source/MS_Project/PathClearAStar.cpp
// remove_extra_open_nodes.
func (c *AgentSearch) sweepStaleOpen() {
	for {
		changed := false
		for pos, n := range c.open.nodes {
			if pos.T == 0 {
				continue // root has no parents by construction
			}
			orphan := true
			for _, pc := range n.parentCoords() {
				parentPos := Position{Coord: pc, T: pos.T - 1}
				if _, ok := c.closed.Get(parentPos); ok {
					orphan = false
					break
				}
				if _, ok := c.open.Get(parentPos); ok {
					orphan = false
					break
				}
			}
			if orphan {
				n.tombstoned = true
				c.open.Delete(pos)
				c.observer.OnNodeInvalidated(c.agentID, pos)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
