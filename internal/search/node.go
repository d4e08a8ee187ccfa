package search

import (
	"math"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// SearchNode is one A* node: a time-expanded position plus its cost
// and multi-parent bitmap. Many time-indexed predecessors can reach
// the same (coord, t), so parents is a set, not a single pointer.
type SearchNode struct {
	pos Position
	// cost is g+h: g = pos.T, h = Euclidean distance coord→goal.
	cost float64
	// parentMask is a bitmap over the 9 neighbour offsets {-1,0,+1}²
	// relative to pos.Coord — one bit per possible parent. It also
	// doubles as a reference count: decrement = clear bit, zero bits
	// remaining means the node is truly unreachable.
	parentMask uint16
	// tombstoned marks a heap entry that has been logically removed
	// but not physically erased; it is skipped when popped.
	tombstoned bool
}

func newSearchNode(pos Position, goal gridworld.Coord) *SearchNode {
	dx := float64(int(pos.Coord.X) - int(goal.X))
	dy := float64(int(pos.Coord.Y) - int(goal.Y))
	h := math.Hypot(dx, dy)
	return &SearchNode{
		pos:  pos,
		cost: float64(pos.T) + h,
	}
}

// Pos returns the node's time-expanded position.
func (n *SearchNode) Pos() Position { return n.pos }

// Cost returns f(n) = t + Euclidean distance to goal.
func (n *SearchNode) Cost() float64 { return n.cost }

// addParent records parent as reachable to n via the move parent→n.
// off is the offset applied to parent to reach n.Coord.
func (n *SearchNode) addParent(off neighborOffset) {
	n.parentMask |= 1 << bitIndex(off.dx, off.dy)
}

// clearParent removes the single parent relation identified by
// parentCoord (the node's coord before the move that reached n). It is
// a no-op if that relation was not recorded.
func (n *SearchNode) clearParent(parentCoord, childCoord gridworld.Coord) {
	dx := int(childCoord.X) - int(parentCoord.X)
	dy := int(childCoord.Y) - int(parentCoord.Y)
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return
	}
	n.parentMask &^= 1 << bitIndex(dx, dy)
}

// parentCoords enumerates the coords of every recorded parent of n.
func (n *SearchNode) parentCoords() []gridworld.Coord {
	var parents []gridworld.Coord
	for bit := uint(0); bit < 9; bit++ {
		if n.parentMask&(1<<bit) == 0 {
			continue
		}
		off := offsetForBit(bit)
		parents = append(parents, gridworld.Coord{
			X: uint16(int(n.pos.Coord.X) - off.dx),
			Y: uint16(int(n.pos.Coord.Y) - off.dy),
		})
	}
	return parents
}

// hasParents reports whether any parent bit remains set.
func (n *SearchNode) hasParents() bool { return n.parentMask != 0 }

// nodeHeap is a container/heap min-heap of *SearchNode ordered by
// (cost, x, y, t) — the tie-break is load-bearing: two live nodes equal
// on all four fields are a programmer error. A tombstoned entry may share
// its position with the live node that replaced it; it sorts first.
type nodeHeap []*SearchNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.pos.Coord.X != b.pos.Coord.X {
		return a.pos.Coord.X < b.pos.Coord.X
	}
	if a.pos.Coord.Y != b.pos.Coord.Y {
		return a.pos.Coord.Y < b.pos.Coord.Y
	}
	if a.pos.T != b.pos.T {
		return a.pos.T < b.pos.T
	}
	if a.tombstoned != b.tombstoned {
		return a.tombstoned
	}
	// (cost, x, y, t) uniquely identifies a live search node; reaching
	// here means two distinct nodes collided, which is a bug upstream.
	panic("search: heap entries equal on (cost, x, y, t)")
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(*SearchNode))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
