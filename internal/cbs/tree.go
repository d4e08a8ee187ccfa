package cbs

import (
	"container/heap"
	"context"
	"errors"

	"github.com/orangedot/mapf-cbs/internal/conflict"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// Tree is the best-first frontier of CBSNodes that drives the
// split-on-conflict loop.
type Tree struct {
	open       *nodeHeap
	closed     []*Node // retained only as the tree's audit/deferred-destruction log
	depthLimit int
	usePCAStar bool
	seq        int
}

// NewTree builds a Tree rooted at the given initial assignment.
func NewTree(root *Node, depthLimit int, usePCAStar bool) *Tree {
	t := &Tree{
		open:       &nodeHeap{},
		depthLimit: depthLimit,
		usePCAStar: usePCAStar,
	}
	heap.Push(t.open, &heapEntry{node: root, seq: t.seq})
	t.seq++
	return t
}

// Closed returns the log of popped-and-expanded nodes, in pop order.
// cmd/mapfcbs's run command logs its length.
func (t *Tree) Closed() []*Node { return t.closed }

// Solve runs the CBS main loop: pop the min-cost node,
// detect a conflict, and either return the node (conflict-free) or
// split into two children, each adding one agent's constraint. A
// child whose single-agent replan can't produce a path under its
// constraints is a dead branch and is skipped silently, whether the
// cause is an empty open heap (ErrOutOfNodes) or the depth limit
// (ErrSearchDepthExceeded). Any other error is fatal and propagates
// immediately. Once every branch has died this way, the frontier
// empties and Solve reports ErrNoSolution.
func (t *Tree) Solve(ctx context.Context) (*Node, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, search.ErrTimeLimitExceeded
		default:
		}

		if t.open.Len() == 0 {
			return nil, ErrNoSolution
		}
		entry := heap.Pop(t.open).(*heapEntry)
		node := entry.node

		conf, found := conflict.FindFirstConflict(node.Paths)
		if !found {
			return node, nil
		}
		t.closed = append(t.closed, node)

		for _, branch := range [2]struct {
			agentID    int
			constraint search.Constraint
		}{
			{conf.AgentI, conf.ConstraintI},
			{conf.AgentJ, conf.ConstraintJ},
		} {
			child, err := node.Child(ctx, branch.agentID, branch.constraint, t.depthLimit, t.usePCAStar)
			if err != nil {
				if errors.Is(err, search.ErrOutOfNodes) || errors.Is(err, search.ErrSearchDepthExceeded) {
					continue // this branch's agent has no path under its constraints; try the other
				}
				return nil, err
			}
			heap.Push(t.open, &heapEntry{node: child, seq: t.seq})
			t.seq++
		}
	}
}

// heapEntry pairs a Node with its push sequence number so equal-cost
// ties break on push order, "Ordering".
type heapEntry struct {
	node *Node
	seq  int
}

// nodeHeap is a container/heap min-heap of CBSNodes ordered by
// makespan cost, push-order tie-break.
type nodeHeap []*heapEntry

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].node.Cost != h[j].node.Cost {
		return h[i].node.Cost < h[j].node.Cost
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*heapEntry)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
