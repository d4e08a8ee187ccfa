// Package cbs implements the high-level Conflict-Based Search tree:
// a best-first frontier of nodes that splits on the first detected
// conflict, ordered by a container/heap min-heap keyed on makespan
// cost.
package cbs

import (
	"context"

	"github.com/orangedot/mapf-cbs/internal/search"
)

// Node is an assignment of per-agent solutions plus the constraint
// history baked into each AgentSearch, and its makespan cost. A child
// Node owns only the AgentSearch it itself produced (NewAgentID); all
// other entries are shared references to the parent's agents — Go's
// GC retires the original's manual reference counting on destruction,
// but NewAgentID still records the logical ownership edge: which
// agent this node re-planned.
type Node struct {
	Agents     []*search.AgentSearch
	Paths      []search.Path
	NewAgentID int // -1 for the root
	Cost       int // makespan: max over agents of path length - 1
}

// NewRoot builds the root CBSNode by solving one A* search per agent
// from scratch.
func NewRoot(ctx context.Context, agents []*search.AgentSearch, depthLimit int) (*Node, error) {
	paths := make([]search.Path, len(agents))
	cost := 0
	for i, a := range agents {
		path, err := a.Solve(ctx, depthLimit)
		if err != nil {
			return nil, err
		}
		paths[i] = path
		if c := len(path) - 1; c > cost {
			cost = c
		}
	}
	return &Node{Agents: agents, Paths: paths, NewAgentID: -1, Cost: cost}, nil
}

// Child builds a CBSNode from n plus a new constraint on one agent,
// via either PCA* repair or a classic from-scratch restart. The
// returned error is whatever the underlying AgentSearch.Solve reported
// (ErrOutOfNodes or ErrSearchDepthExceeded when the constrained agent
// has no path); the caller (Tree.Solve) decides how to react.
func (n *Node) Child(ctx context.Context, agentID int, constraint search.Constraint, depthLimit int, usePCAStar bool) (*Node, error) {
	var childSearch *search.AgentSearch
	if usePCAStar {
		repaired, err := search.RepairAfterConstraint(n.Agents[agentID], constraint)
		if err != nil {
			return nil, err
		}
		childSearch = repaired
	} else {
		childSearch = search.ClassicRestart(n.Agents[agentID], constraint)
	}

	path, err := childSearch.Solve(ctx, depthLimit)
	if err != nil {
		return nil, err
	}

	agents := make([]*search.AgentSearch, len(n.Agents))
	copy(agents, n.Agents)
	agents[agentID] = childSearch

	paths := make([]search.Path, len(n.Paths))
	copy(paths, n.Paths)
	paths[agentID] = path

	cost := 0
	for _, p := range paths {
		if c := len(p) - 1; c > cost {
			cost = c
		}
	}

	return &Node{Agents: agents, Paths: paths, NewAgentID: agentID, Cost: cost}, nil
}
