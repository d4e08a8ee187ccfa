// Package selfcheck re-runs a fixed set of named scenarios as a
// standalone, non-testing.T suite invokable from cmd/mapfcbs's "test"
// subcommand, grounded on original_source/MS_Project/Tests.{h,cc}'s
// run_tests shape: a fixed ordered list of named checks, each
// reporting pass/fail, the whole run stopping at the first failure
// just as Tests::run_tests() short-circuits on the first false
// return. The checks cover the same six scenarios as internal/search
// and internal/cbs's _test.go files; the detour, head-on swap,
// infeasible and PCA* parity checks use the same instances as those
// tests, while the straight-line check uses a 5x5 open grid and the
// crossing check uses three agents in disjoint columns.
package selfcheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/orangedot/mapf-cbs/internal/cbs"
	"github.com/orangedot/mapf-cbs/internal/conflict"
	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// Check is one named scenario. Run reports nil on success or an error
// describing the failure.
type Check struct {
	Name string
	Run  func() error
}

// Checks returns the full ordered suite of named scenarios.
func Checks() []Check {
	return []Check{
		{"straight line, no obstacles", checkStraightLine},
		{"single constraint forces a one-step detour", checkConstrainedDetour},
		{"two agents swapping ends of a 1-wide corridor have no solution", checkHeadOnSwap},
		{"three agents crossing in disjoint lanes never conflict", checkThreeAgentCrossing},
		{"goal cut off by a blocked cell is reported as out of nodes", checkInfeasible},
		{"PCA* repair and classic restart agree on makespan", checkPCAStarParity},
	}
}

// RunAll runs every check in order, stopping at the first failure,
// calling report after each one (pass or fail) the way Tests::run_tests
// prints a line per object under test. It returns the first error
// encountered, or nil if every check passed.
func RunAll(report func(name string, err error)) error {
	for _, c := range Checks() {
		err := c.Run()
		report(c.Name, err)
		if err != nil {
			return fmt.Errorf("selfcheck: %q failed: %w", c.Name, err)
		}
	}
	return nil
}

func openGrid(w, h int) *gridworld.Grid {
	cells := make([]bool, w*h)
	for i := range cells {
		cells[i] = true
	}
	return gridworld.New(w, h, cells)
}

func coord(x, y uint16) gridworld.Coord { return gridworld.Coord{X: x, Y: y} }

func checkStraightLine() error {
	g := openGrid(5, 5)
	a := search.NewAgentSearch(g, 0, coord(0, 0), coord(4, 0), nil, nil)
	path, err := a.Solve(context.Background(), 10000)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	if len(path) != 5 {
		return fmt.Errorf("expected a 5-step path, got %d", len(path))
	}
	if path[len(path)-1] != coord(4, 0) {
		return fmt.Errorf("expected path to end at goal, got %+v", path[len(path)-1])
	}
	return nil
}

func checkConstrainedDetour() error {
	g := openGrid(3, 1)
	constraints := map[search.Position]struct{}{
		{Coord: coord(1, 0), T: 1}: {},
	}
	a := search.NewAgentSearch(g, 0, coord(0, 0), coord(2, 0), constraints, nil)
	path, err := a.Solve(context.Background(), 10000)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	expected := []gridworld.Coord{coord(0, 0), coord(0, 0), coord(1, 0), coord(2, 0)}
	if len(path) != len(expected) {
		return fmt.Errorf("expected %d-step detour path, got %d: %+v", len(expected), len(path), path)
	}
	for i, c := range expected {
		if path[i] != c {
			return fmt.Errorf("step %d: expected %+v, got %+v", i, c, path[i])
		}
	}
	return nil
}

// checkHeadOnSwap verifies that two agents swapping ends of a strict
// 1-wide, 3-cell corridor is reported as cbs.ErrNoSolution. Neither
// agent has a cell to step aside into, so no collision-free schedule
// exists at any makespan.
func checkHeadOnSwap() error {
	g := openGrid(3, 1)
	agentA := search.NewAgentSearch(g, 0, coord(0, 0), coord(2, 0), nil, nil)
	agentB := search.NewAgentSearch(g, 1, coord(2, 0), coord(0, 0), nil, nil)
	root, err := cbs.NewRoot(context.Background(), []*search.AgentSearch{agentA, agentB}, 8)
	if err != nil {
		return fmt.Errorf("build root: %w", err)
	}
	tree := cbs.NewTree(root, 8, true)
	_, err = tree.Solve(context.Background())
	if !errors.Is(err, cbs.ErrNoSolution) {
		return fmt.Errorf("expected ErrNoSolution for an unsolvable corridor swap, got %v", err)
	}
	return nil
}

func checkThreeAgentCrossing() error {
	g := openGrid(3, 3)
	agents := []*search.AgentSearch{
		search.NewAgentSearch(g, 0, coord(0, 0), coord(0, 2), nil, nil),
		search.NewAgentSearch(g, 1, coord(1, 0), coord(1, 2), nil, nil),
		search.NewAgentSearch(g, 2, coord(2, 0), coord(2, 2), nil, nil),
	}
	root, err := cbs.NewRoot(context.Background(), agents, 10000)
	if err != nil {
		return fmt.Errorf("build root: %w", err)
	}
	tree := cbs.NewTree(root, 10000, true)
	solved, err := tree.Solve(context.Background())
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	if _, found := conflict.FindFirstConflict(solved.Paths); found {
		return errors.New("expected conflict-free solution, found a remaining conflict")
	}
	return nil
}

func checkInfeasible() error {
	cells := []bool{
		true, false, true,
	}
	g := gridworld.New(3, 1, cells)
	a := search.NewAgentSearch(g, 0, coord(0, 0), coord(2, 0), nil, nil)
	_, err := a.Solve(context.Background(), 10000)
	if !errors.Is(err, search.ErrOutOfNodes) {
		return fmt.Errorf("expected ErrOutOfNodes for a goal cut off by a blocked cell, got %v", err)
	}
	return nil
}

func checkPCAStarParity() error {
	g := openGrid(3, 1) // a three-cell horizontal corridor
	parent := search.NewAgentSearch(g, 0, coord(0, 0), coord(2, 0), nil, nil)
	if _, err := parent.Solve(context.Background(), 10000); err != nil {
		return fmt.Errorf("solve parent: %w", err)
	}
	constraint := search.Constraint{Coord: coord(1, 0), T: 1}

	repaired, err := search.RepairAfterConstraint(parent, constraint)
	if err != nil {
		return fmt.Errorf("repair: %w", err)
	}
	repairedPath, err := repaired.Solve(context.Background(), 10000)
	if err != nil {
		return fmt.Errorf("solve repaired: %w", err)
	}

	restarted := search.ClassicRestart(parent, constraint)
	restartedPath, err := restarted.Solve(context.Background(), 10000)
	if err != nil {
		return fmt.Errorf("solve restarted: %w", err)
	}

	if len(repairedPath)-1 != len(restartedPath)-1 {
		return fmt.Errorf("makespan mismatch: PCA* repair %d vs classic restart %d", len(repairedPath)-1, len(restartedPath)-1)
	}
	return nil
}
