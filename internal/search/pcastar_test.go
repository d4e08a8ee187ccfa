package search

import (
	"context"
	"testing"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

// TestScenarioPCAStarParity is scenario 6, reduced to a small
// deterministic instance: PCA* and classic restart must agree on
// makespan and both must yield a valid path.
func TestScenarioPCAStarParity(t *testing.T) {
	g := straightLineGrid()
	start := gridworld.Coord{X: 0, Y: 0}
	goal := gridworld.Coord{X: 2, Y: 0}

	parent := NewAgentSearch(g, 0, start, goal, nil, nil)
	if _, err := parent.Solve(context.Background(), 100); err != nil {
		t.Fatalf("parent solve failed: %v", err)
	}

	q := Constraint{Coord: gridworld.Coord{X: 1, Y: 0}, T: 1}

	repaired, err := RepairAfterConstraint(parent, q)
	if err != nil {
		t.Fatalf("RepairAfterConstraint failed: %v", err)
	}
	repairedPath, err := repaired.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("repaired solve failed: %v", err)
	}

	classic := ClassicRestart(parent, q)
	classicPath, err := classic.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("classic solve failed: %v", err)
	}

	if len(repairedPath)-1 != len(classicPath)-1 {
		t.Fatalf("makespan mismatch: pca*=%d classic=%d", len(repairedPath)-1, len(classicPath)-1)
	}
	assertPathValid(t, g, repaired.Constraints(), repairedPath)
	assertPathValid(t, g, classic.Constraints(), classicPath)
}

func TestRepairConstraintNeverVisitedIsNoop(t *testing.T) {
	g := gridworld.New(5, 5, allTrue(25))
	parent := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 1, Y: 0}, nil, nil)
	if _, err := parent.Solve(context.Background(), 100); err != nil {
		t.Fatalf("parent solve failed: %v", err)
	}
	// A position far from anything the parent search ever reached.
	q := Constraint{Coord: gridworld.Coord{X: 4, Y: 4}, T: 4}
	repaired, err := RepairAfterConstraint(parent, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repaired.Constraints()[q]; !ok {
		t.Fatalf("expected constraint to be recorded even as a no-op repair")
	}
}

// assertPathValid checks property 1: every consecutive pair is
// an 8-connected-or-wait move, both coords passable, neither violates
// a constraint at its time.
func assertPathValid(t *testing.T, g *gridworld.Grid, constraints map[Position]struct{}, path Path) {
	t.Helper()
	for i, c := range path {
		if !g.Passable(c) {
			t.Fatalf("coord %v at step %d is not passable", c, i)
		}
		if _, forbidden := constraints[Position{Coord: c, T: i}]; forbidden {
			t.Fatalf("coord %v at time %d violates a constraint", c, i)
		}
		if i == 0 {
			continue
		}
		dx := int(c.X) - int(path[i-1].X)
		dy := int(c.Y) - int(path[i-1].Y)
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
			t.Fatalf("step %d->%d is not an 8-connected-or-wait move", i-1, i)
		}
	}
}
