package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
)

func straightLineGrid() *gridworld.Grid {
	return gridworld.New(3, 1, []bool{true, true, true})
}

// TestScenarioStraightLine is scenario 1.
func TestScenarioStraightLine(t *testing.T) {
	g := straightLineGrid()
	s := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 2, Y: 0}, nil, nil)
	path, err := s.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	assertPathEqual(t, want, path)
}

// TestScenarioConstrainedDetour is scenario 2.
func TestScenarioConstrainedDetour(t *testing.T) {
	g := straightLineGrid()
	constraints := map[Position]struct{}{
		{Coord: gridworld.Coord{X: 1, Y: 0}, T: 1}: {},
	}
	s := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 2, Y: 0}, constraints, nil)
	path, err := s.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Path{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	assertPathEqual(t, want, path)
}

// TestScenarioInfeasible is scenario 5.
func TestScenarioInfeasible(t *testing.T) {
	g := gridworld.New(3, 1, []bool{true, false, true})
	s := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 2, Y: 0}, nil, nil)
	_, err := s.Solve(context.Background(), 100)
	if !errors.Is(err, ErrOutOfNodes) {
		t.Fatalf("expected ErrOutOfNodes, got %v", err)
	}
}

func TestHeuristicAdmissibility(t *testing.T) {
	g := gridworld.New(5, 5, allTrue(25))
	s := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 4, Y: 4}, nil, nil)
	path, err := s.Solve(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	actualCost := len(path) - 1
	// The straight-line Euclidean distance from start is never an
	// overestimate of the actual cost to goal.
	h := euclid(0, 0, 4, 4)
	if h > float64(actualCost)+1e-9 {
		t.Fatalf("heuristic %v overestimates actual cost %v", h, actualCost)
	}
}

func TestSearchDepthExceeded(t *testing.T) {
	g := gridworld.New(3, 1, []bool{true, true, true})
	s := NewAgentSearch(g, 0, gridworld.Coord{X: 0, Y: 0}, gridworld.Coord{X: 2, Y: 0}, nil, nil)
	_, err := s.Solve(context.Background(), 0)
	if !errors.Is(err, ErrSearchDepthExceeded) {
		t.Fatalf("expected ErrSearchDepthExceeded, got %v", err)
	}
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func euclid(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

func assertPathEqual(t *testing.T, want, got Path) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("path length mismatch: want %v got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("path mismatch at %d: want %v got %v", i, want, got)
		}
	}
}
