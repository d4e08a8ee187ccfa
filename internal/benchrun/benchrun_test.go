package benchrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/ioformat"
)

func openGrid(n int) *gridworld.Grid {
	cells := make([]bool, n*n)
	for i := range cells {
		cells[i] = true
	}
	return gridworld.New(n, n, cells)
}

func TestRunProducesResultsForEveryInstance(t *testing.T) {
	instances := []Instance{
		{
			Name: "case-0",
			Grid: openGrid(4),
			Agents: []ioformat.Agent{
				{Name: "a0", Start: gridworld.Coord{X: 0, Y: 0}, Goal: gridworld.Coord{X: 3, Y: 0}},
			},
		},
		{
			Name: "case-1",
			Grid: openGrid(4),
			Agents: []ioformat.Agent{
				{Name: "a0", Start: gridworld.Coord{X: 0, Y: 0}, Goal: gridworld.Coord{X: 3, Y: 3}},
				{Name: "a1", Start: gridworld.Coord{X: 3, Y: 0}, Goal: gridworld.Coord{X: 0, Y: 3}},
			},
		},
	}

	results, agg := Run(context.Background(), instances, Options{
		PerCaseTimeout: 5 * time.Second,
		DepthLimit:     1000,
		UsePCAStar:     true,
		Workers:        2,
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Fatalf("expected case %q to solve, got failure %q", r.Instance, r.FailureReason)
		}
		if r.RunID == "" || r.CaseID == "" {
			t.Fatalf("expected non-empty run/case ids")
		}
	}
	if agg.CaseCount != 2 || agg.SolvedCount != 2 || agg.FailedCount != 0 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if agg.MeanRuntimeMs < 0 {
		t.Fatalf("expected non-negative mean runtime, got %v", agg.MeanRuntimeMs)
	}
}

func TestComputeAggregateOnAllFailures(t *testing.T) {
	results := []CaseResult{
		{Success: false, FailureReason: "cbs: no solution"},
		{Success: false, FailureReason: "cbs: no solution"},
	}
	agg := ComputeAggregate(results)
	if agg.SolvedCount != 0 || agg.FailedCount != 2 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if agg.MeanRuntimeMs != 0 {
		t.Fatalf("expected zero mean with no successful cases, got %v", agg.MeanRuntimeMs)
	}
}

func TestComputeAggregateSingleCaseHasZeroStdDev(t *testing.T) {
	results := []CaseResult{{Success: true, RuntimeMs: 12.5}}
	agg := ComputeAggregate(results)
	if agg.StdDevRuntimeMs != 0 {
		t.Fatalf("expected zero stddev for n=1, got %v", agg.StdDevRuntimeMs)
	}
	if agg.MeanRuntimeMs != 12.5 {
		t.Fatalf("expected mean 12.5, got %v", agg.MeanRuntimeMs)
	}
	if agg.CI95LowMs != 12.5 || agg.CI95HighMs != 12.5 {
		t.Fatalf("expected degenerate CI at n=1, got [%v, %v]", agg.CI95LowMs, agg.CI95HighMs)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	results := []CaseResult{
		{RunID: "r1", CaseID: "c1", Instance: "case-0", NumAgents: 1, GridSize: "4x4", RuntimeMs: 1.5, Success: true, Makespan: 3},
		{RunID: "r1", CaseID: "c2", Instance: "case-1", NumAgents: 2, GridSize: "4x4", Success: false, FailureReason: "cbs: no solution"},
	}
	if err := WriteCSV(path, results); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty CSV output")
	}
}
