// Package benchrun runs N generated cases with a per-case wall-clock
// limit, writing per-case timings and aggregate statistics (mean,
// standard deviation, 95% CI) to an output file. One Tree/Grid pairing
// runs per goroutine off a shared worker pool; the Grid itself is
// immutable and safely shared across goroutines, so no locking is
// needed around planner state.
package benchrun

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orangedot/mapf-cbs/internal/cbs"
	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/ioformat"
	"github.com/orangedot/mapf-cbs/internal/search"
)

// Instance is one generated benchmark case.
type Instance struct {
	Name   string
	Grid   *gridworld.Grid
	Agents []ioformat.Agent
}

// CaseResult is one generated case's outcome.
type CaseResult struct {
	RunID         string
	CaseID        string
	Timestamp     string
	CommitHash    string
	GoVersion     string
	OS            string
	Arch          string
	Instance      string
	NumAgents     int
	GridSize      string
	RuntimeMs     float64
	Success       bool
	Makespan      int
	FailureReason string
}

// AggregateStats is the mean/stddev/95%-CI summary over one run's cases.
type AggregateStats struct {
	CaseCount       int
	SolvedCount     int
	FailedCount     int
	MeanRuntimeMs   float64
	StdDevRuntimeMs float64
	CI95LowMs       float64
	CI95HighMs      float64
}

// Options configures one benchmark run.
type Options struct {
	PerCaseTimeout time.Duration
	DepthLimit     int
	UsePCAStar     bool
	Workers        int // 0 means runtime.NumCPU()
}

// Run solves every instance concurrently, one Tree/Grid pairing per
// worker goroutine, and returns per-case results plus their aggregate.
func Run(ctx context.Context, instances []Instance, opts Options) ([]CaseResult, AggregateStats) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(instances) {
		workers = len(instances)
	}
	if workers < 1 {
		workers = 1
	}

	runID := uuid.NewString()
	commit := gitCommit()

	results := make([]CaseResult, len(instances))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = runCase(ctx, runID, commit, instances[idx], opts)
			}
		}()
	}
	for i := range instances {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, ComputeAggregate(results)
}

func runCase(ctx context.Context, runID, commit string, inst Instance, opts Options) CaseResult {
	caseCtx := ctx
	var cancel context.CancelFunc
	if opts.PerCaseTimeout > 0 {
		caseCtx, cancel = context.WithTimeout(ctx, opts.PerCaseTimeout)
		defer cancel()
	}

	result := CaseResult{
		RunID:      runID,
		CaseID:     uuid.NewString(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: commit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Instance:   inst.Name,
		NumAgents:  len(inst.Agents),
		GridSize:   fmt.Sprintf("%dx%d", inst.Grid.Width(), inst.Grid.Height()),
	}

	agents := make([]*search.AgentSearch, len(inst.Agents))
	for i, a := range inst.Agents {
		agents[i] = search.NewAgentSearch(inst.Grid, i, a.Start, a.Goal, nil, nil)
	}

	start := time.Now()
	root, err := cbs.NewRoot(caseCtx, agents, opts.DepthLimit)
	if err != nil {
		result.RuntimeMs = msSince(start)
		result.FailureReason = err.Error()
		return result
	}
	tree := cbs.NewTree(root, opts.DepthLimit, opts.UsePCAStar)
	sol, err := tree.Solve(caseCtx)
	result.RuntimeMs = msSince(start)
	if err != nil {
		result.FailureReason = err.Error()
		return result
	}
	result.Success = true
	result.Makespan = sol.Cost
	return result
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// ComputeAggregate reduces per-case results to mean/stddev/95% CI over
// the successful cases' runtimes.
func ComputeAggregate(results []CaseResult) AggregateStats {
	stats := AggregateStats{CaseCount: len(results)}
	var runtimes []float64
	for _, r := range results {
		if r.Success {
			stats.SolvedCount++
			runtimes = append(runtimes, r.RuntimeMs)
		} else {
			stats.FailedCount++
		}
	}
	n := len(runtimes)
	if n == 0 {
		return stats
	}
	var sum float64
	for _, v := range runtimes {
		sum += v
	}
	mean := sum / float64(n)
	var sqDiffSum float64
	for _, v := range runtimes {
		d := v - mean
		sqDiffSum += d * d
	}
	stddev := 0.0
	if n > 1 {
		stddev = math.Sqrt(sqDiffSum / float64(n-1))
	}
	marginOf95CI := 1.96 * stddev / math.Sqrt(float64(n))
	stats.MeanRuntimeMs = mean
	stats.StdDevRuntimeMs = stddev
	stats.CI95LowMs = mean - marginOf95CI
	stats.CI95HighMs = mean + marginOf95CI
	return stats
}

// WriteCSV writes per-case results as CSV.
func WriteCSV(path string, results []CaseResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"run_id", "case_id", "timestamp", "commit_hash", "go_version", "os", "arch",
		"instance", "num_agents", "grid_size", "runtime_ms", "success", "makespan", "failure_reason",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.RunID, r.CaseID, r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Instance, strconv.Itoa(r.NumAgents), r.GridSize,
			strconv.FormatFloat(r.RuntimeMs, 'f', 3, 64),
			strconv.FormatBool(r.Success),
			strconv.Itoa(r.Makespan),
			r.FailureReason,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func gitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
