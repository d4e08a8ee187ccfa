package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/orangedot/mapf-cbs/internal/benchrun"
	"github.com/orangedot/mapf-cbs/internal/gen"
	"github.com/orangedot/mapf-cbs/internal/obsmetrics"
)

// BenchCmd generates a batch of instances and solves them, reporting
// mean/stddev/95%-CI runtime statistics.
type BenchCmd struct {
	Instances           int     `default:"20" help:"Number of cases to generate and solve"`
	Seed                int64   `default:"1" help:"First case's random seed; later cases use consecutive seeds"`
	GridRows            int     `name:"grid-rows" default:"32" help:"Grid rows"`
	GridCols            int     `name:"grid-cols" default:"32" help:"Grid columns"`
	AgentsPerCase       int     `name:"agents" default:"10" help:"Agents per case"`
	ObstacleProbability float64 `name:"obstacles" default:"0.2" help:"Fraction of cells blocked"`

	PerCaseTimeout float64 `name:"per-case-timeout" default:"30" help:"Per-case wall-clock limit in seconds"`
	DepthLimit     int     `name:"depth-limit" default:"30000"`
	PCAStar        bool    `name:"pcastar" default:"true" negatable:""`
	Workers        int     `default:"0" help:"Worker goroutines; 0 selects NumCPU"`

	Out string `default:"benchmark.csv" help:"CSV output path"`

	InfluxURL    string `name:"influx-url" help:"Optional InfluxDB URL to push aggregate stats to"`
	InfluxToken  string `name:"influx-token"`
	InfluxOrg    string `name:"influx-org"`
	InfluxBucket string `name:"influx-bucket"`
}

func (c *BenchCmd) Run(logger *log.Logger) error {
	params := gen.Params{
		Seed:                c.Seed,
		GridRows:            c.GridRows,
		GridCols:            c.GridCols,
		AgentsPerCase:       c.AgentsPerCase,
		ObstacleProbability: c.ObstacleProbability,
	}
	instances, err := gen.GenerateBatch(params, c.Instances)
	if err != nil {
		return err
	}

	benchInstances := make([]benchrun.Instance, len(instances))
	for i, inst := range instances {
		benchInstances[i] = benchrun.Instance{Name: inst.Name, Grid: inst.Grid, Agents: inst.Agents}
	}

	logger.Info("running benchmark", "instances", len(benchInstances), "workers", c.Workers)

	results, agg := benchrun.Run(context.Background(), benchInstances, benchrun.Options{
		PerCaseTimeout: time.Duration(c.PerCaseTimeout * float64(time.Second)),
		DepthLimit:     c.DepthLimit,
		UsePCAStar:     c.PCAStar,
		Workers:        c.Workers,
	})

	logger.Info("benchmark complete",
		"solved", agg.SolvedCount,
		"failed", agg.FailedCount,
		"mean_ms", agg.MeanRuntimeMs,
		"stddev_ms", agg.StdDevRuntimeMs,
		"ci95_low_ms", agg.CI95LowMs,
		"ci95_high_ms", agg.CI95HighMs,
	)

	if err := benchrun.WriteCSV(c.Out, results); err != nil {
		return err
	}
	logger.Info("wrote benchmark csv", "path", c.Out)

	if c.InfluxURL != "" {
		exporter := obsmetrics.NewInfluxExporter(c.InfluxURL, c.InfluxToken, c.InfluxOrg, c.InfluxBucket)
		defer exporter.Close()
		runID := ""
		if len(results) > 0 {
			runID = results[0].RunID
		}
		err := exporter.WriteBenchmarkStats(context.Background(), runID, obsmetrics.BenchmarkStats{
			CaseCount:       agg.CaseCount,
			MeanRuntimeMs:   agg.MeanRuntimeMs,
			StdDevRuntimeMs: agg.StdDevRuntimeMs,
			CI95LowMs:       agg.CI95LowMs,
			CI95HighMs:      agg.CI95HighMs,
			SolvedCount:     agg.SolvedCount,
			FailedCount:     agg.FailedCount,
		})
		if err != nil {
			logger.Warn("influx export failed", "error", err)
		}
	}

	return nil
}
