package obsmetrics

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// BenchmarkStats is one aggregate benchmark run's summary statistics,
// as internal/benchrun computes them (mean, stddev, 95% CI).
type BenchmarkStats struct {
	CaseCount       int
	MeanRuntimeMs   float64
	StdDevRuntimeMs float64
	CI95LowMs       float64
	CI95HighMs      float64
	SolvedCount     int
	FailedCount     int
}

// InfluxExporter is an optional benchmark telemetry sink
// (influxdata/influxdb-client-go/v2), grounded on the same
// upside-down-research-agentic dependency that supplies prometheus.
type InfluxExporter struct {
	client influxdb2.Client
	org    string
	bucket string
}

// NewInfluxExporter connects to an InfluxDB instance. The caller is
// responsible for calling Close when done.
func NewInfluxExporter(url, token, org, bucket string) *InfluxExporter {
	return &InfluxExporter{
		client: influxdb2.NewClient(url, token),
		org:    org,
		bucket: bucket,
	}
}

// Close releases the underlying HTTP client.
func (e *InfluxExporter) Close() { e.client.Close() }

// WriteBenchmarkStats records one aggregate benchmark run.
func (e *InfluxExporter) WriteBenchmarkStats(ctx context.Context, runID string, stats BenchmarkStats) error {
	writeAPI := e.client.WriteAPIBlocking(e.org, e.bucket)
	point := write.NewPoint(
		"mapfcbs_benchmark",
		map[string]string{"run_id": runID},
		map[string]any{
			"case_count":        stats.CaseCount,
			"mean_runtime_ms":   stats.MeanRuntimeMs,
			"stddev_runtime_ms": stats.StdDevRuntimeMs,
			"ci95_low_ms":       stats.CI95LowMs,
			"ci95_high_ms":      stats.CI95HighMs,
			"solved_count":      stats.SolvedCount,
			"failed_count":      stats.FailedCount,
		},
		time.Now(),
	)
	if err := writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("obsmetrics: influx write: %w", err)
	}
	return nil
}
