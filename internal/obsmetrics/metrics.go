// Package obsmetrics provides the production search.Observer
// implementation: Prometheus counters replacing the original's
// `static pub_count` global. Grounded on
// upside-down-research-agentic's prometheus/client_golang usage.
package obsmetrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/orangedot/mapf-cbs/internal/search"
)

// PrometheusObserver implements search.Observer, exporting node
// expansion, goal, and PCA*-repair counts as Prometheus counters.
type PrometheusObserver struct {
	nodesExpanded    *prometheus.CounterVec
	goalsReached     *prometheus.CounterVec
	repairsStarted   *prometheus.CounterVec
	nodesInvalidated *prometheus.CounterVec
}

// NewPrometheusObserver registers its metrics on reg and returns the
// observer. Pass prometheus.NewRegistry() in tests to avoid colliding
// with the default global registry.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		nodesExpanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapfcbs",
			Name:      "astar_nodes_expanded_total",
			Help:      "A* nodes popped and expanded, by agent.",
		}, []string{"agent"}),
		goalsReached: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapfcbs",
			Name:      "astar_goals_reached_total",
			Help:      "A* goal nodes found, by agent.",
		}, []string{"agent"}),
		repairsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapfcbs",
			Name:      "pcastar_repairs_total",
			Help:      "PCA* repairs started, by agent.",
		}, []string{"agent"}),
		nodesInvalidated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mapfcbs",
			Name:      "pcastar_nodes_invalidated_total",
			Help:      "Nodes removed from OPEN/CLOSED by a PCA* repair, by agent.",
		}, []string{"agent"}),
	}
	reg.MustRegister(o.nodesExpanded, o.goalsReached, o.repairsStarted, o.nodesInvalidated)
	return o
}

var _ search.Observer = (*PrometheusObserver)(nil)

func (o *PrometheusObserver) OnNodeExpanded(agentID int, _ search.Position) {
	o.nodesExpanded.WithLabelValues(agentLabel(agentID)).Inc()
}

func (o *PrometheusObserver) OnGoalReached(agentID int, _ search.Position) {
	o.goalsReached.WithLabelValues(agentLabel(agentID)).Inc()
}

func (o *PrometheusObserver) OnRepairStarted(agentID int, _ search.Constraint) {
	o.repairsStarted.WithLabelValues(agentLabel(agentID)).Inc()
}

func (o *PrometheusObserver) OnNodeInvalidated(agentID int, _ search.Position) {
	o.nodesInvalidated.WithLabelValues(agentLabel(agentID)).Inc()
}

func agentLabel(agentID int) string {
	return strconv.Itoa(agentID)
}

// DumpText gathers every metric family registered on reg and writes it
// to w in the Prometheus text exposition format, the same wire format
// promhttp.Handler serves on /metrics.
func DumpText(reg prometheus.Gatherer, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("obsmetrics: gather: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("obsmetrics: encode: %w", err)
		}
	}
	return nil
}
