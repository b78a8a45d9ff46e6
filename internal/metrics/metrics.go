// Package metrics exposes the ambient observability counters the engine
// updates as it runs: one counter of node executions and one histogram of
// their durations. These sit alongside delivery, not inside it: nothing in
// the engine's scheduling decisions depends on what this package records.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles the metrics a single engine instance updates. Each
// engine owns its own Collector so that multiple engines in one process
// (e.g. in tests) don't collide on a shared default registry.
type Collector struct {
	NodeExecutions *prometheus.CounterVec
	NodeDuration   *prometheus.HistogramVec
	Registry       *prometheus.Registry
}

// NewCollector builds a Collector registered against a fresh
// prometheus.Registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	executions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_node_executions_total",
		Help: "Number of times a node's Run or Finalize method completed.",
	}, []string{"node", "phase", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_node_duration_seconds",
		Help:    "Duration of a single node Run or Finalize call.",
		Buckets: prometheus.DefBuckets,
	}, []string{"node", "phase"})

	reg.MustRegister(executions, duration)

	return &Collector{NodeExecutions: executions, NodeDuration: duration, Registry: reg}
}

// ObserveExecution records one completed node execution.
func (c *Collector) ObserveExecution(node, phase string, err error, seconds float64) {
	if c == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.NodeExecutions.WithLabelValues(node, phase, outcome).Inc()
	c.NodeDuration.WithLabelValues(node, phase).Observe(seconds)
}
