package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/confplane-go/core/metrics"
)

type dispatchMetrics struct {
	snapshots      prometheus.Counter
	keysDiffed     *prometheus.CounterVec
	keysDropped    *prometheus.CounterVec
	subsystemCalls *prometheus.CounterVec
}

// NewDispatchMetrics creates a Prometheus implementation of DispatchMetrics.
func NewDispatchMetrics(reg prometheus.Registerer) metrics.DispatchMetrics {
	m := &dispatchMetrics{
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "confplane_dispatch_snapshots_total",
			Help: "Config snapshots submitted to the dispatcher",
		}),

		keysDiffed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_dispatch_keys_diffed_total",
			Help: "Diff-gate outcomes per key",
		}, []string{"outcome"}),

		keysDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_dispatch_keys_dropped_total",
			Help: "Keys rejected by subsystem validation",
		}, []string{"group"}),

		subsystemCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_dispatch_subsystem_calls_total",
			Help: "Reconfigure calls routed to subsystems",
		}, []string{"group"}),
	}

	reg.MustRegister(m.snapshots, m.keysDiffed, m.keysDropped, m.subsystemCalls)
	return m
}

func (m *dispatchMetrics) Snapshot() {
	m.snapshots.Inc()
}

func (m *dispatchMetrics) KeyDiffed(outcome string) {
	m.keysDiffed.WithLabelValues(outcome).Inc()
}

func (m *dispatchMetrics) KeyDropped(group string) {
	m.keysDropped.WithLabelValues(group).Inc()
}

func (m *dispatchMetrics) SubsystemCall(group string) {
	m.subsystemCalls.WithLabelValues(group).Inc()
}

var _ metrics.DispatchMetrics = (*dispatchMetrics)(nil)
