// Package prometheus provides Prometheus implementations of the core
// metrics interfaces (resolver, store, dispatcher).
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/confplane-go/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5,
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// AllMetrics holds Prometheus implementations for every pillar.
type AllMetrics struct {
	Resolver metrics.ResolverMetrics
	Store    metrics.StoreMetrics
	Dispatch metrics.DispatchMetrics
}

// NewAllMetrics registers and returns metrics for every pillar at once.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Resolver: NewResolverMetrics(reg),
		Store:    NewStoreMetrics(reg),
		Dispatch: NewDispatchMetrics(reg),
	}
}
