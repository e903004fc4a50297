package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/confplane-go/core/metrics"
)

type resolverMetrics struct {
	cacheLookups *prometheus.CounterVec
	resolved     *prometheus.CounterVec
}

// NewResolverMetrics creates a Prometheus implementation of ResolverMetrics.
func NewResolverMetrics(reg prometheus.Registerer) metrics.ResolverMetrics {
	m := &resolverMetrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_resolver_cache_lookups_total",
			Help: "Cache lookups on the read path",
		}, []string{"hit"}),

		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_resolver_resolved_total",
			Help: "Slow-path resolutions by producing layer",
		}, []string{"layer"}),
	}

	reg.MustRegister(m.cacheLookups, m.resolved)
	return m
}

func (m *resolverMetrics) CacheLookup(hit bool) {
	m.cacheLookups.WithLabelValues(boolToStr(hit)).Inc()
}

func (m *resolverMetrics) Resolved(layer string) {
	m.resolved.WithLabelValues(layer).Inc()
}

type storeMetrics struct {
	writeDuration prometheus.Histogram
	writes        *prometheus.CounterVec
	reads         *prometheus.CounterVec
}

// NewStoreMetrics creates a Prometheus implementation of StoreMetrics.
func NewStoreMetrics(reg prometheus.Registerer) metrics.StoreMetrics {
	m := &storeMetrics{
		writeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "confplane_store_write_duration_seconds",
			Help:    "Write transaction time in seconds",
			Buckets: defaultBuckets,
		}),

		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_store_writes_total",
			Help: "Write transactions by outcome",
		}, []string{"success"}),

		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "confplane_store_reads_total",
			Help: "Local replica reads",
		}, []string{"found"}),
	}

	reg.MustRegister(m.writeDuration, m.writes, m.reads)
	return m
}

func (m *storeMetrics) WriteDuration() metrics.Timer {
	return newTimer(m.writeDuration)
}

func (m *storeMetrics) Write(success bool) {
	m.writes.WithLabelValues(boolToStr(success)).Inc()
}

func (m *storeMetrics) Read(found bool) {
	m.reads.WithLabelValues(boolToStr(found)).Inc()
}

var (
	_ metrics.ResolverMetrics = (*resolverMetrics)(nil)
	_ metrics.StoreMetrics    = (*storeMetrics)(nil)
)
