// Package metrics defines abstract instrumentation interfaces so the core
// packages stay decoupled from any metrics backend. adapters/prometheus
// provides the Prometheus implementations; everything defaults to nop.
package metrics

// Counter is a monotonically increasing metric.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// Timer measures the duration of an operation. Call ObserveDuration when the
// operation completes.
type Timer interface {
	ObserveDuration()
}

// ResolverMetrics instruments the read path.
type ResolverMetrics interface {
	// CacheLookup records a cache hit or miss.
	CacheLookup(hit bool)
	// Resolved records which layer produced the value: "node", "global"
	// or "default".
	Resolved(layer string)
}

// StoreMetrics instruments the replicated store.
type StoreMetrics interface {
	// WriteDuration times a write transaction.
	WriteDuration() Timer
	// Write records a completed write transaction.
	Write(success bool)
	// Read records a local replica read.
	Read(found bool)
}

// DispatchMetrics instruments the change dispatcher and router.
type DispatchMetrics interface {
	// Snapshot records a submitted config snapshot.
	Snapshot()
	// KeyDiffed records the diff-gate outcome for one key: "unseen",
	// "changed" or "unchanged".
	KeyDiffed(outcome string)
	// KeyDropped records a key rejected by validation.
	KeyDropped(group string)
	// SubsystemCall records a reconfigure call routed to a subsystem group.
	SubsystemCall(group string)
}
