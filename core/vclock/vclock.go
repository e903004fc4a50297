// Package vclock implements the per-record vector clock carried by every
// replicated configuration record.
//
// A [Clock] maps a node identity to a monotonically increasing counter. The
// node that writes a record ticks its own component; replicas compare clocks
// with [Clock.Descends] and [Clock.Concurrent] to detect conflicting writes
// after a partition heals. This package only produces and compares version
// metadata; actually reconciling divergent replicas is the job of an external
// anti-entropy process, which is handed a [MergeStrategy].
package vclock

import (
	"log/slog"
	"maps"
)

// Clock is a vector clock: node identity → update counter.
// The zero value (nil) is a fresh clock.
type Clock map[string]uint64

// Fresh returns an empty clock for a brand-new record.
func Fresh() Clock { return Clock{} }

// Counter returns node's component, 0 if absent.
func (c Clock) Counter(node string) uint64 { return c[node] }

// Tick returns a copy of c with node's component incremented by one.
// The receiver is not modified.
func (c Clock) Tick(node string) Clock {
	next := make(Clock, len(c)+1)
	maps.Copy(next, c)
	next[node]++
	return next
}

// Descends reports whether c is a successor of (or equal to) other, i.e.
// every component of other is <= the matching component of c. A clock that
// descends another carries all of its history; no conflict exists.
func (c Clock) Descends(other Clock) bool {
	for node, n := range other {
		if c[node] < n {
			return false
		}
	}
	return true
}

// Concurrent reports whether c and other are siblings: neither descends the
// other. Concurrent clocks mark conflicting writes that an external merge
// must reconcile.
func (c Clock) Concurrent(other Clock) bool {
	return !c.Descends(other) && !other.Descends(c)
}

func (c Clock) SlogAttr() slog.Attr { return slog.Any("vclock", map[string]uint64(c)) }

// MergeStrategy reconciles two concurrent clocks into one. It is consumed by
// the partition-healing process, never by the store itself.
type MergeStrategy func(a, b Clock) Clock

// TakeMax merges by taking the per-node maximum of both clocks.
func TakeMax(a, b Clock) Clock {
	out := make(Clock, len(a)+len(b))
	maps.Copy(out, a)
	for node, n := range b {
		if n > out[node] {
			out[node] = n
		}
	}
	return out
}
