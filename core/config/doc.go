// Package config implements the node-local half of the configuration plane:
// the compiled-default provider, the process-local cache, the layered read
// path and the versioned write path, plus the node bootstrap that feeds full
// snapshots into the change hook.
//
// # Resolution order
//
// A read resolves through three layers, first hit wins:
//
//  1. this node's explicit setting (node-scoped record in the store)
//  2. the cluster-wide setting (global record in the store)
//  3. the compiled default
//
// The resolved value is memoized in the [Cache] and shadowed back into the
// [Defaults] provider so out-of-band default lookups observe it too.
//
// # Staleness model
//
// Cache entries are never invalidated by remote writes. A remote node's
// change becomes visible here only through [Bootstrap.ConfigureNode], which
// clears the cache and re-resolves everything. Local writes overwrite the
// local cache immediately; this node's own write always wins locally even if
// the vector clocks later reveal a concurrent remote write (reconciliation
// is the anti-entropy process's job, not ours).
package config
