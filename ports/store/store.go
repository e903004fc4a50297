// Package store defines the port for the replicated configuration table.
//
// The table is a multi-master replicated set of versioned records. Writes are
// transactional and serializable per key; reads are dirty reads against the
// local replica. Replication, partition detection and conflict resolution
// live behind the implementation (see adapters/nats for the JetStream-backed
// store and [MemStore] for the single-process stand-in) — this package only
// fixes the record shape and the versioning discipline.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/codewandler/confplane-go/core/vclock"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrTxAborted signals that a write transaction could not complete.
	// It is fatal to the caller; the store never retries internally.
	ErrTxAborted = errors.New("store transaction aborted")

	// ErrGlobalWrite is returned when a write names a global identity.
	// Only node-scoped identities are writable through this port.
	ErrGlobalWrite = errors.New("write requires a node-scoped identity")
)

// Identity locates a record. Node == "" marks a cluster-global entry; a
// non-empty Node marks that node's local override, which is replicated
// everywhere but only ever written by its owning node.
type Identity struct {
	Node      string `json:"node,omitempty"`
	Namespace string `json:"namespace"`
	Item      string `json:"item"`
}

// Global returns the cluster-wide identity for (namespace, item).
func Global(namespace, item string) Identity {
	return Identity{Namespace: namespace, Item: item}
}

// NodeScoped returns node's identity for (namespace, item).
func NodeScoped(node, namespace, item string) Identity {
	return Identity{Node: node, Namespace: namespace, Item: item}
}

func (id Identity) IsGlobal() bool { return id.Node == "" }

func (id Identity) String() string {
	if id.IsGlobal() {
		return fmt.Sprintf("%s/%s", id.Namespace, id.Item)
	}
	return fmt.Sprintf("%s@%s/%s", id.Node, id.Namespace, id.Item)
}

// Record is one versioned configuration entry. Records are created on first
// write and mutated in place afterwards; there is no delete.
type Record struct {
	ID        Identity     `json:"id"`
	Value     any          `json:"value"`
	ShortDesc string       `json:"short_desc,omitempty"`
	LongDesc  string       `json:"long_desc,omitempty"`
	Clock     vclock.Clock `json:"vclock"`
}

// Schema is the bootstrap metadata a store implementation declares for its
// table: consumed once at startup, never at runtime.
type Schema struct {
	Table       string
	Attributes  []string
	Replication string // "durable-all-nodes" for every current implementation
	Merge       vclock.MergeStrategy
}

// DefaultSchema describes the replicated config table.
func DefaultSchema() Schema {
	return Schema{
		Table:       "confplane_values",
		Attributes:  []string{"id", "value", "short_desc", "long_desc", "vclock"},
		Replication: "durable-all-nodes",
		Merge:       vclock.TakeMax,
	}
}

// Store is the replicated table port.
type Store interface {
	// Read performs a dirty read of the local replica. Returns
	// ErrNotFound when no record exists at id.
	Read(ctx context.Context, id Identity) (Record, error)

	// Write transactionally upserts the record at the node-scoped id:
	// absent records are created with a fresh clock, present records get
	// their value replaced and the writing node's clock component ticked.
	// Concurrent writes to the same key serialize; a failed transaction
	// surfaces as ErrTxAborted (wrapped) and is not retried.
	Write(ctx context.Context, id Identity, value any) (Record, error)

	// Schema returns the table's bootstrap metadata.
	Schema() Schema
}
