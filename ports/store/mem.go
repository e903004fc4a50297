package store

import (
	"context"
	"sync"

	"github.com/codewandler/confplane-go/core/metrics"
)

// MemStore is a single-process Store used by tests and examples. A plain
// mutex stands in for the per-key transaction manager: writes on the same
// key linearize, reads never lock out of band with the spec's dirty-read
// contract (they take the read lock only to avoid torn map access).
type MemStore struct {
	mu   sync.RWMutex
	data map[Identity]Record
	m    metrics.StoreMetrics

	// FailWrites makes every Write fail with ErrTxAborted. Tests use it
	// to simulate an unavailable storage layer.
	FailWrites bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[Identity]Record),
		m:    metrics.NopStoreMetrics(),
	}
}

// WithMetrics sets the metrics sink and returns the store.
func (s *MemStore) WithMetrics(m metrics.StoreMetrics) *MemStore {
	s.m = m
	return s
}

func (s *MemStore) Read(_ context.Context, id Identity) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	s.m.Read(ok)
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemStore) Write(_ context.Context, id Identity, value any) (Record, error) {
	if id.IsGlobal() {
		return Record{}, ErrGlobalWrite
	}

	defer s.m.WriteDuration().ObserveDuration()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		s.m.Write(false)
		return Record{}, ErrTxAborted
	}

	rec, ok := s.data[id]
	if !ok {
		rec = Record{ID: id, Clock: nil}
	}
	rec.Value = value
	rec.Clock = rec.Clock.Tick(id.Node)
	s.data[id] = rec

	s.m.Write(true)
	return rec, nil
}

// Seed inserts a record without touching its clock. Tests use it to stage
// cluster-global entries, which the Write path deliberately refuses.
func (s *MemStore) Seed(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.ID] = rec
}

func (s *MemStore) Schema() Schema { return DefaultSchema() }

var _ Store = (*MemStore)(nil)
