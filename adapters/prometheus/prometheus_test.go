package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolverMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewResolverMetrics(reg)

	require.NotNil(t, m)

	m.CacheLookup(true)
	m.CacheLookup(false)
	m.Resolved("node")
	m.Resolved("global")
	m.Resolved("default")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["confplane_resolver_cache_lookups_total"])
	assert.True(t, names["confplane_resolver_resolved_total"])
}

func TestNewStoreMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	require.NotNil(t, m)

	timer := m.WriteDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.Write(true)
	m.Write(false)
	m.Read(true)
	m.Read(false)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["confplane_store_write_duration_seconds"])
	assert.True(t, names["confplane_store_writes_total"])
	assert.True(t, names["confplane_store_reads_total"])
}

func TestNewDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDispatchMetrics(reg)

	require.NotNil(t, m)

	m.Snapshot()
	m.KeyDiffed("unseen")
	m.KeyDiffed("changed")
	m.KeyDiffed("unchanged")
	m.KeyDropped("session")
	m.SubsystemCall("session")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["confplane_dispatch_snapshots_total"])
	assert.True(t, names["confplane_dispatch_keys_diffed_total"])
	assert.True(t, names["confplane_dispatch_subsystem_calls_total"])
}

func TestNewAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAllMetrics(reg)

	require.NotNil(t, m)
	require.NotNil(t, m.Resolver)
	require.NotNil(t, m.Store)
	require.NotNil(t, m.Dispatch)

	m.Resolver.CacheLookup(true)
	m.Store.Write(true)
	m.Dispatch.Snapshot()

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestBoolToStr(t *testing.T) {
	assert.Equal(t, "true", boolToStr(true))
	assert.Equal(t, "false", boolToStr(false))
}
