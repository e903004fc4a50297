package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/confplane-go/ports/store"
)

func Test_Writer_SetUpdatesStoreAndCache(t *testing.T) {
	ms := store.NewMemStore()
	cache := NewCache()
	w := NewWriter(WriterOptions{Node: "node-1", Store: ms, Cache: cache})

	require.NoError(t, w.Set(t.Context(), "broker", "allow_anonymous", true))

	rec, err := ms.Read(t.Context(), store.NodeScoped("node-1", "broker", "allow_anonymous"))
	require.NoError(t, err)
	require.Equal(t, true, rec.Value)
	require.Equal(t, uint64(1), rec.Clock.Counter("node-1"))

	v, ok := cache.Get("broker", "allow_anonymous")
	require.True(t, ok)
	require.Equal(t, true, v)
}

func Test_Writer_IdenticalSetStillTicksClock(t *testing.T) {
	ms := store.NewMemStore()
	cache := NewCache()
	w := NewWriter(WriterOptions{Node: "node-1", Store: ms, Cache: cache})

	require.NoError(t, w.Set(t.Context(), "broker", "retry_interval", 20))
	require.NoError(t, w.Set(t.Context(), "broker", "retry_interval", 20))

	rec, err := ms.Read(t.Context(), store.NodeScoped("node-1", "broker", "retry_interval"))
	require.NoError(t, err)
	require.Equal(t, uint64(2), rec.Clock.Counter("node-1"))

	// resolve still returns the value either way
	r := NewResolver(ResolverOptions{
		Node: "node-1", Store: ms,
		Defaults: NewEnvDefaults().Register("broker", map[string]any{"retry_interval": 10}),
		Cache:    cache,
	})
	v, err := r.Resolve(t.Context(), "broker", "retry_interval", 10)
	require.NoError(t, err)
	require.Equal(t, 20, v)
}

func Test_Writer_StorageFailureSurfaces(t *testing.T) {
	ms := store.NewMemStore()
	ms.FailWrites = true
	cache := NewCache()
	w := NewWriter(WriterOptions{Node: "node-1", Store: ms, Cache: cache})

	err := w.Set(t.Context(), "broker", "allow_anonymous", true)
	require.ErrorIs(t, err, store.ErrTxAborted)

	// the failed write must not leak into the cache
	_, ok := cache.Get("broker", "allow_anonymous")
	require.False(t, ok)
}

func Test_Writer_LocalWriteWinsInCache(t *testing.T) {
	ms := store.NewMemStore()
	cache := NewCache()

	// stale resolved value in cache
	cache.Put("broker", "allow_anonymous", false)

	w := NewWriter(WriterOptions{Node: "node-1", Store: ms, Cache: cache})
	require.NoError(t, w.Set(t.Context(), "broker", "allow_anonymous", true))

	v, _ := cache.Get("broker", "allow_anonymous")
	require.Equal(t, true, v)
}
