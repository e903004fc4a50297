package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MemStore_ReadMiss(t *testing.T) {
	s := NewMemStore()

	_, err := s.Read(t.Context(), Global("broker", "allow_anonymous"))
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_MemStore_WriteCreatesWithFreshClock(t *testing.T) {
	s := NewMemStore()
	id := NodeScoped("node-1", "broker", "allow_anonymous")

	rec, err := s.Write(t.Context(), id, true)
	require.NoError(t, err)
	require.Equal(t, id, rec.ID)
	require.Equal(t, true, rec.Value)
	require.Equal(t, uint64(1), rec.Clock.Counter("node-1"))

	loaded, err := s.Read(t.Context(), id)
	require.NoError(t, err)
	require.Equal(t, rec, loaded)
}

func Test_MemStore_EveryWriteTicksClock(t *testing.T) {
	s := NewMemStore()
	id := NodeScoped("node-1", "broker", "retry_interval")

	// same value twice still bumps the writer's component both times
	_, err := s.Write(t.Context(), id, 20)
	require.NoError(t, err)
	rec, err := s.Write(t.Context(), id, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rec.Clock.Counter("node-1"))
	require.Equal(t, 20, rec.Value)
}

func Test_MemStore_GlobalWriteRejected(t *testing.T) {
	s := NewMemStore()

	_, err := s.Write(t.Context(), Global("broker", "allow_anonymous"), true)
	require.ErrorIs(t, err, ErrGlobalWrite)
}

func Test_MemStore_WriteFailureIsFatal(t *testing.T) {
	s := NewMemStore()
	s.FailWrites = true

	_, err := s.Write(t.Context(), NodeScoped("node-1", "broker", "x"), 1)
	require.ErrorIs(t, err, ErrTxAborted)

	// nothing partially applied
	_, err = s.Read(t.Context(), NodeScoped("node-1", "broker", "x"))
	require.ErrorIs(t, err, ErrNotFound)
}

func Test_MemStore_Schema(t *testing.T) {
	sch := NewMemStore().Schema()
	require.Equal(t, "confplane_values", sch.Table)
	require.Equal(t, "durable-all-nodes", sch.Replication)
	require.NotNil(t, sch.Merge)
}
