package vclock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Tick(t *testing.T) {
	c := Fresh()
	require.Equal(t, uint64(0), c.Counter("a"))

	c1 := c.Tick("a")
	require.Equal(t, uint64(1), c1.Counter("a"))
	require.Equal(t, uint64(0), c.Counter("a"), "receiver must not be modified")

	c2 := c1.Tick("a").Tick("b")
	require.Equal(t, uint64(2), c2.Counter("a"))
	require.Equal(t, uint64(1), c2.Counter("b"))
}

func Test_Descends(t *testing.T) {
	base := Fresh().Tick("a")
	next := base.Tick("a").Tick("b")

	require.True(t, next.Descends(base))
	require.False(t, base.Descends(next))
	require.True(t, base.Descends(Fresh()), "every clock descends the fresh clock")
	require.True(t, base.Descends(base))
}

func Test_Concurrent(t *testing.T) {
	base := Fresh().Tick("a")

	// two nodes tick independently from the same base
	left := base.Tick("a")
	right := base.Tick("b")

	require.True(t, left.Concurrent(right))
	require.True(t, right.Concurrent(left))
	require.False(t, left.Concurrent(base))
}

func Test_TakeMax(t *testing.T) {
	a := Clock{"n1": 3, "n2": 1}
	b := Clock{"n1": 2, "n3": 5}

	m := TakeMax(a, b)
	require.Equal(t, Clock{"n1": 3, "n2": 1, "n3": 5}, m)
	require.True(t, m.Descends(a))
	require.True(t, m.Descends(b))
}
