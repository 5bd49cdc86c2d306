package refpool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecencyRingOverwritesOldest(t *testing.T) {
	r := newRecencyRing(3)
	r.push("a")
	r.push("b")
	r.push("c")
	require.Equal(t, []string{"a", "b", "c"}, r.snapshot())

	r.push("d")
	require.Equal(t, []string{"b", "c", "d"}, r.snapshot())
	require.Equal(t, 3, r.len())
}

func TestRecencyRingPartialFill(t *testing.T) {
	r := newRecencyRing(5)
	r.push("x")
	r.push("y")
	require.Equal(t, []string{"x", "y"}, r.snapshot())
	require.Equal(t, 2, r.len())
}

func TestRecencyRingManyPushes(t *testing.T) {
	r := newRecencyRing(4)
	for i := 0; i < 100; i++ {
		r.push(fmt.Sprintf("id-%d", i))
	}
	require.Equal(t, 4, r.len())
	require.Equal(t, []string{"id-96", "id-97", "id-98", "id-99"}, r.snapshot())
}
