package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordOrderPreserved(t *testing.T) {
	r := NewRecord()
	r.Set("z", Int64(1))
	r.Set("a", Int64(2))
	r.Set("m", Int64(3))

	require.Equal(t, []string{"z", "a", "m"}, r.Fields())

	b, err := r.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"z":1,"a":2,"m":3}`, string(b))
}

func TestRecordSetOverwritesInPlace(t *testing.T) {
	r := NewRecord()
	r.Set("a", Int64(1))
	r.Set("b", Int64(2))
	r.Set("a", Int64(99))

	require.Equal(t, []string{"a", "b"}, r.Fields())
	v, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(99), func() int64 { i, _ := v.Int64(); return i }())
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := NewRecord()
	r.Set("a", String("orig"))

	clone := r.Clone()
	clone.Set("a", String("mutated"))
	clone.Set("b", String("new"))

	v, _ := r.Get("a")
	s, _ := v.String()
	require.Equal(t, "orig", s)
	require.False(t, r.Has("b"))
}

func TestRecordHasAndLen(t *testing.T) {
	r := NewRecord()
	require.Equal(t, 0, r.Len())
	require.False(t, r.Has("x"))
	r.Set("x", Bool(true))
	require.True(t, r.Has("x"))
	require.Equal(t, 1, r.Len())
}
