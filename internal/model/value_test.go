package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	require.Equal(t, "hi", String("hi").AsString())
	require.Equal(t, "42", Int64(42).AsString())

	f, ok := Float64(3.5).AsFloat64()
	require.True(t, ok)
	require.Equal(t, 3.5, f)

	f, ok = Int64(42).AsFloat64()
	require.True(t, ok)
	require.Equal(t, float64(42), f)

	require.True(t, Bool(true).Native().(bool))
}

func TestValueFromNative(t *testing.T) {
	tests := map[string]struct {
		in   interface{}
		want Value
	}{
		"string":  {"x", String("x")},
		"int":     {7, Int64(7)},
		"int64":   {int64(7), Int64(7)},
		"float64": {1.5, Float64(1.5)},
		"bool":    {true, Bool(true)},
		"nil":     {nil, Null()},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, FromNative(tc.in))
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	m := Map(func() *Record {
		r := NewRecord()
		r.Set("a", Int64(1))
		r.Set("b", String("two"))
		return r
	}())
	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1,"b":"two"}`, string(b))
}

func TestListValue(t *testing.T) {
	l := List([]Value{String("a"), Int64(2)})
	b, err := json.Marshal(l)
	require.NoError(t, err)
	require.JSONEq(t, `["a",2]`, string(b))
}
