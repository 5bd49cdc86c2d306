package wireformat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-corrgen/internal/model"
)

func TestJSONEncoderPreservesFieldOrder(t *testing.T) {
	enc := NewJSONEncoder()
	rec := model.NewRecord()
	rec.Set("b", model.Int64(2))
	rec.Set("a", model.Int64(1))

	b, err := enc.Encode(model.EntityConfig{}, rec)
	require.NoError(t, err)
	require.Equal(t, `{"b":2,"a":1}`, string(b))
}
