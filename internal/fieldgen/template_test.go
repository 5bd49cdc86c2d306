package fieldgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-corrgen/internal/model"
)

func TestRenderTemplateSeqPadding(t *testing.T) {
	s, err := RenderTemplate("CUST_{seq:4d}", 7, nil, "customers")
	require.NoError(t, err)
	require.Equal(t, "CUST_0007", s)
}

func TestRenderTemplateFieldSubstitution(t *testing.T) {
	rec := model.NewRecord()
	rec.Set("country_code", model.String("US"))

	s, err := RenderTemplate("acct-{country_code}-{seq:3d}", 42, rec, "accounts")
	require.NoError(t, err)
	require.Equal(t, "acct-US-042", s)
}

func TestRenderTemplateUnboundFieldFails(t *testing.T) {
	_, err := RenderTemplate("{missing}", 1, model.NewRecord(), "orders")
	require.Error(t, err)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSequenceIDsHaveNoGaps(t *testing.T) {
	var ids []string
	for seq := int64(1); seq <= 5; seq++ {
		s, err := RenderTemplate("ORDER_{seq:5d}", seq, nil, "orders")
		require.NoError(t, err)
		ids = append(ids, s)
	}
	require.Equal(t, []string{"ORDER_00001", "ORDER_00002", "ORDER_00003", "ORDER_00004", "ORDER_00005"}, ids)
}
