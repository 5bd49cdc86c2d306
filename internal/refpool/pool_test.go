package refpool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"go-corrgen/internal/model"
)

func appendN(t *testing.T, pool *Pool, entity string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		rec := model.NewRecord()
		id := fmt.Sprintf("CUST_%04d", i)
		rec.Set("customer_id", model.String(id))
		require.NoError(t, pool.Append(entity, "customer_id", rec))
	}
}

func TestSampleReferentialIntegrity(t *testing.T) {
	pool := NewPool(nil)
	appendN(t, pool, "customers", 5)

	for i := 0; i < 200; i++ {
		id, err := pool.Sample("customers", model.DistUniform, 1.0, false)
		require.NoError(t, err)
		require.True(t, id >= "CUST_0001" && id <= "CUST_0005")
		_, ok := pool.Lookup("customers", id)
		require.True(t, ok)
	}
}

func TestSampleEmptyPool(t *testing.T) {
	pool := NewPool(nil)
	_, err := pool.Sample("customers", model.DistUniform, 1.0, false)
	require.Error(t, err)
	var emptyPool *model.EmptyPool
	require.ErrorAs(t, err, &emptyPool)
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	pool := NewPool(nil)
	appendN(t, pool, "customers", 1)

	rec := model.NewRecord()
	rec.Set("customer_id", model.String("CUST_0001"))
	err := pool.Append("customers", "customer_id", rec)
	require.Error(t, err)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAppendRequiresIDField(t *testing.T) {
	pool := NewPool(nil)
	rec := model.NewRecord()
	rec.Set("name", model.String("no id here"))
	err := pool.Append("customers", "customer_id", rec)
	require.Error(t, err)
}

func TestCount(t *testing.T) {
	pool := NewPool(nil)
	require.Equal(t, 0, pool.Count("customers"))
	appendN(t, pool, "customers", 3)
	require.Equal(t, 3, pool.Count("customers"))
}

func TestRecencyBiasSamplesOnlyRing(t *testing.T) {
	pool := NewPool(map[string]bool{"orders": true})
	for i := 1; i <= DefaultRecencyWindow+10; i++ {
		rec := model.NewRecord()
		rec.Set("order_id", model.String(fmt.Sprintf("ORDER_%05d", i)))
		require.NoError(t, pool.Append("orders", "order_id", rec))
	}

	for i := 0; i < 100; i++ {
		id, err := pool.Sample("orders", model.DistUniform, 1.0, true)
		require.NoError(t, err)
		// The oldest 10 IDs must have fallen out of the ring.
		require.NotEqual(t, "ORDER_00001", id)
	}
}

func TestZipfDistributionShape(t *testing.T) {
	pool := NewPool(nil)
	appendN(t, pool, "customers", 100)

	counts := make(map[string]int)
	const draws = 10000
	for i := 0; i < draws; i++ {
		id, err := pool.Sample("customers", model.DistZipf, 1.5, false)
		require.NoError(t, err)
		counts[id]++
	}

	max, min := 0, draws
	for _, c := range counts {
		if c > max {
			max = c
		}
		if c < min {
			min = c
		}
	}

	require.Greater(t, float64(max)/float64(draws), 0.15)
	require.Less(t, float64(min)/float64(draws), 0.01)
}
