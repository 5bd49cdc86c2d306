package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDryRunPublisherWritesAndAcksImmediately(t *testing.T) {
	var buf bytes.Buffer
	pub := NewDryRunPublisher(&buf)

	future, err := pub.Publish(context.Background(), "orders", "key1", []byte(`{"order_id":"ORDER_00001"}`))
	require.NoError(t, err)
	require.NoError(t, future.Wait(context.Background()))

	stats := pub.StatsFor("orders")
	require.Equal(t, int64(1), stats.Sent)
	require.Equal(t, int64(1), stats.Acked)
	require.Equal(t, int64(0), stats.Failed)

	var line dryRunRecord
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "orders", line.Topic)
	require.Equal(t, "key1", line.Key)
}

func TestDryRunPublisherFlushIsNoOp(t *testing.T) {
	pub := NewDryRunPublisher(&bytes.Buffer{})
	require.Equal(t, 0, pub.Flush(0))
	require.NoError(t, pub.Close())
}

func TestDryRunPublisherTracksMultipleTopicsIndependently(t *testing.T) {
	var buf bytes.Buffer
	pub := NewDryRunPublisher(&buf)

	pub.Publish(context.Background(), "orders", "", []byte(`{}`))
	pub.Publish(context.Background(), "payments", "", []byte(`{}`))
	pub.Publish(context.Background(), "orders", "", []byte(`{}`))

	require.Equal(t, int64(2), pub.StatsFor("orders").Sent)
	require.Equal(t, int64(1), pub.StatsFor("payments").Sent)
}
