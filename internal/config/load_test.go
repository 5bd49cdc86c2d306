package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
master_data:
  customers:
    kafka_topic: customers
    id_field: customer_id
    count: 5
    bulk_load: true
    schema:
      customer_id:
        type: string
        format: "CUST_{seq:4d}"
      name:
        type: faker
        method: name

transactional_data:
  orders:
    kafka_topic: orders
    id_field: order_id
    max_messages: 3
    rate_per_second: 100
    schema:
      order_id:
        type: string
        format: "ORDER_{seq:5d}"
      total_amount:
        type: float
        min: 1
        max: 500
    relationships:
      customer_id:
        references: customers.customer_id
        distribution: uniform
    derived_fields:
      total_amount_x2:
        type: int
        min: 0
        max: 1000
      status:
        type: choice
        choices: [open, closed]
`

func TestParseGeneratorNamesEntitiesFromKeys(t *testing.T) {
	cfg, err := ParseGenerator([]byte(sampleConfig))
	require.NoError(t, err)

	customers, ok := cfg.MasterData["customers"]
	require.True(t, ok)
	require.Equal(t, "customers", customers.Name)
	require.True(t, customers.BulkLoad)
	require.NotNil(t, customers.Count)
	require.Equal(t, 5, *customers.Count)

	orders, ok := cfg.TransactionalData["orders"]
	require.True(t, ok)
	require.Equal(t, "orders", orders.Name)
}

func TestParseGeneratorPreservesDerivedFieldOrder(t *testing.T) {
	cfg, err := ParseGenerator([]byte(sampleConfig))
	require.NoError(t, err)

	orders := cfg.TransactionalData["orders"]
	require.Equal(t, []string{"total_amount_x2", "status"}, orders.DerivedOrder)
}

func TestParseGeneratorPreservesSchemaOrder(t *testing.T) {
	cfg, err := ParseGenerator([]byte(sampleConfig))
	require.NoError(t, err)

	orders := cfg.TransactionalData["orders"]
	require.Equal(t, []string{"order_id", "total_amount"}, orders.SchemaOrder)
}

func TestParseBrokerDefaultsSecurityProtocol(t *testing.T) {
	cfg, err := ParseBroker([]byte(`bootstrap.servers: "localhost:9092"`))
	require.NoError(t, err)
	require.Equal(t, "PLAINTEXT", string(cfg.SecurityProtocol))
}
