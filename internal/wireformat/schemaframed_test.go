package wireformat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-corrgen/internal/model"
)

func TestSchemaFramedEnvelopeShape(t *testing.T) {
	enc := NewSchemaFramedEncoder(StaticRegistryClient{ID: 7})

	entity := model.EntityConfig{Name: "orders", KafkaTopic: "orders"}
	rec := model.NewRecord()
	rec.Set("order_id", model.String("ORDER_00001"))

	b, err := enc.Encode(entity, rec)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), b[0])
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x07}, b[1:5])
}

func TestSchemaFramedRoundTripsJSONPayload(t *testing.T) {
	enc := NewSchemaFramedEncoder(StaticRegistryClient{ID: 1})

	entity := model.EntityConfig{Name: "orders", KafkaTopic: "orders"}
	rec := model.NewRecord()
	rec.Set("order_id", model.String("ORDER_00001"))
	rec.Set("total_amount", model.Float64(12.5))

	b, err := enc.Encode(entity, rec)
	require.NoError(t, err)
	require.JSONEq(t, `{"order_id":"ORDER_00001","total_amount":12.5}`, string(b[5:]))
}

func TestSchemaFramedCachesSubjectID(t *testing.T) {
	calls := 0
	client := countingRegistry{fn: func() (int32, error) { calls++; return 3, nil }}
	enc := NewSchemaFramedEncoder(client)

	entity := model.EntityConfig{Name: "orders", KafkaTopic: "orders"}
	rec := model.NewRecord()

	for i := 0; i < 5; i++ {
		_, err := enc.Encode(entity, rec)
		require.NoError(t, err)
	}
	require.Equal(t, 1, calls)
}

func TestSchemaFramedPromotesNestedFields(t *testing.T) {
	enc := NewSchemaFramedEncoder(StaticRegistryClient{ID: 1})

	entity := model.EntityConfig{
		Name:       "customers",
		KafkaTopic: "customers",
		Nested: map[string][]string{
			"address": {"street", "city"},
		},
	}
	rec := model.NewRecord()
	rec.Set("customer_id", model.String("CUST_0001"))
	rec.Set("street", model.String("1 Main St"))
	rec.Set("city", model.String("Springfield"))

	b, err := enc.Encode(entity, rec)
	require.NoError(t, err)
	require.JSONEq(t, `{"customer_id":"CUST_0001","address":{"street":"1 Main St","city":"Springfield"}}`, string(b[5:]))
}

type countingRegistry struct {
	fn func() (int32, error)
}

func (c countingRegistry) Register(subject, schemaText, schemaType string) (int32, error) {
	return c.fn()
}
