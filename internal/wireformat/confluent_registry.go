package wireformat

import (
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
)

// ConfluentRegistryClient adapts a real schema-registry connection to
// RegistryClient. defaultSchemaType is the registry's SerdeType used when
// a caller passes an empty schemaType to Register, so Avro and
// Protobuf-described entities (model.SchemaAvro / model.SchemaProtobuf,
// SPEC_FULL §4.E) register under their own type rather than all sharing
// one fixed type.
type ConfluentRegistryClient struct {
	client            schemaregistry.Client
	defaultSchemaType string // "AVRO" or "PROTOBUF"
}

// NewConfluentRegistryClient dials the schema registry at url.
func NewConfluentRegistryClient(url, defaultSchemaType string) (*ConfluentRegistryClient, error) {
	cfg := schemaregistry.NewConfig(url)
	client, err := schemaregistry.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to schema registry at %s: %w", url, err)
	}
	return &ConfluentRegistryClient{client: client, defaultSchemaType: defaultSchemaType}, nil
}

func (c *ConfluentRegistryClient) Register(subject, schemaText, schemaType string) (int32, error) {
	if schemaType == "" {
		schemaType = c.defaultSchemaType
	}
	info := schemaregistry.SchemaInfo{
		Schema:     schemaText,
		SchemaType: schemaType,
	}
	id, err := c.client.Register(subject, info, false)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
