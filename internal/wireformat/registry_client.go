package wireformat

// RegistryClient is the slice of a schema-registry client's API the
// Format Encoder needs: register a subject's schema and get back its
// numeric version ID. The production implementation wraps
// github.com/confluentinc/confluent-kafka-go/v2/schemaregistry.Client;
// tests and dry-run mode use a fake satisfying this same interface,
// grounded on other_examples/georgelza-MongoCreator-GoProducer-x__main.go's
// pattern of carrying the registry URL through to the producer rather
// than hand-rolling HTTP calls.
type RegistryClient interface {
	// Register returns the subject-version ID for schemaText under
	// subject, registering it if this is the first time it's seen.
	// schemaType is the registry's SerdeType ("AVRO" or "PROTOBUF"),
	// carried per-entity from model.EntityConfig.SchemaType (SPEC_FULL
	// §4.E's avro/protobuf expansion).
	Register(subject, schemaText, schemaType string) (int32, error)
}

// StaticRegistryClient always returns the same ID, regardless of subject
// or schema text. Used by dry-run mode and by tests that only care about
// the envelope shape (spec.md §8 property E5), not real registry
// round-tripping.
type StaticRegistryClient struct {
	ID int32
}

func (c StaticRegistryClient) Register(_, _, _ string) (int32, error) {
	return c.ID, nil
}
