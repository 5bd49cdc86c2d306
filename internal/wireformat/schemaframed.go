package wireformat

import (
	"encoding/binary"
	"fmt"
	"sync"

	"go-corrgen/internal/model"
)

// magicByte is the fixed first byte of the schema-framed envelope
// (spec.md §4.E / §6).
const magicByte = 0x00

// PayloadCodec renders a (possibly nested-promoted) record into the bytes
// that follow the envelope. The production codec would defer to the
// registered Avro/Protobuf schema's generated serializer; this repo
// consumes .proto/.avsc files only as opaque descriptors (spec.md §1 —
// "compilation is external"), so the default codec here instead renders
// the record's own JSON representation as the payload, keeping the
// envelope byte-for-byte correct (testable property E5) without requiring
// generated schema code in-tree. A real serde only needs to satisfy this
// interface to replace it.
type PayloadCodec interface {
	EncodePayload(entity model.EntityConfig, rec *model.Record) ([]byte, error)
}

type jsonPayloadCodec struct{}

func (jsonPayloadCodec) EncodePayload(_ model.EntityConfig, rec *model.Record) ([]byte, error) {
	return rec.MarshalJSON()
}

// SchemaFramedEncoder implements the binary wire format from spec.md §4.E
// and §6: a 1-byte magic 0x00, a 4-byte big-endian subject-version ID, and
// a schema-encoded payload.
type SchemaFramedEncoder struct {
	registry RegistryClient
	codec    PayloadCodec

	mu  sync.Mutex
	ids map[string]int32 // subject ("<topic>-value") -> cached subject-version ID
}

func NewSchemaFramedEncoder(registry RegistryClient) *SchemaFramedEncoder {
	return &SchemaFramedEncoder{
		registry: registry,
		codec:    jsonPayloadCodec{},
		ids:      make(map[string]int32),
	}
}

// WithPayloadCodec overrides the default JSON payload codec, e.g. with a
// generated Avro/Protobuf serializer.
func (e *SchemaFramedEncoder) WithPayloadCodec(c PayloadCodec) *SchemaFramedEncoder {
	e.codec = c
	return e
}

func (e *SchemaFramedEncoder) Encode(entity model.EntityConfig, rec *model.Record) ([]byte, error) {
	id, err := e.subjectID(entity)
	if err != nil {
		return nil, err
	}

	promoted := promoteNested(entity, rec)
	payload, err := e.codec.EncodePayload(entity, promoted)
	if err != nil {
		return nil, &model.EncodingError{Err: err}
	}

	out := make([]byte, 5+len(payload))
	out[0] = magicByte
	binary.BigEndian.PutUint32(out[1:5], uint32(id))
	copy(out[5:], payload)
	return out, nil
}

// subjectID registers the entity's schema on first use and caches the
// resulting ID, per spec.md §4.E ("registers the schema ... and caches the
// returned ID").
func (e *SchemaFramedEncoder) subjectID(entity model.EntityConfig) (int32, error) {
	subject := fmt.Sprintf("%s-value", entity.KafkaTopic)

	e.mu.Lock()
	if id, ok := e.ids[subject]; ok {
		e.mu.Unlock()
		return id, nil
	}
	e.mu.Unlock()

	id, err := e.registry.Register(subject, schemaTextFor(entity), registrySchemaType(entity.SchemaType))
	if err != nil {
		return 0, &model.SchemaRegistrationError{Subject: subject, Err: err}
	}

	e.mu.Lock()
	e.ids[subject] = id
	e.mu.Unlock()
	return id, nil
}

// registrySchemaType maps an entity's declared schema type to the
// registry's SerdeType string. An unset SchemaType yields "", which
// ConfluentRegistryClient.Register takes as "use the connection-wide
// default".
func registrySchemaType(t model.SchemaType) string {
	switch t {
	case model.SchemaAvro:
		return "AVRO"
	case model.SchemaProtobuf:
		return "PROTOBUF"
	default:
		return ""
	}
}

// schemaTextFor renders a minimal self-describing schema document for
// entity, listing its schema fields and its derived fields. Relationship
// (foreign-key) fields and nested groups are not listed, although the
// codec encodes them. Real deployments would instead load the .proto/.avsc file the
// entity names; this engine treats those as opaque per spec.md §1.
func schemaTextFor(entity model.EntityConfig) string {
	fields := make([]string, 0, len(entity.Schema)+len(entity.DerivedFields))
	for name := range entity.Schema {
		fields = append(fields, name)
	}
	for _, name := range entity.DerivedOrder {
		fields = append(fields, name)
	}
	return fmt.Sprintf(`{"type":"record","name":%q,"fields":%v}`, entity.Name, fields)
}
