// Package wireformat implements Component E, the Format Encoder
// (SPEC_FULL §4.E): it serializes a model.Record under a chosen wire
// format — UTF-8 JSON, or a length-prefixed schema-registry-framed binary
// envelope.
package wireformat

import (
	"go-corrgen/internal/model"
)

// Format names a wire format (spec.md §6).
type Format string

const (
	FormatJSON         Format = "json"
	FormatSchemaFramed Format = "binary"
)

// Encoder serializes one entity's records to bytes.
type Encoder interface {
	Encode(entity model.EntityConfig, rec *model.Record) ([]byte, error)
}
