package fieldgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go-corrgen/internal/model"

	"github.com/google/uuid"
)

// ReferenceLookup is the slice of the Reference Pool's API the Field
// Generator needs to resolve a reference{source,via} derived field. It is
// an interface rather than a direct dependency on internal/refpool so the
// two packages can be tested independently of one another.
type ReferenceLookup interface {
	Lookup(entity, id string) (*model.Record, bool)
}

// Context carries everything a field descriptor's evaluation may need,
// per SPEC_FULL §4.A: the entity's current sequence counter, the
// partially built record (for reference resolution and {name} template
// lookups), and read access to the Reference Pool.
type Context struct {
	Entity string
	Seq    int64
	Record *model.Record
	Lookup ReferenceLookup
}

// Generate evaluates a single field descriptor, returning the value it
// produces or the model error kind that explains why it could not.
func Generate(reg *Registry, d model.FieldDescriptor, ctx Context, fieldName string) (model.Value, error) {
	switch d.Type {
	case model.FieldFaker:
		v, err := reg.Generate(d.Method)
		if err != nil {
			return model.Value{}, err
		}
		return v, nil

	case model.FieldString:
		s, err := RenderTemplate(d.Format, ctx.Seq, ctx.Record, ctx.Entity)
		if err != nil {
			return model.Value{}, err
		}
		return model.String(s), nil

	case model.FieldUUID:
		return model.String(uuid.New().String()), nil

	case model.FieldInt:
		lo, hi := int64(d.Min), int64(d.Max)
		if hi < lo {
			return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: "int field has max < min"}
		}
		return model.Int64(lo + rand.Int63n(hi-lo+1)), nil

	case model.FieldFloat:
		if d.Max < d.Min {
			return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: "float field has max < min"}
		}
		return model.Float64(d.Min + rand.Float64()*(d.Max-d.Min)), nil

	case model.FieldTimestamp:
		format := d.Format
		if format != "iso8601" {
			return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: fmt.Sprintf("unsupported timestamp format %q", format)}
		}
		return model.String(time.Now().UTC().Format("2006-01-02T15:04:05Z")), nil

	case model.FieldChoice:
		if len(d.Choices) == 0 {
			return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: "choice field has no choices"}
		}
		return model.String(d.Choices[rand.Intn(len(d.Choices))]), nil

	case model.FieldReference:
		return resolveReference(d, ctx, fieldName)

	default:
		return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: fmt.Sprintf("unknown field type %q", d.Type)}
	}
}

func resolveReference(d model.FieldDescriptor, ctx Context, fieldName string) (model.Value, error) {
	entity, srcField, err := splitSource(d.Source)
	if err != nil {
		return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: err.Error()}
	}
	if ctx.Record == nil || !ctx.Record.Has(d.Via) {
		return model.Value{}, &model.ConfigError{Entity: ctx.Entity, Field: fieldName, Msg: fmt.Sprintf("via field %q not bound", d.Via)}
	}
	fkVal, _ := ctx.Record.Get(d.Via)
	id := fkVal.AsString()

	parent, ok := ctx.Lookup.Lookup(entity, id)
	if !ok {
		return model.Value{}, &model.MissingReference{Entity: entity, Field: fieldName, ID: id}
	}
	v, ok := parent.Get(srcField)
	if !ok {
		return model.Value{}, &model.MissingReference{Entity: entity, Field: srcField, ID: id}
	}
	return v, nil
}

// splitSource parses a "<entity>.<field>" reference source string.
func splitSource(source string) (entity, field string, err error) {
	i := strings.LastIndex(source, ".")
	if i <= 0 || i == len(source)-1 {
		return "", "", fmt.Errorf("malformed reference source %q, want \"<entity>.<field>\"", source)
	}
	return source[:i], source[i+1:], nil
}
