// Package entitygen implements Component C, the Entity Generator
// (SPEC_FULL §4.C): it assembles one complete record for an entity by
// running relationships, then schema fields, then derived fields, in that
// order, consulting the Reference Pool and Field Generator as it goes.
package entitygen

import (
	"go-corrgen/internal/fieldgen"
	"go-corrgen/internal/model"
)

// Sampler is the slice of the Reference Pool's API a relationship
// resolution step needs.
type Sampler interface {
	Sample(entity string, dist model.Distribution, alpha float64, recentOnly bool) (string, error)
}

// Generator builds records for one entity, owning that entity's sequence
// counter. A Generator is not safe for concurrent use — SPEC_FULL §5
// assigns each transactional entity its own task and its own Generator,
// so no cross-task sharing of the counter is needed.
type Generator struct {
	Entity   model.EntityConfig
	Registry *fieldgen.Registry
	Pool     *poolAdapter
	seq      int64
}

// poolAdapter satisfies both fieldgen.ReferenceLookup and entitygen.Sampler
// so callers can hand entitygen.New a single concrete pool value.
type poolAdapter struct {
	Sampler
	fieldgen.ReferenceLookup
}

// NewPoolAdapter adapts a concrete pool (internal/refpool.Pool) into the
// two narrow interfaces entitygen and fieldgen actually depend on.
func NewPoolAdapter(s Sampler, l fieldgen.ReferenceLookup) *poolAdapter {
	return &poolAdapter{Sampler: s, ReferenceLookup: l}
}

func New(entity model.EntityConfig, reg *fieldgen.Registry, pool *poolAdapter) *Generator {
	return &Generator{Entity: entity, Registry: reg, Pool: pool}
}

// Build runs the three-phase record assembly described in SPEC_FULL §4.C.
// The sequence counter advances exactly once per call regardless of
// success (invariant 4) — callers must not retry a failed Build expecting
// the same sequence value.
func (g *Generator) Build() (*model.Record, error) {
	g.seq++
	rec := model.NewRecord()

	for field, spec := range g.Entity.Relationships {
		id, err := g.Pool.Sample(parentEntity(spec.References), spec.EffectiveDistribution(), spec.EffectiveAlpha(), spec.RecencyBias)
		if err != nil {
			return nil, err
		}
		rec.Set(field, model.String(id))
	}

	schemaOrder := g.Entity.SchemaOrder
	if len(schemaOrder) == 0 {
		// Configs built directly in Go (rather than decoded from YAML via
		// model.EntityConfig.UnmarshalYAML) have no recorded declaration
		// order; fall back to map iteration rather than generating no
		// schema fields at all.
		for field := range g.Entity.Schema {
			schemaOrder = append(schemaOrder, field)
		}
	}

	for _, field := range schemaOrder {
		desc := g.Entity.Schema[field]
		if rec.Has(field) {
			continue
		}
		v, err := fieldgen.Generate(g.Registry, desc, fieldgen.Context{
			Entity: g.Entity.Name,
			Seq:    g.seq,
			Record: rec,
			Lookup: g.Pool,
		}, field)
		if err != nil {
			return nil, &model.GenerationError{Entity: g.Entity.Name, Field: field, Err: err}
		}
		rec.Set(field, v)
	}

	for _, field := range g.Entity.DerivedOrder {
		desc := g.Entity.DerivedFields[field]
		v, err := fieldgen.Generate(g.Registry, desc, fieldgen.Context{
			Entity: g.Entity.Name,
			Seq:    g.seq,
			Record: rec,
			Lookup: g.Pool,
		}, field)
		if err != nil {
			return nil, err // MissingReference / ConfigError pass through untagged
		}
		rec.Set(field, v)
	}

	return rec, nil
}

// Seq returns the generator's current counter value, for callers that
// need to know how many records have been attempted (e.g. to size the
// expected ID sequence in tests).
func (g *Generator) Seq() int64 { return g.seq }

func parentEntity(reference string) string {
	for i := len(reference) - 1; i >= 0; i-- {
		if reference[i] == '.' {
			return reference[:i]
		}
	}
	return reference
}
