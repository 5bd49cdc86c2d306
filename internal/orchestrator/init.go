package orchestrator

import (
	"fmt"

	"go-corrgen/internal/fieldgen"
	"go-corrgen/internal/model"
)

// validate runs the Init phase (spec.md §4.G): every configuration problem
// it can catch is surfaced as a *model.ConfigError before any I/O is
// attempted, mirroring the teacher's pattern of classifying errors up
// front rather than discovering them mid-run.
func validate(cfg model.GeneratorConfig, registry *fieldgen.Registry) error {
	all := make(map[string]model.EntityConfig, len(cfg.MasterData)+len(cfg.TransactionalData))
	for name, e := range cfg.MasterData {
		all[name] = e
	}
	for name, e := range cfg.TransactionalData {
		all[name] = e
	}

	for name, entity := range all {
		if entity.IDField == "" {
			return &model.ConfigError{Entity: name, Msg: "missing id_field"}
		}

		var methods []string
		for _, desc := range entity.Schema {
			if desc.Type == model.FieldFaker {
				methods = append(methods, desc.Method)
			}
		}
		for _, desc := range entity.DerivedFields {
			if desc.Type == model.FieldFaker {
				methods = append(methods, desc.Method)
			}
		}
		if err := registry.Validate(name, methods); err != nil {
			return err
		}

		for field, rel := range entity.Relationships {
			parent, idField := splitReference(rel.References)
			target, ok := all[parent]
			if !ok {
				return &model.ConfigError{Entity: name, Field: field, Msg: fmt.Sprintf("relationship references undeclared entity %q", parent)}
			}
			if target.IDField != idField {
				return &model.ConfigError{Entity: name, Field: field, Msg: fmt.Sprintf("relationship targets %q.%s but %q declares id_field %q", parent, idField, parent, target.IDField)}
			}
		}

		for field, desc := range entity.DerivedFields {
			if desc.Type != model.FieldReference {
				continue
			}
			if desc.Via == "" {
				return &model.ConfigError{Entity: name, Field: field, Msg: "reference-type derived field missing via"}
			}
			if _, ok := entity.Relationships[desc.Via]; !ok {
				return &model.ConfigError{Entity: name, Field: field, Msg: fmt.Sprintf("via %q is not a declared relationship field", desc.Via)}
			}
			parent, sourceField := splitReference(desc.Source)
			target, ok := all[parent]
			if !ok {
				return &model.ConfigError{Entity: name, Field: field, Msg: fmt.Sprintf("source references undeclared entity %q", parent)}
			}
			if _, ok := target.Schema[sourceField]; !ok {
				if _, ok := target.DerivedFields[sourceField]; !ok {
					return &model.ConfigError{Entity: name, Field: field, Msg: fmt.Sprintf("%q declares no field %q for source to resolve", parent, sourceField)}
				}
			}
		}
	}

	return nil
}

func splitReference(ref string) (entity, field string) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '.' {
			return ref[:i], ref[i+1:]
		}
	}
	return ref, ""
}
