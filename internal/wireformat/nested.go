package wireformat

import "go-corrgen/internal/model"

// promoteNested folds the field groups named in entity.Nested into single
// nested sub-messages before binary encoding (spec.md §4.E: "{street,
// city, postal_code, country_code, phone} → nested address message").
// Every top-level key not named in a nested group is carried over
// unchanged; no key is dropped, whether or not the entity's schema
// declares it.
func promoteNested(entity model.EntityConfig, rec *model.Record) *model.Record {
	if len(entity.Nested) == 0 {
		return rec
	}

	grouped := make(map[string]bool)
	for _, fields := range entity.Nested {
		for _, f := range fields {
			grouped[f] = true
		}
	}

	out := model.NewRecord()
	for _, name := range rec.Fields() {
		if grouped[name] {
			continue
		}
		v, _ := rec.Get(name)
		out.Set(name, v)
	}

	for nestedName, fields := range entity.Nested {
		sub := model.NewRecord()
		for _, f := range fields {
			if v, ok := rec.Get(f); ok {
				sub.Set(f, v)
			}
		}
		out.Set(nestedName, model.Map(sub))
	}

	return out
}
