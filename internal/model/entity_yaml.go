package model

import "gopkg.in/yaml.v2"

// rawEntityConfig mirrors EntityConfig but captures schema and
// derived_fields as a yaml.MapSlice so declaration order survives decoding
// — a plain Go map loses it, and spec §4.E/§4.C make that order the
// record's JSON field order and the derived-field evaluation order
// respectively.
type rawEntityConfig struct {
	KafkaTopic    string                   `yaml:"kafka_topic"`
	IDField       string                   `yaml:"id_field"`
	KeyField      string                   `yaml:"key_field,omitempty"`
	Source        SourceKind               `yaml:"source,omitempty"`
	CSVPath       string                   `yaml:"csv_path,omitempty"`
	BulkLoad      bool                     `yaml:"bulk_load,omitempty"`
	Count         *int                     `yaml:"count,omitempty"`
	MaxMessages   *int                     `yaml:"max_messages,omitempty"`
	RatePerSecond float64                  `yaml:"rate_per_second,omitempty"`
	TrackRecent   bool                     `yaml:"track_recent,omitempty"`
	Schema        yaml.MapSlice            `yaml:"schema,omitempty"`
	Relationships map[string]ReferenceSpec `yaml:"relationships,omitempty"`
	DerivedFields yaml.MapSlice            `yaml:"derived_fields,omitempty"`
	Nested        map[string][]string      `yaml:"nested,omitempty"`
	SchemaType    SchemaType               `yaml:"schema_type,omitempty"`
}

// decodeFieldDescriptors turns an ordered yaml.MapSlice of field
// descriptors into a lookup map plus the declaration order, shared by the
// schema and derived_fields decoding paths.
func decodeFieldDescriptors(items yaml.MapSlice) (map[string]FieldDescriptor, []string, error) {
	fields := make(map[string]FieldDescriptor, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.Key.(string)
		if !ok {
			continue
		}
		encoded, err := yaml.Marshal(item.Value)
		if err != nil {
			return nil, nil, err
		}
		var fd FieldDescriptor
		if err := yaml.Unmarshal(encoded, &fd); err != nil {
			return nil, nil, err
		}
		fields[name] = fd
		order = append(order, name)
	}
	return fields, order, nil
}

// UnmarshalYAML implements order-preserving decoding of schema and
// derived_fields.
func (e *EntityConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw rawEntityConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	e.KafkaTopic = raw.KafkaTopic
	e.IDField = raw.IDField
	e.KeyField = raw.KeyField
	e.Source = raw.Source
	e.CSVPath = raw.CSVPath
	e.BulkLoad = raw.BulkLoad
	e.Count = raw.Count
	e.MaxMessages = raw.MaxMessages
	e.RatePerSecond = raw.RatePerSecond
	e.TrackRecent = raw.TrackRecent
	e.Relationships = raw.Relationships
	e.Nested = raw.Nested
	e.SchemaType = raw.SchemaType

	if len(raw.Schema) > 0 {
		schema, order, err := decodeFieldDescriptors(raw.Schema)
		if err != nil {
			return err
		}
		e.Schema = schema
		e.SchemaOrder = order
	}

	if len(raw.DerivedFields) > 0 {
		derived, order, err := decodeFieldDescriptors(raw.DerivedFields)
		if err != nil {
			return err
		}
		e.DerivedFields = derived
		e.DerivedOrder = order
	}

	return nil
}
