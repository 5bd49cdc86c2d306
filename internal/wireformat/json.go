package wireformat

import "go-corrgen/internal/model"

// JSONEncoder renders a record as UTF-8 JSON text with fields in binding
// order (spec.md §4.E). Keys the entity would otherwise promote into a
// nested sub-message for binary encoding are left flat here — model.Record
// already stores them as top-level fields, so there is nothing extra to do.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder { return &JSONEncoder{} }

func (e *JSONEncoder) Encode(_ model.EntityConfig, rec *model.Record) ([]byte, error) {
	b, err := rec.MarshalJSON()
	if err != nil {
		return nil, &model.EncodingError{Err: err}
	}
	return b, nil
}
