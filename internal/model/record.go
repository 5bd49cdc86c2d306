package model

import "bytes"

// Record is an insertion-ordered string-to-Value map. Go map iteration order
// is undefined, so a plain map[string]Value cannot satisfy the spec's
// requirement that JSON encoding preserve the field order fields were bound
// in (SPEC_FULL §3) — Record keeps an explicit slice of keys alongside the
// lookup index.
type Record struct {
	order []string
	index map[string]int
	vals  []Value
}

func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set binds name to value, appending it if new or overwriting in place if
// the field was already bound (overwriting never changes its position).
func (r *Record) Set(name string, v Value) {
	if i, ok := r.index[name]; ok {
		r.vals[i] = v
		return
	}
	r.index[name] = len(r.order)
	r.order = append(r.order, name)
	r.vals = append(r.vals, v)
}

// Get returns the value bound to name and whether it is bound at all.
func (r *Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.vals[i], true
}

// Has reports whether name has been bound yet.
func (r *Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Fields returns the record's fields in binding order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of bound fields.
func (r *Record) Len() int { return len(r.order) }

// Clone returns a deep-enough copy safe to hand to a concurrent reader
// (the Reference Pool stores clones so later mutation of a record under
// construction can never corrupt an already-appended parent).
func (r *Record) Clone() *Record {
	out := &Record{
		order: append([]string(nil), r.order...),
		vals:  append([]Value(nil), r.vals...),
		index: make(map[string]int, len(r.index)),
	}
	for k, v := range r.index {
		out.index[k] = v
	}
	return out
}

// NativeMap renders the record as a plain map[string]interface{}, used by
// encoders that need interface{} payloads (schema serdes).
func (r *Record) NativeMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r.order))
	for i, k := range r.order {
		out[k] = r.vals[i].Native()
	}
	return out
}

// MarshalJSON emits fields in binding order, which plain map[string]any
// marshaling cannot guarantee.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := r.vals[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalString(s string) ([]byte, error) {
	return jsonMarshal(s)
}
