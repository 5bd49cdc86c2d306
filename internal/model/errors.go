package model

import "fmt"

// The eight error kinds from SPEC_FULL §7. The teacher classifies retryable
// vs non-retryable operations by matching substrings against a string list
// (internal/pipeline/retry.go); we replace that with Go's typed-error idiom
// so callers can `errors.As` instead of string-matching (SPEC_FULL §9,
// "Exception-driven control flow").

// ConfigError signals invalid or inconsistent configuration, an unknown
// faker method, or an unresolved reference. Always fatal and raised before
// any I/O.
type ConfigError struct {
	Entity string
	Field  string
	Msg    string
}

func (e *ConfigError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("config error: %s", e.Msg)
	}
	if e.Field == "" {
		return fmt.Sprintf("config error: entity %q: %s", e.Entity, e.Msg)
	}
	return fmt.Sprintf("config error: entity %q field %q: %s", e.Entity, e.Field, e.Msg)
}

// EmptyPool signals that a transactional task sampled from a master pool
// that has produced zero records. Fatal per task.
type EmptyPool struct {
	Entity string
}

func (e *EmptyPool) Error() string {
	return fmt.Sprintf("reference pool for entity %q is empty", e.Entity)
}

// MissingReference signals that a reference-typed derived field could not
// find its parent record. The record is dropped; the task continues.
type MissingReference struct {
	Entity string
	Field  string
	ID     string
}

func (e *MissingReference) Error() string {
	return fmt.Sprintf("entity %q: no record for id %q resolving field %q", e.Entity, e.ID, e.Field)
}

// GenerationError wraps a failure raised while evaluating a field. The
// record is dropped; the task continues. The entity's sequence counter has
// already advanced by the time this is raised (invariant 4).
type GenerationError struct {
	Entity string
	Field  string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("entity %q field %q: %v", e.Entity, e.Field, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// QueueFull signals broker publisher back-pressure. The publisher retries
// after a bounded backoff and returns QueueFull only once its retries are
// exhausted; the record then counts as a failure.
type QueueFull struct {
	Topic string
}

func (e *QueueFull) Error() string {
	return fmt.Sprintf("publish queue full for topic %q", e.Topic)
}

// SchemaRegistrationError signals the schema registry rejected or errored
// on a subject registration attempt. Fatal for that entity's task.
type SchemaRegistrationError struct {
	Subject string
	Err     error
}

func (e *SchemaRegistrationError) Error() string {
	return fmt.Sprintf("schema registration failed for subject %q: %v", e.Subject, e.Err)
}

func (e *SchemaRegistrationError) Unwrap() error { return e.Err }

// IncompatibleSchemaError signals the registry rejected a schema as
// incompatible with an already-registered version. Fatal for that
// entity's task.
type IncompatibleSchemaError struct {
	Subject string
	Err     error
}

func (e *IncompatibleSchemaError) Error() string {
	return fmt.Sprintf("schema for subject %q is incompatible: %v", e.Subject, e.Err)
}

func (e *IncompatibleSchemaError) Unwrap() error { return e.Err }

// DeliveryError signals an async broker ack indicating permanent failure.
// Counted as a failure; not retried at this layer.
type DeliveryError struct {
	Topic string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed for topic %q: %v", e.Topic, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// EncodingError wraps a failure in the Format Encoder unrelated to schema
// registration itself (e.g. marshaling a malformed record).
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "encoding error: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DrainTimeout signals the flush deadline was hit with records still
// in-flight.
type DrainTimeout struct {
	Residual int
}

func (e *DrainTimeout) Error() string {
	return fmt.Sprintf("drain timeout with %d records still in-flight", e.Residual)
}
