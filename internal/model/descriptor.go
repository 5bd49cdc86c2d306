package model

// FieldKind tags the variant a FieldDescriptor carries, per SPEC_FULL §3.
type FieldKind string

const (
	FieldFaker     FieldKind = "faker"
	FieldString    FieldKind = "string"
	FieldUUID      FieldKind = "uuid"
	FieldInt       FieldKind = "int"
	FieldFloat     FieldKind = "float"
	FieldTimestamp FieldKind = "timestamp"
	FieldChoice    FieldKind = "choice"
	FieldReference FieldKind = "reference"
)

// FieldDescriptor is the tagged-variant field descriptor from SPEC_FULL §3.
// Only the members relevant to Type are populated by config.LoadGenerator; the rest
// are zero values.
type FieldDescriptor struct {
	Type FieldKind `yaml:"type"`

	// faker
	Method string `yaml:"method,omitempty"`

	// string
	Format string `yaml:"format,omitempty"`

	// int / float
	Min float64 `yaml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty"`

	// choice
	Choices []string `yaml:"choices,omitempty"`

	// reference (derived field)
	Source string `yaml:"source,omitempty"` // "<entity>.<field>"
	Via    string `yaml:"via,omitempty"`    // local FK field already bound
}

// SourceKind tags how a master entity's records come into being.
type SourceKind string

const (
	SourceFaker     SourceKind = "faker"
	SourceCSV       SourceKind = "csv"
	SourceGenerator SourceKind = "generator"
)

// Distribution names a sampling strategy for relationship resolution.
type Distribution string

const (
	DistUniform Distribution = "uniform"
	DistZipf    Distribution = "zipf"
)

// ReferenceSpec is the relationship descriptor from SPEC_FULL §3.
type ReferenceSpec struct {
	References       string       `yaml:"references"` // "<entity>.<id_field>"
	Distribution     Distribution `yaml:"distribution,omitempty"`
	Alpha            float64      `yaml:"alpha,omitempty"`
	RecencyBias      bool         `yaml:"recency_bias,omitempty"`
	MaxDelayMinutes  int          `yaml:"max_delay_minutes,omitempty"` // observability only
}

func (r ReferenceSpec) EffectiveDistribution() Distribution {
	if r.Distribution == "" {
		return DistUniform
	}
	return r.Distribution
}

func (r ReferenceSpec) EffectiveAlpha() float64 {
	if r.Alpha == 0 {
		return 1.0
	}
	return r.Alpha
}

// EntityConfig is the entity descriptor from SPEC_FULL §3.
type EntityConfig struct {
	Name           string `yaml:"-"`
	KafkaTopic     string `yaml:"kafka_topic"`
	IDField        string `yaml:"id_field"`
	KeyField       string `yaml:"key_field,omitempty"`
	Source         SourceKind `yaml:"source,omitempty"`
	CSVPath        string `yaml:"csv_path,omitempty"`
	BulkLoad       bool   `yaml:"bulk_load,omitempty"`
	Count          *int   `yaml:"count,omitempty"`
	MaxMessages    *int   `yaml:"max_messages,omitempty"`
	RatePerSecond  float64 `yaml:"rate_per_second,omitempty"`
	TrackRecent    bool   `yaml:"track_recent,omitempty"`

	Schema         map[string]FieldDescriptor `yaml:"schema,omitempty"`
	Relationships  map[string]ReferenceSpec   `yaml:"relationships,omitempty"`
	DerivedFields  map[string]FieldDescriptor `yaml:"derived_fields,omitempty"`

	// SchemaOrder preserves declaration order for schema field evaluation,
	// which spec §4.E makes the record's JSON field order — a Go map
	// cannot give us that on its own.
	SchemaOrder []string `yaml:"-"`

	// DerivedOrder preserves declaration order for derived field evaluation
	// (SPEC_FULL §4.C requires "declaration order", which a Go map cannot
	// give us on its own).
	DerivedOrder []string `yaml:"-"`

	// Nested groups schema field names that should be folded into a single
	// nested sub-message before binary encoding (SPEC_FULL §4.E).
	Nested map[string][]string `yaml:"nested,omitempty"`

	// SchemaType selects the registry wire schema language for this
	// entity when the encoder is SchemaFramed.
	SchemaType SchemaType `yaml:"schema_type,omitempty"`
}

type SchemaType string

const (
	SchemaAvro     SchemaType = "avro"
	SchemaProtobuf SchemaType = "protobuf"
)

// GeneratorConfig is the top-level declarative config tree from SPEC_FULL §6.
type GeneratorConfig struct {
	MasterData        map[string]EntityConfig `yaml:"master_data"`
	TransactionalData map[string]EntityConfig `yaml:"transactional_data"`
}

// SecurityProtocol names the broker transport security mode.
type SecurityProtocol string

const (
	SecurityPlaintext     SecurityProtocol = "PLAINTEXT"
	SecuritySSL           SecurityProtocol = "SSL"
	SecuritySASLPlaintext SecurityProtocol = "SASL_PLAINTEXT"
	SecuritySASLSSL       SecurityProtocol = "SASL_SSL"
)

// BrokerConfig is the separate broker document from SPEC_FULL §6.
type BrokerConfig struct {
	BootstrapServers  string           `yaml:"bootstrap.servers"`
	SecurityProtocol  SecurityProtocol `yaml:"security.protocol,omitempty"`
	SASLMechanism     string           `yaml:"sasl.mechanism,omitempty"`
	SASLUsername      string           `yaml:"sasl.username,omitempty"`
	SASLPassword      string           `yaml:"sasl.password,omitempty"`
	SSLCALocation     string           `yaml:"ssl.ca.location,omitempty"`
	SSLCertLocation   string           `yaml:"ssl.certificate.location,omitempty"`
	SSLKeyLocation    string           `yaml:"ssl.key.location,omitempty"`
	SchemaRegistryURL string           `yaml:"schema.registry.url,omitempty"`
}
