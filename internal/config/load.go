// Package config loads the two declarative YAML documents the correlated
// generation engine consumes: the generator config tree (master_data /
// transactional_data) and the separate broker config document (SPEC_FULL
// §6). Watching config files for changes and wiring CLI flags to a path are
// the excluded front end's job (spec.md §1 Out of scope); this package only
// does the parse-and-name-entities step the core needs before Init can run.
package config

import (
	"fmt"
	"os"

	"go-corrgen/internal/model"

	"gopkg.in/yaml.v2"
)

// LoadGenerator parses a generator config document and fills in each
// EntityConfig's Name from its map key, since the wire format only carries
// the name as a YAML key (model.EntityConfig.Name is left blank by plain
// yaml.Unmarshal).
func LoadGenerator(path string) (model.GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GeneratorConfig{}, fmt.Errorf("read generator config %s: %w", path, err)
	}
	return ParseGenerator(data)
}

// ParseGenerator decodes a generator config document from bytes, for
// callers that already have the document in memory (tests, dry-run tooling).
func ParseGenerator(data []byte) (model.GeneratorConfig, error) {
	var cfg model.GeneratorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.GeneratorConfig{}, fmt.Errorf("parse generator config: %w", err)
	}
	nameEntities(cfg.MasterData)
	nameEntities(cfg.TransactionalData)
	return cfg, nil
}

func nameEntities(m map[string]model.EntityConfig) {
	for name, ent := range m {
		ent.Name = name
		m[name] = ent
	}
}

// LoadBroker parses the separate broker config document.
func LoadBroker(path string) (model.BrokerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BrokerConfig{}, fmt.Errorf("read broker config %s: %w", path, err)
	}
	return ParseBroker(data)
}

// ParseBroker decodes a broker config document from bytes.
func ParseBroker(data []byte) (model.BrokerConfig, error) {
	var cfg model.BrokerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.BrokerConfig{}, fmt.Errorf("parse broker config: %w", err)
	}
	if cfg.SecurityProtocol == "" {
		cfg.SecurityProtocol = model.SecurityPlaintext
	}
	return cfg, nil
}
