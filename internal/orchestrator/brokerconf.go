package orchestrator

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"go-corrgen/internal/model"
)

// brokerConfMap translates the declarative broker document (SPEC_FULL §6)
// into the librdkafka config map confluent-kafka-go expects.
func brokerConfMap(cfg model.BrokerConfig) *kafka.ConfigMap {
	m := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"security.protocol": string(cfg.SecurityProtocol),
	}
	if cfg.SASLMechanism != "" {
		m.SetKey("sasl.mechanism", cfg.SASLMechanism)
		m.SetKey("sasl.username", cfg.SASLUsername)
		m.SetKey("sasl.password", cfg.SASLPassword)
	}
	if cfg.SSLCALocation != "" {
		m.SetKey("ssl.ca.location", cfg.SSLCALocation)
	}
	if cfg.SSLCertLocation != "" {
		m.SetKey("ssl.certificate.location", cfg.SSLCertLocation)
	}
	if cfg.SSLKeyLocation != "" {
		m.SetKey("ssl.key.location", cfg.SSLKeyLocation)
	}
	return m
}
