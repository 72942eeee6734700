// Package kafka wraps segmentio/kafka-go with the publishing and
// consumption conventions used by the risk scoring service: batched
// writes with full acks, and at-least-once consumption with explicit
// offset commits.
package kafka

// Config holds Kafka connection parameters.
type Config struct {
	ConsumerGroup string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}
