package types

// PubSubType selects the transport behind the webhook pipeline.
type PubSubType string

const (
	// MemoryPubSub keeps messages in process, for local runs
	MemoryPubSub PubSubType = "memory"

	// KafkaPubSub publishes through the configured Kafka brokers
	KafkaPubSub PubSubType = "kafka"
)
