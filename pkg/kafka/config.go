package kafka

// Config holds Kafka connection parameters shared by producers and consumers.
type Config struct {
	Brokers       []string
	ConsumerGroup string
}
