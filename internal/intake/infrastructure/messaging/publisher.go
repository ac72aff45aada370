package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing intake
// events to Kafka, keyed by application id.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given topic.
func NewKafkaEventPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// PublishApplicationReceived serialises and sends the intake event.
func (p *KafkaEventPublisher) PublishApplicationReceived(ctx context.Context, evt events.LoanApplicationReceived) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal application received event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.ApplicationID),
		Value: payload,
		Headers: map[string]string{
			"event_type": "loan-application-received",
		},
	}
	if err := p.producer.Publish(ctx, p.topic, msg); err != nil {
		return fmt.Errorf("publish application received for %s: %w", evt.ApplicationID, err)
	}

	p.logger.InfoContext(ctx, "application received event published",
		"application_id", evt.ApplicationID,
		"topic", p.topic,
	)
	return nil
}
