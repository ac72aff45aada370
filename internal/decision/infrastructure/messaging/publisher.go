package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing decision
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

// PublishDecisionMade serialises and sends the terminal decision event.
func (p *KafkaEventPublisher) PublishDecisionMade(ctx context.Context, evt events.LoanDecisionMade) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal decision made event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.ApplicationID),
		Value: payload,
		Headers: map[string]string{
			"event_type": "loan-decision-made",
			"event_id":   evt.EventID,
		},
	}
	if err := p.producer.Publish(ctx, p.topic, msg); err != nil {
		return fmt.Errorf("publish decision for application %s: %w", evt.ApplicationID, err)
	}

	p.logger.InfoContext(ctx, "decision event published",
		"application_id", evt.ApplicationID,
		"decision", evt.Decision,
		"topic", p.topic,
	)
	return nil
}
