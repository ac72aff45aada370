package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing completion
// events to Kafka, keyed by application id so every event for one
// application lands on the same partition.
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

// PublishAssessmentCompleted serialises and sends the assessment outcome.
func (p *KafkaEventPublisher) PublishAssessmentCompleted(ctx context.Context, evt events.CreditAssessmentCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal assessment completed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.ApplicationID),
		Value: payload,
		Headers: map[string]string{
			"event_type": "credit-assessment-completed",
			"event_id":   evt.EventID,
		},
	}
	if err := p.producer.Publish(ctx, p.topic, msg); err != nil {
		return fmt.Errorf("publish assessment completed for application %s: %w", evt.ApplicationID, err)
	}

	p.logger.InfoContext(ctx, "assessment completed event published",
		"application_id", evt.ApplicationID,
		"status", evt.FinalAssessmentStatus,
		"topic", p.topic,
	)
	return nil
}
