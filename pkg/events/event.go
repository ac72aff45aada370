// Package events defines the wire contracts exchanged between the loan
// pipeline stages. Every event carries an Envelope so downstream consumers
// can de-duplicate on the event id; Kafka messages are keyed by application
// id, which keeps delivery ordered per application.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is embedded in every pipeline event.
type Envelope struct {
	EventID        string    `json:"eventId"`
	EventTimestamp time.Time `json:"eventTimestamp"`
}

// NewEnvelope creates an Envelope with a generated UUID and the current UTC time.
func NewEnvelope() Envelope {
	return Envelope{
		EventID:        uuid.New().String(),
		EventTimestamp: time.Now().UTC(),
	}
}
