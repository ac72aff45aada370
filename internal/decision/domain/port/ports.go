package port

import (
	"context"

	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// EventPublisher publishes the terminal decision event.
type EventPublisher interface {
	PublishDecisionMade(ctx context.Context, evt events.LoanDecisionMade) error
}

// IntakeClient updates the application status on the intake service. A
// single call may fail transiently; callers retry it.
type IntakeClient interface {
	UpdateStatus(ctx context.Context, applicationID string, req events.UpdateStatusRequest) error
}
