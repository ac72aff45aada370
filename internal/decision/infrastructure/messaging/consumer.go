package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/internal/decision/application/usecase"
	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/kafka"
)

// AssessmentCompletedHandler consumes assessment results and runs the
// decision use case for each one.
type AssessmentCompletedHandler struct {
	decide *usecase.DecideLoan
	logger *slog.Logger
}

func NewAssessmentCompletedHandler(decide *usecase.DecideLoan, logger *slog.Logger) *AssessmentCompletedHandler {
	return &AssessmentCompletedHandler{decide: decide, logger: logger}
}

// Handle decodes a credit-assessment-completed message and decides on it.
// Undecodable messages are logged and skipped rather than redelivered.
func (h *AssessmentCompletedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var assessment events.CreditAssessmentCompleted
	if err := json.Unmarshal(msg.Value, &assessment); err != nil {
		h.logger.ErrorContext(ctx, "skipping undecodable assessment message",
			"key", string(msg.Key), "error", err)
		return nil
	}

	return h.decide.Execute(ctx, assessment)
}
