package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gustavodinniz/loan-flow/internal/assessment/application/usecase"
	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/kafka"
)

// ApplicationReceivedHandler consumes intake events and runs the assessment
// use case for each one.
type ApplicationReceivedHandler struct {
	assess *usecase.AssessCredit
	logger *slog.Logger
}

func NewApplicationReceivedHandler(assess *usecase.AssessCredit, logger *slog.Logger) *ApplicationReceivedHandler {
	return &ApplicationReceivedHandler{assess: assess, logger: logger}
}

// Handle decodes a loan-application-received message and assesses it.
// Undecodable messages are logged and skipped: retrying a poison message
// can never succeed and would stall the partition.
func (h *ApplicationReceivedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var app events.LoanApplicationReceived
	if err := json.Unmarshal(msg.Value, &app); err != nil {
		h.logger.ErrorContext(ctx, "skipping undecodable application message",
			"key", string(msg.Key), "error", err)
		return nil
	}

	return h.assess.Execute(ctx, app)
}
