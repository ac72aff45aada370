package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gustavodinniz/loan-flow/internal/decision/domain/port"
	"github.com/gustavodinniz/loan-flow/internal/decision/domain/service"
	"github.com/gustavodinniz/loan-flow/internal/decision/metrics"
	"github.com/gustavodinniz/loan-flow/pkg/events"
	"github.com/gustavodinniz/loan-flow/pkg/retry"
)

// Retry policy for the synchronous status callback against the intake
// service.
const (
	callbackMaxAttempts  = 5
	callbackInitialDelay = time.Second
	callbackMultiplier   = 2.0
)

// DecideLoan maps a completed assessment to the final decision, publishes
// the terminal event and reports the outcome back to the intake service.
type DecideLoan struct {
	decisions *service.DecisionService
	publisher port.EventPublisher
	intake    port.IntakeClient
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewDecideLoan(
	decisions *service.DecisionService,
	publisher port.EventPublisher,
	intake port.IntakeClient,
	m *metrics.Metrics,
	logger *slog.Logger,
) *DecideLoan {
	return &DecideLoan{
		decisions: decisions,
		publisher: publisher,
		intake:    intake,
		metrics:   m,
		logger:    logger,
	}
}

// Execute processes one completed credit assessment.
//
// The decision event is the source of truth and must be published; a
// publish failure is returned so the message is redelivered. The status
// callback is best effort: after exhausting its retries the failure is
// counted and logged for reconciliation, and processing still succeeds.
func (uc *DecideLoan) Execute(ctx context.Context, assessment events.CreditAssessmentCompleted) error {
	outcome := uc.decisions.Decide(assessment)
	uc.metrics.IncDecision(outcome.Decision.String())

	uc.logger.InfoContext(ctx, "loan decision made",
		"application_id", assessment.ApplicationID,
		"assessment_status", assessment.FinalAssessmentStatus,
		"decision", outcome.Decision.String(),
	)

	evt := events.LoanDecisionMade{
		Envelope:      events.NewEnvelope(),
		ApplicationID: assessment.ApplicationID,
		CPF:           assessment.CPF,
		Decision:      outcome.Decision.String(),
		Reason:        outcome.Reason,
		Terms:         outcome.Terms,
	}
	if err := uc.publisher.PublishDecisionMade(ctx, evt); err != nil {
		return fmt.Errorf("publish decision for application %s: %w", assessment.ApplicationID, err)
	}

	uc.notifyIntake(ctx, assessment.ApplicationID, outcome)
	return nil
}

// notifyIntake pushes the final status to the intake service with
// exponential backoff. Exhausted retries leave the intake record stale
// until reconciliation; the decision event already carries the truth.
func (uc *DecideLoan) notifyIntake(ctx context.Context, applicationID string, outcome service.DecisionOutcome) {
	req := statusRequest(outcome)

	err := retry.Do(ctx, func(ctx context.Context) error {
		return uc.intake.UpdateStatus(ctx, applicationID, req)
	},
		retry.WithMaxAttempts(callbackMaxAttempts),
		retry.WithInitialDelay(callbackInitialDelay),
		retry.WithMultiplier(callbackMultiplier),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			uc.logger.WarnContext(ctx, "status callback failed, retrying",
				"application_id", applicationID,
				"attempt", attempt,
				"delay", delay,
				"error", err,
			)
		}),
	)
	if err != nil {
		uc.metrics.IncCallbackFailure()
		uc.logger.ErrorContext(ctx, "status callback exhausted all retries, manual reconciliation required",
			"application_id", applicationID,
			"status", req.Status,
			"error", err,
		)
	}
}

func statusRequest(outcome service.DecisionOutcome) events.UpdateStatusRequest {
	req := events.UpdateStatusRequest{
		Status: outcome.Decision.String(),
		Reason: outcome.Reason,
	}
	if outcome.Terms != nil {
		installments := outcome.Terms.NumberOfInstallments
		req.AmountApproved = &outcome.Terms.ApprovedAmount
		req.InterestRate = &outcome.Terms.InterestRate
		req.Installments = &installments
		req.InstallmentAmount = &outcome.Terms.InstallmentAmount
	}
	return req
}
