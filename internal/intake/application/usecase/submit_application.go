package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/intake/application/validation"
	"github.com/gustavodinniz/loan-flow/internal/intake/domain/model"
	"github.com/gustavodinniz/loan-flow/internal/intake/domain/port"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// Eligibility bounds enforced before anything leaves the intake service.
const (
	minimumApplicantAge = 18
	maximumApplicantAge = 75
)

var minimumMonthlyIncome = decimal.RequireFromString("1200.00")

// ValidationError carries every validation failure found for a submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "application validation failed: " + strings.Join(e.Messages, "; ")
}

// SubmitApplicationCommand is the input to a loan application submission.
type SubmitApplicationCommand struct {
	CPF                  string
	DateOfBirth          time.Time
	AmountRequested      decimal.Decimal
	NumberOfInstallments int
	MonthlyIncome        decimal.Decimal
}

// SubmitApplication validates a new application and publishes the event
// that starts the assessment pipeline.
type SubmitApplication struct {
	validator *validation.ExternalValidator
	publisher port.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewSubmitApplication(
	validator *validation.ExternalValidator,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *SubmitApplication {
	return &SubmitApplication{
		validator: validator,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute validates the submission and, when it passes, publishes the
// intake event. The returned application snapshot reflects the outcome:
// PENDING_ASSESSMENT on success, EVENT_PUBLISHING_FAILED when the event
// could not be sent.
func (uc *SubmitApplication) Execute(ctx context.Context, cmd SubmitApplicationCommand) (model.LoanApplication, error) {
	failures := uc.localFailures(cmd)
	failures = append(failures, uc.validator.Validate(ctx, cmd.CPF).Failures()...)
	if len(failures) > 0 {
		uc.logger.InfoContext(ctx, "application rejected at intake",
			"cpf", cmd.CPF, "failures", len(failures))
		return model.LoanApplication{}, &ValidationError{Messages: failures}
	}

	app := model.LoanApplication{
		ID:                   uuid.New().String(),
		CPF:                  cmd.CPF,
		DateOfBirth:          cmd.DateOfBirth,
		AmountRequested:      cmd.AmountRequested,
		NumberOfInstallments: cmd.NumberOfInstallments,
		MonthlyIncome:        cmd.MonthlyIncome,
		Status:               model.StatusPendingAssessment,
		CreatedAt:            uc.now().UTC(),
	}

	evt := events.LoanApplicationReceived{
		ApplicationID:        app.ID,
		CPF:                  app.CPF,
		DateOfBirth:          app.DateOfBirth,
		AmountRequested:      app.AmountRequested,
		NumberOfInstallments: app.NumberOfInstallments,
		MonthlyIncome:        app.MonthlyIncome,
		EventTimestamp:       app.CreatedAt,
	}
	if err := uc.publisher.PublishApplicationReceived(ctx, evt); err != nil {
		app.Status = model.StatusEventPublishingFailed
		uc.logger.ErrorContext(ctx, "failed to publish application received event",
			"application_id", app.ID, "error", err)
		return app, fmt.Errorf("publish application %s: %w", app.ID, err)
	}

	uc.logger.InfoContext(ctx, "application accepted",
		"application_id", app.ID, "amount", app.AmountRequested)
	return app, nil
}

func (uc *SubmitApplication) localFailures(cmd SubmitApplicationCommand) []string {
	var failures []string

	age := applicantAge(cmd.DateOfBirth, uc.now())
	if age < minimumApplicantAge || age > maximumApplicantAge {
		failures = append(failures, fmt.Sprintf("Applicant age (%d) is outside the allowed range of %d to %d years.",
			age, minimumApplicantAge, maximumApplicantAge))
	}
	if cmd.MonthlyIncome.LessThan(minimumMonthlyIncome) {
		failures = append(failures, fmt.Sprintf("Monthly income below the required minimum of %s.",
			minimumMonthlyIncome.StringFixed(2)))
	}
	if !cmd.AmountRequested.IsPositive() {
		failures = append(failures, "Requested amount must be positive.")
	}
	if cmd.NumberOfInstallments <= 0 {
		failures = append(failures, "Number of installments must be positive.")
	}
	return failures
}

// applicantAge computes full years elapsed between birth and now.
func applicantAge(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
