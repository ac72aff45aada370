package model

import (
	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/valueobject"
)

// ---------------------------------------------------------------------------
// AssessmentResult aggregate
// ---------------------------------------------------------------------------

// AssessmentResult is the mutable aggregate threaded through the rule chain
// and the risk tiering. It starts APPROVED and may only move downwards:
// once REJECTED it stays REJECTED and its recommended terms are forced to
// zero, no matter what later callers attempt.
type AssessmentResult struct {
	applicationID    string
	cpf              string
	status           valueobject.AssessmentStatus
	justification    string
	finalScore       int
	recommendedLimit decimal.Decimal
	recommendedRate  decimal.Decimal
}

// NewAssessmentResult creates a fresh result in APPROVED status carrying the
// bureau score as the final score.
func NewAssessmentResult(applicationID, cpf string, finalScore int) *AssessmentResult {
	return &AssessmentResult{
		applicationID: applicationID,
		cpf:           cpf,
		status:        valueobject.AssessmentStatusApproved,
		finalScore:    finalScore,
	}
}

// NewFailedAssessment creates a terminal FAILED result for applications whose
// external scores could not be obtained.
func NewFailedAssessment(applicationID, cpf, justification string) *AssessmentResult {
	return &AssessmentResult{
		applicationID: applicationID,
		cpf:           cpf,
		status:        valueobject.AssessmentStatusFailed,
		justification: justification,
	}
}

// ApplicationID returns the application this result belongs to.
func (r *AssessmentResult) ApplicationID() string {
	return r.applicationID
}

// CPF returns the applicant identifier.
func (r *AssessmentResult) CPF() string {
	return r.cpf
}

// Status returns the current assessment status.
func (r *AssessmentResult) Status() valueobject.AssessmentStatus {
	return r.status
}

// Justification returns the accumulated justification text.
func (r *AssessmentResult) Justification() string {
	return r.justification
}

// FinalScore returns the bureau score the assessment was based on.
func (r *AssessmentResult) FinalScore() int {
	return r.finalScore
}

// RecommendedLimit returns the recommended credit limit.
func (r *AssessmentResult) RecommendedLimit() decimal.Decimal {
	return r.recommendedLimit
}

// RecommendedInterestRate returns the recommended annual interest rate.
func (r *AssessmentResult) RecommendedInterestRate() decimal.Decimal {
	return r.recommendedRate
}

// IsRejected reports whether the result has reached the terminal REJECTED state.
func (r *AssessmentResult) IsRejected() bool {
	return r.status.IsRejected()
}

// Reject moves the result to REJECTED, appends the reason, and zeroes the
// recommended terms. Rejection is sticky.
func (r *AssessmentResult) Reject(reason string) {
	r.status = valueobject.AssessmentStatusRejected
	r.AppendJustification(reason)
	r.recommendedLimit = decimal.Zero
	r.recommendedRate = decimal.Zero
}

// MarkAdjusted flags the result as approved with adjusted conditions.
// A no-op once the result is REJECTED.
func (r *AssessmentResult) MarkAdjusted() {
	if r.IsRejected() {
		return
	}
	r.status = valueobject.AssessmentStatusAdjustedConditions
}

// SetRecommendedTerms records the recommended limit and annual rate.
// A no-op once the result is REJECTED.
func (r *AssessmentResult) SetRecommendedTerms(limit, rate decimal.Decimal) {
	if r.IsRejected() {
		return
	}
	r.recommendedLimit = limit
	r.recommendedRate = rate
}

// AppendJustification appends text to the justification, never overwriting
// what previous rules or strategies wrote.
func (r *AssessmentResult) AppendJustification(text string) {
	if text == "" {
		return
	}
	if r.justification != "" {
		r.justification += " "
	}
	r.justification += text
}
