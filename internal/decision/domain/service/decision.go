package service

import (
	"fmt"

	"github.com/gustavodinniz/loan-flow/internal/decision/domain/valueobject"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// DecisionOutcome is the result of mapping one assessment to a final loan
// decision. Terms is set only for approvals.
type DecisionOutcome struct {
	Decision valueobject.LoanDecision
	Terms    *events.LoanTerms
	Reason   string
}

// DecisionService turns a completed credit assessment into the final
// decision. It is a pure mapping: every assessment status has exactly one
// handling arm, and anything outside the known set falls through to manual
// review rather than failing.
type DecisionService struct {
	calculator *LoanTermsCalculator
}

func NewDecisionService(calculator *LoanTermsCalculator) *DecisionService {
	return &DecisionService{calculator: calculator}
}

// Decide maps the assessment outcome to a loan decision.
func (s *DecisionService) Decide(assessment events.CreditAssessmentCompleted) DecisionOutcome {
	switch assessment.FinalAssessmentStatus {
	case events.AssessmentRejected:
		return DecisionOutcome{
			Decision: valueobject.DecisionRejected,
			Reason:   assessment.Justification,
		}

	case events.AssessmentPendingReview:
		return DecisionOutcome{
			Decision: valueobject.DecisionPendingManualReview,
			Reason:   appendReason(assessment.Justification, "Flagged for manual review by credit assessment."),
		}

	case events.AssessmentApproved, events.AssessmentAdjustedConditions:
		return s.approve(assessment)

	default:
		// Covers FAILED and any status this engine does not know about.
		return DecisionOutcome{
			Decision: valueobject.DecisionPendingManualReview,
			Reason: fmt.Sprintf("Unknown or unexpected status from credit assessment: %s. Sent for manual review.",
				assessment.FinalAssessmentStatus),
		}
	}
}

func (s *DecisionService) approve(assessment events.CreditAssessmentCompleted) DecisionOutcome {
	if !hasValidTerms(assessment) {
		return DecisionOutcome{
			Decision: valueobject.DecisionPendingManualReview,
			Reason:   "Approved by credit assessment but terms are invalid or missing; manual review required.",
		}
	}

	terms := s.calculator.Calculate(*assessment.ApprovedLimit, *assessment.InterestRateApplied)
	return DecisionOutcome{
		Decision: valueobject.DecisionApproved,
		Terms:    &terms,
		Reason:   appendReason(assessment.Justification, "Approved with standard terms."),
	}
}

// hasValidTerms checks that the assessment carried a usable limit and rate.
// A zero or negative limit cannot be lent against; a negative rate is a
// contract violation upstream.
func hasValidTerms(assessment events.CreditAssessmentCompleted) bool {
	if assessment.ApprovedLimit == nil || assessment.InterestRateApplied == nil {
		return false
	}
	if !assessment.ApprovedLimit.IsPositive() {
		return false
	}
	return !assessment.InterestRateApplied.IsNegative()
}

func appendReason(justification, note string) string {
	if justification == "" {
		return note
	}
	return justification + " " + note
}
