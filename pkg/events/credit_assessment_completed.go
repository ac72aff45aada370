package events

import "github.com/shopspring/decimal"

// Assessment status values carried in FinalAssessmentStatus. Consumers must
// handle values outside this set: the assessment stage may grow new statuses
// before every consumer is redeployed.
const (
	AssessmentApproved           = "APPROVED"
	AssessmentRejected           = "REJECTED"
	AssessmentPendingReview      = "PENDING_MANUAL_REVIEW"
	AssessmentAdjustedConditions = "ADJUSTED_CONDITIONS"
	AssessmentFailed             = "FAILED"
)

// CreditAssessmentCompleted is published by the assessment stage for every
// processed application, including FAILED assessments where no score could
// be obtained. Score fields are carried for audit purposes and are nil when
// the assessment failed before fetching them.
type CreditAssessmentCompleted struct {
	Envelope

	ApplicationID         string           `json:"applicationId"`
	CPF                   string           `json:"cpf"`
	FinalAssessmentStatus string           `json:"finalAssessmentStatus"`
	Justification         string           `json:"justification"`
	CreditScoreUsed       *int             `json:"creditScoreUsed,omitempty"`
	AntiFraudScoreUsed    *int             `json:"antiFraudScoreUsed,omitempty"`
	ApprovedLimit         *decimal.Decimal `json:"approvedLimit,omitempty"`
	InterestRateApplied   *decimal.Decimal `json:"interestRateApplied,omitempty"`
}
