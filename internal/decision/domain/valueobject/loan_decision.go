package valueobject

// LoanDecision is the terminal outcome of the pipeline for one application.
type LoanDecision struct {
	value string
}

var (
	DecisionApproved            = LoanDecision{value: "APPROVED"}
	DecisionRejected            = LoanDecision{value: "REJECTED"}
	DecisionPendingManualReview = LoanDecision{value: "PENDING_MANUAL_REVIEW"}
)

func (d LoanDecision) String() string {
	return d.value
}

func (d LoanDecision) Equal(other LoanDecision) bool {
	return d.value == other.value
}

// IsApproved reports whether this decision grants the loan.
func (d LoanDecision) IsApproved() bool {
	return d == DecisionApproved
}
