package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// AssessmentStatus – immutable value object
// ---------------------------------------------------------------------------

// AssessmentStatus represents the outcome of the credit assessment stage.
type AssessmentStatus struct {
	value string
}

const (
	statusApproved           = "APPROVED"
	statusRejected           = "REJECTED"
	statusPendingManual      = "PENDING_MANUAL_REVIEW"
	statusAdjustedConditions = "ADJUSTED_CONDITIONS"
	statusFailed             = "FAILED"
)

var (
	AssessmentStatusApproved           = AssessmentStatus{value: statusApproved}
	AssessmentStatusRejected           = AssessmentStatus{value: statusRejected}
	AssessmentStatusPendingManual      = AssessmentStatus{value: statusPendingManual}
	AssessmentStatusAdjustedConditions = AssessmentStatus{value: statusAdjustedConditions}
	AssessmentStatusFailed             = AssessmentStatus{value: statusFailed}
)

var validAssessmentStatuses = map[string]AssessmentStatus{
	statusApproved:           AssessmentStatusApproved,
	statusRejected:           AssessmentStatusRejected,
	statusPendingManual:      AssessmentStatusPendingManual,
	statusAdjustedConditions: AssessmentStatusAdjustedConditions,
	statusFailed:             AssessmentStatusFailed,
}

// AssessmentStatusFromString reconstructs a status from its string representation.
func AssessmentStatusFromString(s string) (AssessmentStatus, error) {
	v, ok := validAssessmentStatuses[s]
	if !ok {
		return AssessmentStatus{}, fmt.Errorf("invalid assessment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s AssessmentStatus) String() string {
	return s.value
}

// Equal checks equality with another AssessmentStatus.
func (s AssessmentStatus) Equal(other AssessmentStatus) bool {
	return s.value == other.value
}

// IsRejected returns true if the status is REJECTED.
func (s AssessmentStatus) IsRejected() bool {
	return s.value == statusRejected
}
