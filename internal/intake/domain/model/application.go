package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus tracks where an application sits in the pipeline.
type LoanStatus struct {
	value string
}

var (
	StatusPendingAssessment     = LoanStatus{value: "PENDING_ASSESSMENT"}
	StatusApproved              = LoanStatus{value: "APPROVED"}
	StatusRejected              = LoanStatus{value: "REJECTED"}
	StatusPendingManualReview   = LoanStatus{value: "PENDING_MANUAL_REVIEW"}
	StatusAdjustedConditions    = LoanStatus{value: "ADJUSTED_CONDITIONS"}
	StatusEventPublishingFailed = LoanStatus{value: "EVENT_PUBLISHING_FAILED"}
)

func (s LoanStatus) String() string {
	return s.value
}

func (s LoanStatus) Equal(other LoanStatus) bool {
	return s.value == other.value
}

// IsTerminal reports whether the pipeline is finished with this application.
func (s LoanStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// LoanApplication is the intake-side snapshot of a submitted application.
type LoanApplication struct {
	ID                   string
	CPF                  string
	DateOfBirth          time.Time
	AmountRequested      decimal.Decimal
	NumberOfInstallments int
	MonthlyIncome        decimal.Decimal
	Status               LoanStatus
	CreatedAt            time.Time
}
