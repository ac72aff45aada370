package events

import "github.com/shopspring/decimal"

// UpdateStatusRequest is the body of the synchronous status callback
// PUT /applications/{id}/status issued by the decision engine against the
// intake service.
type UpdateStatusRequest struct {
	Status            string           `json:"status"`
	Reason            string           `json:"reason"`
	AmountApproved    *decimal.Decimal `json:"amountApproved,omitempty"`
	InterestRate      *decimal.Decimal `json:"interestRate,omitempty"`
	Installments      *int             `json:"installments,omitempty"`
	InstallmentAmount *decimal.Decimal `json:"installmentValue,omitempty"`
}
